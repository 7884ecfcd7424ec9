package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/pasquale/wortschatz/internal/catalog"
	"github.com/pasquale/wortschatz/internal/config"
	"github.com/pasquale/wortschatz/internal/decks"
	"github.com/pasquale/wortschatz/internal/forvo"
	"github.com/pasquale/wortschatz/internal/storage"
	"github.com/pasquale/wortschatz/internal/vocab"
	"github.com/pasquale/wortschatz/internal/web"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Database opened", "path", cfg.DBPath)

	cat := catalog.New()
	loader := decks.NewLoader(cat, cfg.Deck.Path, cfg.Deck.GitURL, cfg.Deck.CloneDir)
	if err := loader.Load(context.Background()); err != nil {
		// Serve with an empty catalog rather than refusing to start; a
		// later reload can still bring the deck in.
		slog.Error("Failed to load deck", "error", err)
	}

	var pronouncer vocab.Pronouncer
	if cfg.Forvo.APIKey != "" {
		pronouncer = forvo.NewClient(cfg.Forvo.BaseURL, cfg.Forvo.APIKey, cfg.Forvo.Timeout)
	} else {
		slog.Warn("No Forvo API key configured, audio enrichment disabled")
	}

	service := vocab.NewService(cat, db, pronouncer, cfg.Forvo.Concurrency, cfg.Forvo.Timeout)
	server := web.NewServer(db, service, loader, cfg.JWT.Secret, cfg.JWT.TTL)

	slog.Info("Listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, server); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
