package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]string{
		"--deck.path", "deck.apkg",
		"--jwt.secret", "sekrit",
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.DBPath != "wortschatz.db" {
		t.Errorf("Expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Forvo.Timeout != 5*time.Second {
		t.Errorf("Expected default forvo timeout 5s, got %v", cfg.Forvo.Timeout)
	}
	if cfg.Forvo.Concurrency != 4 {
		t.Errorf("Expected default forvo concurrency 4, got %d", cfg.Forvo.Concurrency)
	}
	if cfg.JWT.TTL != time.Hour {
		t.Errorf("Expected default jwt ttl 1h, got %v", cfg.JWT.TTL)
	}
}

func TestLoadRequiresDeckSource(t *testing.T) {
	if _, err := Load([]string{"--jwt.secret", "sekrit"}); err == nil {
		t.Fatal("Expected Load to fail without a deck source")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	if _, err := Load([]string{"--deck.path", "deck.apkg"}); err == nil {
		t.Fatal("Expected Load to fail without a jwt secret")
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("WORTSCHATZ_ADDR", ":9999")
	t.Setenv("WORTSCHATZ_JWT__SECRET", "env-secret")
	t.Setenv("WORTSCHATZ_FORVO__API_KEY", "env-key")

	cfg, err := Load([]string{"--deck.path", "deck.apkg"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Expected env addr :9999, got %q", cfg.Addr)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("Expected env jwt secret, got %q", cfg.JWT.Secret)
	}
	if cfg.Forvo.APIKey != "env-key" {
		t.Errorf("Expected env forvo key, got %q", cfg.Forvo.APIKey)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("WORTSCHATZ_ADDR", ":9999")

	cfg, err := Load([]string{
		"--deck.path", "deck.apkg",
		"--jwt.secret", "sekrit",
		"--addr", ":7777",
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":7777" {
		t.Errorf("Expected flag addr :7777, got %q", cfg.Addr)
	}
}

func TestLoadYamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
addr: ":6666"
deck:
  path: from-file.apkg
jwt:
  secret: file-secret
  ttl: 2h
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load([]string{"--config", path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":6666" {
		t.Errorf("Expected file addr :6666, got %q", cfg.Addr)
	}
	if cfg.Deck.Path != "from-file.apkg" {
		t.Errorf("Expected file deck path, got %q", cfg.Deck.Path)
	}
	if cfg.JWT.Secret != "file-secret" {
		t.Errorf("Expected file jwt secret, got %q", cfg.JWT.Secret)
	}
	if cfg.JWT.TTL != 2*time.Hour {
		t.Errorf("Expected file jwt ttl 2h, got %v", cfg.JWT.TTL)
	}
}
