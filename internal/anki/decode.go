// Package anki decodes Anki .apkg deck containers: a zip archive holding an
// embedded sqlite collection database whose notes are delimiter-packed
// against per-model field layouts.
package anki

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// Decode extracts the collection database from the container at apkgPath and
// returns every note it holds, demultiplexed. The temporary database file is
// removed before Decode returns, on every path.
func Decode(ctx context.Context, apkgPath string) ([]Note, error) {
	dbPath, err := ExtractCollection(apkgPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(dbPath); err != nil {
			slog.Warn("Failed to remove temp collection database", "path", dbPath, "error", err)
		}
	}()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection database: %w", err)
	}
	defer db.Close()

	models, err := ReadModels(ctx, db)
	if err != nil {
		return nil, err
	}

	var notes []Note
	err = ForEachNote(ctx, db, models, func(n Note) {
		notes = append(notes, n)
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}
