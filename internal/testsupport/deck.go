// Package testsupport builds throwaway .apkg deck containers for tests.
package testsupport

import (
	"archive/zip"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// NoteRow is a raw row for the notes table of a generated deck.
type NoteRow struct {
	ID   int64
	MID  int64
	Flds string
}

// BuildDeck writes a minimal .apkg container holding a collection database
// with the given models JSON and note rows, and returns the container path.
// An empty modelsJSON leaves the col table empty.
func BuildDeck(t *testing.T, modelsJSON string, notes []NoteRow) string {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "collection.anki2")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open fixture database: %v", err)
	}
	stmts := []string{
		`CREATE TABLE col (models TEXT)`,
		`CREATE TABLE notes (id INTEGER, mid INTEGER, flds TEXT)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to create fixture table: %v", err)
		}
	}
	if modelsJSON != "" {
		if _, err := db.Exec(`INSERT INTO col (models) VALUES (?)`, modelsJSON); err != nil {
			t.Fatalf("failed to insert fixture models: %v", err)
		}
	}
	for _, n := range notes {
		if _, err := db.Exec(`INSERT INTO notes (id, mid, flds) VALUES (?, ?, ?)`, n.ID, n.MID, n.Flds); err != nil {
			t.Fatalf("failed to insert fixture note: %v", err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("failed to close fixture database: %v", err)
	}

	dbBytes, err := os.ReadFile(dbPath)
	if err != nil {
		t.Fatalf("failed to read fixture database: %v", err)
	}
	return BuildContainer(t, "collection.anki2", dbBytes)
}

// BuildContainer zips content under the given entry name into an .apkg file
// and returns its path.
func BuildContainer(t *testing.T, entryName string, content []byte) string {
	t.Helper()

	apkgPath := filepath.Join(t.TempDir(), "deck.apkg")
	out, err := os.Create(apkgPath)
	if err != nil {
		t.Fatalf("failed to create container: %v", err)
	}
	zw := zip.NewWriter(out)
	w, err := zw.Create(entryName)
	if err != nil {
		t.Fatalf("failed to create container entry: %v", err)
	}
	if _, err := w.Write(content); err != nil {
		t.Fatalf("failed to write container entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish container: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("failed to close container: %v", err)
	}
	return apkgPath
}
