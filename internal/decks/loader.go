// Package decks resolves the configured deck container, decodes it and
// publishes the result to the vocabulary catalog.
package decks

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pasquale/wortschatz/internal/anki"
	"github.com/pasquale/wortschatz/internal/catalog"
	"github.com/pasquale/wortschatz/internal/domain"
	"github.com/pasquale/wortschatz/internal/gitsource"
)

// Loader loads a deck container into the catalog. The container is either a
// local .apkg path or the first .apkg found in a synced git repository.
type Loader struct {
	catalog  *catalog.Catalog
	path     string
	gitURL   string
	cloneDir string
}

// NewLoader builds a loader. gitURL takes precedence when both a local path
// and a repository are configured.
func NewLoader(cat *catalog.Catalog, path, gitURL, cloneDir string) *Loader {
	return &Loader{catalog: cat, path: path, gitURL: gitURL, cloneDir: cloneDir}
}

// Load decodes the deck and swaps the catalog snapshot. On failure the
// previous snapshot stays in place and the error is returned to the caller
// for logging.
func (l *Loader) Load(ctx context.Context) error {
	apkgPath, err := l.resolve(ctx)
	if err != nil {
		return err
	}

	slog.Info("Loading deck container", "path", apkgPath)
	notes, err := anki.Decode(ctx, apkgPath)
	if err != nil {
		return fmt.Errorf("failed to decode deck %s: %w", apkgPath, err)
	}

	items := make([]domain.VocabularyItem, 0, len(notes))
	for _, note := range notes {
		items = append(items, itemFromNote(note))
	}
	l.catalog.Replace(items)
	slog.Info("Vocabulary catalog loaded", "items", l.catalog.Len())
	return nil
}

func (l *Loader) resolve(ctx context.Context) (string, error) {
	if l.gitURL == "" {
		return l.path, nil
	}
	if err := os.MkdirAll(l.cloneDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create clone directory %s: %w", l.cloneDir, err)
	}
	localPath, err := repoLocalPath(l.cloneDir, l.gitURL)
	if err != nil {
		return "", err
	}
	if err := gitsource.Sync(ctx, l.gitURL, localPath); err != nil {
		return "", err
	}
	return findDeck(localPath)
}

// repoLocalPath derives a stable clone directory from the repository URL.
func repoLocalPath(cloneDir, gitURL string) (string, error) {
	u, err := url.Parse(gitURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse deck repo URL %s: %w", gitURL, err)
	}
	name := strings.TrimSuffix(filepath.Base(u.Path), ".git")
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("cannot derive directory name from deck repo URL %s", gitURL)
	}
	return filepath.Join(cloneDir, name), nil
}

// findDeck walks the synced repository for the first .apkg container.
func findDeck(root string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".apkg") {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan %s for deck containers: %w", root, err)
	}
	if found == "" {
		return "", fmt.Errorf("no .apkg container found under %s", root)
	}
	return found, nil
}

// itemFromNote projects a demultiplexed note onto the named fields this
// service serves. A note whose model was unknown keeps its ids but decodes
// to an empty shell.
func itemFromNote(note anki.Note) domain.VocabularyItem {
	item := domain.VocabularyItem{NoteID: note.ID, ModelID: note.ModelID}
	if note.Parsed() {
		item.German = note.Fields["German"]
		item.English = note.Fields["English"]
		item.SampleSentence = note.Fields["Sample sentence"]
		item.Audio = note.Fields["Audio"]
	}
	return item
}
