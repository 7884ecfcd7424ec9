package anki

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
)

// The embedded collection database lives under one of two entry names,
// depending on the Anki version that exported the deck.
var collectionNames = []string{"collection.anki21", "collection.anki2"}

// ErrNoCollection means the container holds no recognizable collection database.
var ErrNoCollection = errors.New("anki: no collection database found in package")

// ExtractCollection copies the embedded collection database out of the .apkg
// container into a temporary file and returns its path. The caller owns the
// temporary file and must remove it when done.
func ExtractCollection(apkgPath string) (string, error) {
	r, err := zip.OpenReader(apkgPath)
	if err != nil {
		return "", fmt.Errorf("failed to open package %s: %w", apkgPath, err)
	}
	defer r.Close()

	for _, name := range collectionNames {
		for _, f := range r.File {
			if f.Name == name {
				return copyEntry(f)
			}
		}
	}
	return "", ErrNoCollection
}

func copyEntry(f *zip.File) (string, error) {
	src, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open package entry %s: %w", f.Name, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "anki-collection-*.db")
	if err != nil {
		return "", fmt.Errorf("failed to create temp database file: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp database file: %w", err)
	}
	return tmp.Name(), nil
}
