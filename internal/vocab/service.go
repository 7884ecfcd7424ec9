// Package vocab implements the selection engine: random, never-repeating
// vocabulary batches per learner, best-effort enriched with pronunciation
// audio.
package vocab

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pasquale/wortschatz/internal/catalog"
	"github.com/pasquale/wortschatz/internal/domain"
)

// SeenStore is the persistence contract the selection engine needs: the set
// of notes a learner was already served, and appending newly served ones.
type SeenStore interface {
	SeenNoteIDs(ctx context.Context, userID int64) (map[int64]struct{}, error)
	RecordSeen(ctx context.Context, userID int64, noteIDs []int64) error
}

// Pronouncer looks up a pronunciation-audio path for a word.
type Pronouncer interface {
	Pronunciation(ctx context.Context, word string) (string, error)
}

// Service hands each learner random, never-repeating batches of vocabulary.
type Service struct {
	catalog     *catalog.Catalog
	store       SeenStore
	pronouncer  Pronouncer // nil disables enrichment
	concurrency int
	lookupWait  time.Duration
}

// NewService wires the selection engine. A nil pronouncer turns audio
// enrichment off.
func NewService(cat *catalog.Catalog, store SeenStore, pronouncer Pronouncer, concurrency int, lookupWait time.Duration) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	if lookupWait <= 0 {
		lookupWait = 5 * time.Second
	}
	return &Service{
		catalog:     cat,
		store:       store,
		pronouncer:  pronouncer,
		concurrency: concurrency,
		lookupWait:  lookupWait,
	}
}

// NewWords draws up to count items the learner has not been served before,
// records the draw, and returns the batch enriched with pronunciation audio
// where available. The draw is recorded before anything is returned: if
// recording fails, the learner gets an error instead of words that would
// repeat on the next call.
func (s *Service) NewWords(ctx context.Context, userID int64, count int) ([]domain.VocabularyItem, error) {
	all := s.catalog.Items()
	if len(all) == 0 {
		slog.Warn("Vocabulary catalog is empty, nothing to serve")
		return []domain.VocabularyItem{}, nil
	}

	seen, err := s.store.SeenNoteIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seen words for user %d: %w", userID, err)
	}

	shuffled := slices.Clone(all)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	picked := []domain.VocabularyItem{}
	var pickedIDs []int64
	for _, item := range shuffled {
		if len(picked) >= count {
			break
		}
		if _, ok := seen[item.NoteID]; ok {
			continue
		}
		picked = append(picked, item)
		pickedIDs = append(pickedIDs, item.NoteID)
	}

	if len(pickedIDs) > 0 {
		if err := s.store.RecordSeen(ctx, userID, pickedIDs); err != nil {
			return nil, fmt.Errorf("failed to record served words for user %d: %w", userID, err)
		}
		slog.Info("Served new words", "user", userID, "count", len(pickedIDs))
	}

	return s.enrichAll(ctx, picked), nil
}

// enrichAll enriches a batch with bounded concurrency. Each item is handled
// independently; one lookup failing never touches its siblings.
func (s *Service) enrichAll(ctx context.Context, items []domain.VocabularyItem) []domain.VocabularyItem {
	if s.pronouncer == nil || len(items) == 0 {
		return items
	}

	enriched := make([]domain.VocabularyItem, len(items))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, item := range items {
		g.Go(func() error {
			enriched[i] = s.enrich(ctx, item)
			return nil
		})
	}
	g.Wait() // lookups never surface errors
	return enriched
}

// enrich returns a copy of item with its audio replaced by a Forvo result.
// Every failure mode, including a lookup timeout, keeps the item's original
// audio value.
func (s *Service) enrich(ctx context.Context, item domain.VocabularyItem) domain.VocabularyItem {
	word := cleanWord(item.German)
	if word == "" {
		return item
	}

	ctx, cancel := context.WithTimeout(ctx, s.lookupWait)
	defer cancel()

	audio, err := s.pronouncer.Pronunciation(ctx, word)
	if err != nil {
		slog.Error("Pronunciation lookup failed", "word", word, "error", err)
		return item
	}
	if audio == "" {
		slog.Warn("No pronunciation found", "word", word)
		return item
	}
	item.Audio = audio
	return item
}
