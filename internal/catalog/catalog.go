// Package catalog holds the in-memory vocabulary snapshot the service
// serves from.
package catalog

import (
	"sync/atomic"

	"github.com/pasquale/wortschatz/internal/domain"
)

// snapshot pairs the ordered item list with its id lookup. Both are built
// in one pass and published together, so readers never see one without
// the other.
type snapshot struct {
	items []domain.VocabularyItem
	byID  map[int64]domain.VocabularyItem
}

// Catalog is the process-wide vocabulary snapshot. Reads are safe from any
// goroutine; Replace swaps the whole snapshot atomically.
type Catalog struct {
	snap atomic.Pointer[snapshot]
}

// New returns an empty catalog.
func New() *Catalog {
	c := &Catalog{}
	c.snap.Store(&snapshot{byID: map[int64]domain.VocabularyItem{}})
	return c
}

// Replace publishes items as the new snapshot. Items without a note id carry
// no usable identity and are dropped; a repeated note id keeps only the
// first occurrence.
func (c *Catalog) Replace(items []domain.VocabularyItem) {
	snap := &snapshot{
		items: make([]domain.VocabularyItem, 0, len(items)),
		byID:  make(map[int64]domain.VocabularyItem, len(items)),
	}
	for _, item := range items {
		if item.NoteID == 0 {
			continue
		}
		if _, ok := snap.byID[item.NoteID]; ok {
			continue
		}
		snap.items = append(snap.items, item)
		snap.byID[item.NoteID] = item
	}
	c.snap.Store(snap)
}

// Items returns the current snapshot's items. Callers must not modify the
// returned slice.
func (c *Catalog) Items() []domain.VocabularyItem {
	return c.snap.Load().items
}

// Get looks an item up by note id in the current snapshot.
func (c *Catalog) Get(noteID int64) (domain.VocabularyItem, bool) {
	item, ok := c.snap.Load().byID[noteID]
	return item, ok
}

// Len reports the size of the current snapshot.
func (c *Catalog) Len() int {
	return len(c.snap.Load().items)
}
