// Package state holds the client-side collections that mirror backend data:
// the evidence store, the compliance overlay derived from it, and the
// delete-confirmation dialog state. Mutations are guarded by mutexes because
// the REPL goroutine and the poll watcher touch them concurrently; each
// operation is applied all-or-nothing.
package state

import (
	"sort"
	"sync"

	"github.com/haktiv/evidencekeeper/internal/client/models"
)

// EvidenceStore is the in-memory evidence collection and the primary
// consistency surface. Insertion order is preserved; Evidence.ID is the only
// join key used elsewhere and is never rewritten in place.
type EvidenceStore struct {
	mu    sync.RWMutex
	items []models.Evidence
	index map[int64]int // id -> position in items
}

func NewEvidenceStore() *EvidenceStore {
	return &EvidenceStore{index: make(map[int64]int)}
}

// Load replaces the whole collection with the server's view. Local records
// absent from items are dropped.
func (s *EvidenceStore) Load(items []models.Evidence) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]models.Evidence, len(items))
	copy(s.items, items)
	s.index = make(map[int64]int, len(items))
	for i, e := range s.items {
		s.index[e.ID] = i
	}
}

// Insert appends one record. If the id is already present the existing
// record is reconciled (overwritten in place) rather than duplicated.
func (s *EvidenceStore) Insert(item models.Evidence) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos, ok := s.index[item.ID]; ok {
		s.items[pos] = item
		return
	}
	s.items = append(s.items, item)
	s.index[item.ID] = len(s.items) - 1
}

// RemoveMany filters out all records whose id is in ids. The swap is atomic
// from the caller's view: readers observe either the old or the new slice.
// Removing absent ids is a no-op, so the operation is idempotent.
func (s *EvidenceStore) RemoveMany(ids []int64) {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0:0]
	for _, e := range s.items {
		if _, gone := drop[e.ID]; !gone {
			kept = append(kept, e)
		}
	}
	s.items = kept
	s.index = make(map[int64]int, len(kept))
	for i, e := range s.items {
		s.index[e.ID] = i
	}
}

// Get returns the record with the given id.
func (s *EvidenceStore) Get(id int64) (models.Evidence, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.index[id]
	if !ok {
		return models.Evidence{}, false
	}
	return s.items[pos], true
}

// All returns a copy of the collection in insertion order.
func (s *EvidenceStore) All() []models.Evidence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Evidence, len(s.items))
	copy(out, s.items)
	return out
}

// Names returns the names for the given ids, sorted for stable display.
// Unknown ids are skipped.
func (s *EvidenceStore) Names(ids []int64) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if pos, ok := s.index[id]; ok {
			names = append(names, s.items[pos].Name)
		}
	}
	sort.Strings(names)
	return names
}

func (s *EvidenceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
