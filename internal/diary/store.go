// ABOUTME: In-memory ordered collection of diary entries with change notification.
// ABOUTME: Append-only; the newest-first view is computed on read with a stable sort.
package diary

import (
	"sort"
	"sync"

	"github.com/2389-research/diary/internal/models"
)

// EntryStore owns the ordered sequence of diary entries.
// Insertion order is creation order. There is no update or delete.
type EntryStore struct {
	mu        sync.RWMutex
	entries   []models.DiaryEntry
	observers observerList[models.DiaryEntry]
}

// NewEntryStore creates a store seeded with previously recorded entries, in insertion order.
// Seeding does not notify subscribers.
func NewEntryStore(initial ...models.DiaryEntry) *EntryStore {
	entries := make([]models.DiaryEntry, len(initial))
	copy(entries, initial)
	return &EntryStore{entries: entries}
}

// Add appends an entry and notifies subscribers. It accepts any value unconditionally.
func (s *EntryStore) Add(entry models.DiaryEntry) {
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	s.observers.notify(entry)
}

// Entries returns a copy of the raw sequence in insertion order.
func (s *EntryStore) Entries() []models.DiaryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DiaryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Sorted returns a copy of the entries sorted by date, most recent first.
func (s *EntryStore) Sorted() []models.DiaryEntry {
	entries := s.Entries()
	SortByDateDesc(entries)
	return entries
}

// Len returns the number of entries.
func (s *EntryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Subscribe registers fn to be called after every Add. The returned func removes it.
func (s *EntryStore) Subscribe(fn func(models.DiaryEntry)) (unsubscribe func()) {
	return s.observers.add(fn)
}

// SortByDateDesc sorts entries in place, most recent first.
// Entries with equal dates keep their relative order.
func SortByDateDesc(entries []models.DiaryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}
