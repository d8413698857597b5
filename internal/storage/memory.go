// ABOUTME: In-process backend that keeps nothing across runs.
// ABOUTME: Used for the memory backend and as a test double.
package storage

import (
	"sync"

	"github.com/2389-research/diary/internal/models"
)

// MemoryStore holds entries and rewards for the life of the process only.
type MemoryStore struct {
	mu      sync.Mutex
	entries []models.DiaryEntry
	rewards models.Rewards
}

// NewMemoryStore creates an empty in-process backend.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadEntries returns a copy of the stored entries.
func (s *MemoryStore) LoadEntries() ([]models.DiaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DiaryEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// AppendEntry stores an entry.
func (s *MemoryStore) AppendEntry(entry models.DiaryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// LoadRewards returns the stored counters.
func (s *MemoryStore) LoadRewards() (models.Rewards, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rewards, nil
}

// AddRewards adds delta to the stored counters.
func (s *MemoryStore) AddRewards(delta models.Rewards) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rewards.Points += delta.Points
	s.rewards.Streak += delta.Streak
	return nil
}

// SaveRewards stores the counters.
func (s *MemoryStore) SaveRewards(rewards models.Rewards) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rewards = rewards
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
