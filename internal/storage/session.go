// ABOUTME: Restores diary state from a backend and wires persistence to the journal.
// ABOUTME: Provides entry lookup by full or short ID for read commands and tools.
package storage

import (
	"fmt"
	"strings"
	"sync"

	"github.com/2389-research/diary/internal/diary"
	"github.com/2389-research/diary/internal/models"
)

// Session is a journal restored from a backend, saving every change back to it.
type Session struct {
	Journal  *diary.Journal
	Recorder *Recorder
	backend  Backend

	mu        sync.Mutex
	repairErr error
}

// Restore loads entries and counters from backend and returns a journal recording to it.
// Every entry earns exactly one award, so stored counters that disagree with the
// number of stored entries are replaced by the counters those entries earn.
// A failure to write the corrected counters is reported by RepairErr.
func Restore(backend Backend, opts ...diary.JournalOption) (*Session, error) {
	if backend == nil {
		return nil, fmt.Errorf("storage backend is required")
	}

	entries, err := backend.LoadEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	rewards, err := backend.LoadRewards()
	if err != nil {
		return nil, fmt.Errorf("failed to load rewards: %w", err)
	}

	var repairErr error
	if earned := diary.RewardsFor(len(entries)); rewards != earned {
		rewards = earned
		if err := backend.SaveRewards(earned); err != nil {
			repairErr = fmt.Errorf("failed to repair rewards: %w", err)
		}
	}

	store := diary.NewEntryStore(entries...)
	tracker := diary.NewRewardTracker(rewards)

	return &Session{
		Journal:   diary.NewJournal(store, tracker, opts...),
		Recorder:  NewRecorder(backend, store, tracker),
		backend:   backend,
		repairErr: repairErr,
	}, nil
}

// RepairErr returns the error from writing corrected counters during Restore, if any.
func (s *Session) RepairErr() error {
	return s.repairErr
}

// Submit records text through the journal and returns the save failures caused by it.
// Calls are serialized so concurrent callers never see each other's failures.
func (s *Session) Submit(text string) (*models.DiaryEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.Journal.Submit(text)
	if !ok {
		return nil, false, nil
	}
	return entry, true, s.Recorder.Err()
}

// Close stops recording and closes the backend.
func (s *Session) Close() error {
	s.Recorder.Stop()
	return s.backend.Close()
}

// FindEntry returns the entry whose ID equals ref or starts with it.
// An ambiguous prefix is an error.
func FindEntry(entries []models.DiaryEntry, ref string) (models.DiaryEntry, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return models.DiaryEntry{}, ErrEntryNotFound
	}

	var matches []models.DiaryEntry
	for _, e := range entries {
		id := e.ID.String()
		if id == ref {
			return e, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return models.DiaryEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.DiaryEntry{}, fmt.Errorf("ambiguous entry id %q matches %d entries", ref, len(matches))
	}
}
