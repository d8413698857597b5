// ABOUTME: Submission flow tying the entry store and reward tracker together.
// ABOUTME: Rejects blank text silently; otherwise records the raw text and awards points.
package diary

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/2389-research/diary/internal/models"
)

// Journal handles user submissions against an EntryStore and a RewardTracker.
type Journal struct {
	mu      sync.Mutex
	entries *EntryStore
	rewards *RewardTracker
	now     func() time.Time
	newID   func() uuid.UUID
}

// JournalOption configures optional Journal behaviour.
type JournalOption func(*Journal)

// WithClock sets the time source used to date new entries.
func WithClock(now func() time.Time) JournalOption {
	return func(j *Journal) {
		j.now = now
	}
}

// WithIDSource sets the generator used for new entry IDs.
func WithIDSource(newID func() uuid.UUID) JournalOption {
	return func(j *Journal) {
		j.newID = newID
	}
}

// NewJournal creates a journal over the given holders.
func NewJournal(entries *EntryStore, rewards *RewardTracker, opts ...JournalOption) *Journal {
	j := &Journal{
		entries: entries,
		rewards: rewards,
		now:     time.Now,
		newID:   uuid.New,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Entries returns the underlying entry store.
func (j *Journal) Entries() *EntryStore {
	return j.entries
}

// Rewards returns the underlying reward tracker.
func (j *Journal) Rewards() *RewardTracker {
	return j.rewards
}

// Submit records text as a new entry and awards points for it.
// Text that is empty after trimming is ignored: nothing changes and ok is false.
// The stored text is the raw input, not the trimmed copy.
func (j *Journal) Submit(text string) (entry *models.DiaryEntry, ok bool) {
	if IsBlank(text) {
		return nil, false
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	e := models.NewDiaryEntry(j.newID(), j.now(), text)
	j.entries.Add(*e)
	j.rewards.Award(*e)
	return e, true
}

// IsBlank reports whether text is empty or whitespace only.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
