// ABOUTME: Saves diary state to a backend whenever the in-memory holders change.
// ABOUTME: Appends each entry and persists its award as an increment; failures are kept for the caller.
package storage

import (
	"errors"
	"sync"

	"github.com/2389-research/diary/internal/diary"
	"github.com/2389-research/diary/internal/models"
)

// Recorder appends each new entry and adds its award to the stored counters.
// An award is persisted only when its entry was saved, so stored counters
// never run ahead of stored entries. A failed save never undoes the in-memory change.
type Recorder struct {
	backend Backend

	mu        sync.Mutex
	errs      []error
	last      models.Rewards
	skipAward bool

	unsubscribe []func()
}

// NewRecorder subscribes a recorder to the given holders.
func NewRecorder(backend Backend, entries *diary.EntryStore, rewards *diary.RewardTracker) *Recorder {
	r := &Recorder{backend: backend, last: rewards.Snapshot()}
	r.unsubscribe = append(r.unsubscribe,
		entries.Subscribe(r.recordEntry),
		rewards.Subscribe(r.recordRewards),
	)
	return r
}

func (r *Recorder) recordEntry(entry models.DiaryEntry) {
	err := r.backend.AppendEntry(entry)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.errs = append(r.errs, err)
		r.skipAward = true
	}
}

func (r *Recorder) recordRewards(rewards models.Rewards) {
	r.mu.Lock()
	delta := models.Rewards{
		Points: rewards.Points - r.last.Points,
		Streak: rewards.Streak - r.last.Streak,
	}
	r.last = rewards
	skip := r.skipAward
	r.skipAward = false
	r.mu.Unlock()

	if skip {
		return
	}
	if err := r.backend.AddRewards(delta); err != nil {
		r.fail(err)
	}
}

func (r *Recorder) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

// Err returns the save failures since the last call, joined, and clears them.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := errors.Join(r.errs...)
	r.errs = nil
	return err
}

// Stop detaches the recorder from the holders.
func (r *Recorder) Stop() {
	for _, fn := range r.unsubscribe {
		fn()
	}
	r.unsubscribe = nil
}
