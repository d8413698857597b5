// ABOUTME: Reward counters (points and streak) awarded once per accepted entry.
// ABOUTME: Counters only grow; there is no reset and no calendar-day logic.
package diary

import (
	"sync"

	"github.com/2389-research/diary/internal/models"
)

// PointsPerEntry is the number of points awarded for each accepted entry.
const PointsPerEntry = 10

// RewardsFor returns the counters earned by n accepted entries.
func RewardsFor(n int) models.Rewards {
	return models.Rewards{Points: n * PointsPerEntry, Streak: n}
}

// RewardTracker owns the points and streak counters.
//
// Streak counts every accepted entry. It does not track consecutive days.
type RewardTracker struct {
	mu        sync.RWMutex
	points    int
	streak    int
	observers observerList[models.Rewards]
}

// NewRewardTracker creates a tracker starting from previously recorded counters.
func NewRewardTracker(initial models.Rewards) *RewardTracker {
	return &RewardTracker{
		points: initial.Points,
		streak: initial.Streak,
	}
}

// Award adds PointsPerEntry points and one streak step. The entry content is not inspected.
func (t *RewardTracker) Award(_ models.DiaryEntry) {
	t.mu.Lock()
	t.points += PointsPerEntry
	t.streak++
	snap := models.Rewards{Points: t.points, Streak: t.streak}
	t.mu.Unlock()

	t.observers.notify(snap)
}

// Points returns the current points total.
func (t *RewardTracker) Points() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.points
}

// Streak returns the current streak count.
func (t *RewardTracker) Streak() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.streak
}

// Snapshot returns both counters read under one lock.
func (t *RewardTracker) Snapshot() models.Rewards {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return models.Rewards{Points: t.points, Streak: t.streak}
}

// Subscribe registers fn to be called with the new counters after every Award.
func (t *RewardTracker) Subscribe(fn func(models.Rewards)) (unsubscribe func()) {
	return t.observers.add(fn)
}
