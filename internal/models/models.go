// ABOUTME: Core data models for diary entries and reward counters.
// ABOUTME: Provides constructor functions and type definitions shared by the store, storage, and UI.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DiaryEntry is a single user-authored diary record.
// The type performs no validation; callers reject blank text before construction.
type DiaryEntry struct {
	ID   uuid.UUID
	Date time.Time
	Text string // raw text as typed, never trimmed
}

// NewDiaryEntry creates a diary entry with the given identity and timestamp.
// Text is kept exactly as given.
func NewDiaryEntry(id uuid.UUID, date time.Time, text string) *DiaryEntry {
	return &DiaryEntry{
		ID:   id,
		Date: date,
		Text: text,
	}
}

// ShortID returns the first eight characters of the entry ID.
func (e DiaryEntry) ShortID() string {
	return e.ID.String()[:8]
}

// Rewards is a snapshot of the gamification counters.
type Rewards struct {
	Points int `json:"points" yaml:"points"`
	Streak int `json:"streak" yaml:"streak"` // total accepted entries, not consecutive days
}
