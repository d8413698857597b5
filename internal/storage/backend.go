// ABOUTME: Interface definition for diary persistence backends.
// ABOUTME: Defines the contract for loading and appending entries and saving reward counters.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/2389-research/diary/internal/config"
	"github.com/2389-research/diary/internal/models"
)

// ErrEntryNotFound is returned when no entry matches a lookup.
var ErrEntryNotFound = errors.New("entry not found")

// Backend persists diary entries and reward counters between runs.
type Backend interface {
	// LoadEntries returns all stored entries in insertion order.
	LoadEntries() ([]models.DiaryEntry, error)

	// AppendEntry persists a new entry after all existing ones.
	AppendEntry(entry models.DiaryEntry) error

	// LoadRewards returns the stored counters, or zero values if none were saved.
	LoadRewards() (models.Rewards, error)

	// AddRewards adds delta to the stored counters. Concurrent writers to the
	// same storage must not lose each other's increments.
	AddRewards(delta models.Rewards) error

	// SaveRewards replaces the stored counters.
	SaveRewards(rewards models.Rewards) error

	// Close releases any resources held by the backend.
	Close() error
}

// Open creates the backend selected by cfg.
func Open(cfg *config.Config) (Backend, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backend := cfg.GetBackend()
	if backend == config.BackendMemory {
		return NewMemoryStore(), nil
	}

	dataDir, err := cfg.GetDataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}

	switch backend {
	case config.BackendSQLite:
		return NewSQLiteStore(filepath.Join(dataDir, "diary.db"))
	default:
		return NewMarkdownStore(dataDir)
	}
}
