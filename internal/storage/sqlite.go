// ABOUTME: SQLite-backed diary storage using the pure-Go modernc driver.
// ABOUTME: Keeps entries in insertion order by an autoincrement sequence and rewards in a single row.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/2389-research/diary/internal/models"
)

// SQLiteStore persists diary state in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and applies migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// LoadEntries returns all entries ordered by insertion sequence.
func (s *SQLiteStore) LoadEntries() ([]models.DiaryEntry, error) {
	rows, err := s.db.Query(`SELECT id, date, text FROM entries ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []models.DiaryEntry
	for rows.Next() {
		var rawID, rawDate, text string
		if err := rows.Scan(&rawID, &rawDate, &text); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("invalid entry id %q: %w", rawID, err)
		}
		date, err := parseTime(rawDate)
		if err != nil {
			return nil, fmt.Errorf("invalid entry date %q: %w", rawDate, err)
		}
		entries = append(entries, models.DiaryEntry{ID: id, Date: date, Text: text})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}

// AppendEntry inserts an entry after all existing ones.
func (s *SQLiteStore) AppendEntry(entry models.DiaryEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO entries (id, date, text) VALUES (?, ?, ?)`,
		entry.ID.String(),
		formatTime(entry.Date),
		entry.Text,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// LoadRewards returns the stored counters, or zero values if none were saved.
func (s *SQLiteStore) LoadRewards() (models.Rewards, error) {
	var r models.Rewards
	err := s.db.QueryRow(`SELECT points, streak FROM rewards WHERE id = 1`).Scan(&r.Points, &r.Streak)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Rewards{}, nil
		}
		return models.Rewards{}, fmt.Errorf("failed to read rewards: %w", err)
	}
	return r, nil
}

// AddRewards increments the rewards row in a single statement.
func (s *SQLiteStore) AddRewards(delta models.Rewards) error {
	_, err := s.db.Exec(
		`INSERT INTO rewards (id, points, streak) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET points = points + excluded.points, streak = streak + excluded.streak`,
		delta.Points,
		delta.Streak,
	)
	if err != nil {
		return fmt.Errorf("failed to add rewards: %w", err)
	}
	return nil
}

// SaveRewards upserts the single rewards row.
func (s *SQLiteStore) SaveRewards(rewards models.Rewards) error {
	_, err := s.db.Exec(
		`INSERT INTO rewards (id, points, streak) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET points = excluded.points, streak = excluded.streak`,
		rewards.Points,
		rewards.Streak,
	)
	if err != nil {
		return fmt.Errorf("failed to save rewards: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
