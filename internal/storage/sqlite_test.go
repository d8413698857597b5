// ABOUTME: Tests for the SQLite diary backend.
// ABOUTME: Covers migrations, ordered roundtrip, rewards upsert, and reopening an existing file.
package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/2389-research/diary/internal/models"
)

func newSQLiteStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "diary.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestSQLiteRequiresPath(t *testing.T) {
	if _, err := NewSQLiteStore("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSQLiteAppendLoadRoundtrip(t *testing.T) {
	store, _ := newSQLiteStore(t)

	base := time.Date(2024, 5, 1, 9, 0, 0, 123456789, time.UTC)
	want := []models.DiaryEntry{
		{ID: uuid.New(), Date: base.Add(time.Hour), Text: "later but first"},
		{ID: uuid.New(), Date: base, Text: "  untrimmed\n"},
	}
	for _, e := range want {
		if err := store.AppendEntry(e); err != nil {
			t.Fatalf("AppendEntry error: %v", err)
		}
	}

	got, err := store.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Text != want[i].Text || !got[i].Date.Equal(want[i].Date) {
			t.Errorf("entries[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSQLiteDuplicateIDRejected(t *testing.T) {
	store, _ := newSQLiteStore(t)

	entry := *models.NewDiaryEntry(uuid.New(), time.Now(), "once")
	if err := store.AppendEntry(entry); err != nil {
		t.Fatalf("AppendEntry error: %v", err)
	}
	if err := store.AppendEntry(entry); err == nil {
		t.Error("expected error inserting a duplicate id")
	}
}

func TestSQLiteRewardsUpsert(t *testing.T) {
	store, _ := newSQLiteStore(t)

	r, err := store.LoadRewards()
	if err != nil {
		t.Fatalf("LoadRewards error: %v", err)
	}
	if r != (models.Rewards{}) {
		t.Errorf("expected zero rewards, got %+v", r)
	}

	for _, want := range []models.Rewards{{Points: 10, Streak: 1}, {Points: 20, Streak: 2}} {
		if err := store.SaveRewards(want); err != nil {
			t.Fatalf("SaveRewards error: %v", err)
		}
		got, err := store.LoadRewards()
		if err != nil {
			t.Fatalf("LoadRewards error: %v", err)
		}
		if got != want {
			t.Errorf("LoadRewards = %+v, want %+v", got, want)
		}
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	store, path := newSQLiteStore(t)

	entry := *models.NewDiaryEntry(uuid.New(), time.Now(), "persisted")
	if err := store.AppendEntry(entry); err != nil {
		t.Fatalf("AppendEntry error: %v", err)
	}
	if err := store.SaveRewards(models.Rewards{Points: 10, Streak: 1}); err != nil {
		t.Fatalf("SaveRewards error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	entries, err := reopened.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries error: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != entry.ID {
		t.Errorf("unexpected entries after reopen: %+v", entries)
	}
	r, err := reopened.LoadRewards()
	if err != nil {
		t.Fatalf("LoadRewards error: %v", err)
	}
	if r != (models.Rewards{Points: 10, Streak: 1}) {
		t.Errorf("rewards after reopen = %+v", r)
	}
}

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (x INT);\n-- +migrate Down\nDROP TABLE a;\n"
	got := extractUpMigration(content)
	if got != "\nCREATE TABLE a (x INT);\n" {
		t.Errorf("extractUpMigration = %q", got)
	}
	if extractUpMigration("SELECT 1;") != "SELECT 1;" {
		t.Error("expected content without markers to be returned unchanged")
	}
}

func TestSQLiteAddRewardsAccumulates(t *testing.T) {
	store, path := newSQLiteStore(t)

	other, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore error: %v", err)
	}
	defer func() { _ = other.Close() }()

	step := models.Rewards{Points: 10, Streak: 1}
	for _, s := range []*SQLiteStore{store, other, store} {
		if err := s.AddRewards(step); err != nil {
			t.Fatalf("AddRewards error: %v", err)
		}
	}

	r, err := other.LoadRewards()
	if err != nil {
		t.Fatalf("LoadRewards error: %v", err)
	}
	if r != (models.Rewards{Points: 30, Streak: 3}) {
		t.Errorf("rewards = %+v, want {30 3}", r)
	}
}
