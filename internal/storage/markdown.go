// ABOUTME: Markdown-based diary storage with a YAML rewards file.
// ABOUTME: Stores each entry as a markdown file with YAML frontmatter in date-based directories.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/2389-research/diary/internal/models"
)

// MarkdownStore stores entries as markdown files under dataDir/entries.
type MarkdownStore struct {
	mu      sync.Mutex
	dataDir string
	nextSeq int64
}

// entryFrontmatter is the YAML frontmatter for entry files.
type entryFrontmatter struct {
	ID   string `yaml:"id"`
	Date string `yaml:"date"`
	Seq  int64  `yaml:"seq"`
}

// storedEntry pairs an entry with its insertion sequence number.
type storedEntry struct {
	entry models.DiaryEntry
	seq   int64
}

// NewMarkdownStore creates a markdown store rooted at dataDir.
func NewMarkdownStore(dataDir string) (*MarkdownStore, error) {
	s := &MarkdownStore{dataDir: dataDir}

	stored, err := s.scan()
	if err != nil {
		return nil, err
	}
	for _, se := range stored {
		if se.seq >= s.nextSeq {
			s.nextSeq = se.seq + 1
		}
	}
	return s, nil
}

func (s *MarkdownStore) entriesDir() string {
	return filepath.Join(s.dataDir, "entries")
}

func (s *MarkdownStore) rewardsPath() string {
	return filepath.Join(s.dataDir, "rewards.yaml")
}

// lockRewards takes the cross-process lock guarding rewards.yaml.
func (s *MarkdownStore) lockRewards() (*flock.Flock, error) {
	if err := os.MkdirAll(s.dataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	lock := flock.New(s.rewardsPath() + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock rewards: %w", err)
	}
	return lock, nil
}

// AppendEntry writes an entry file. The body is the entry text exactly as given.
func (s *MarkdownStore) AppendEntry(entry models.DiaryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dateDir := entry.Date.Format("2006-01-02")
	timeStr := entry.Date.Format("15-04-05-000000000")
	filename := timeStr + "-" + entry.ShortID() + ".md"
	path := filepath.Join(s.entriesDir(), dateDir, filename)

	fm := entryFrontmatter{
		ID:   entry.ID.String(),
		Date: formatTime(entry.Date),
		Seq:  s.nextSeq,
	}

	content, err := renderFrontmatter(fm, entry.Text)
	if err != nil {
		return fmt.Errorf("failed to render frontmatter: %w", err)
	}

	if err := atomicWrite(path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}

	s.nextSeq++
	return nil
}

// LoadEntries reads every entry file and returns them in insertion order.
func (s *MarkdownStore) LoadEntries() ([]models.DiaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.scan()
	if err != nil {
		return nil, err
	}

	entries := make([]models.DiaryEntry, len(stored))
	for i, se := range stored {
		entries[i] = se.entry
	}
	return entries, nil
}

// LoadRewards reads rewards.yaml, returning zero counters if it doesn't exist.
func (s *MarkdownStore) LoadRewards() (models.Rewards, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readRewards()
}

// AddRewards reloads rewards.yaml under the file lock, adds delta, and writes it back.
func (s *MarkdownStore) AddRewards(delta models.Rewards) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, err := s.lockRewards()
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	r, err := s.readRewards()
	if err != nil {
		return err
	}
	r.Points += delta.Points
	r.Streak += delta.Streak
	return s.writeRewards(r)
}

// SaveRewards replaces rewards.yaml under the file lock.
func (s *MarkdownStore) SaveRewards(rewards models.Rewards) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, err := s.lockRewards()
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	return s.writeRewards(rewards)
}

func (s *MarkdownStore) readRewards() (models.Rewards, error) {
	data, err := os.ReadFile(s.rewardsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return models.Rewards{}, nil
		}
		return models.Rewards{}, fmt.Errorf("failed to read rewards: %w", err)
	}

	var r models.Rewards
	if err := yaml.Unmarshal(data, &r); err != nil {
		return models.Rewards{}, fmt.Errorf("failed to parse rewards: %w", err)
	}
	return r, nil
}

// writeRewards writes rewards.yaml atomically.
func (s *MarkdownStore) writeRewards(rewards models.Rewards) error {
	data, err := yaml.Marshal(rewards)
	if err != nil {
		return fmt.Errorf("failed to marshal rewards: %w", err)
	}
	if err := atomicWrite(s.rewardsPath(), data); err != nil {
		return fmt.Errorf("failed to write rewards: %w", err)
	}
	return nil
}

// Close releases any resources held by the store.
func (s *MarkdownStore) Close() error {
	return nil
}

// scan reads all entry files ordered by sequence, then date.
// Unreadable or malformed files are skipped.
func (s *MarkdownStore) scan() ([]storedEntry, error) {
	root := s.entriesDir()
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	dateDirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries in %s: %w", root, err)
	}

	var stored []storedEntry

	for _, dateDir := range dateDirs {
		if !dateDir.IsDir() {
			continue
		}

		dirPath := filepath.Join(root, dateDir.Name())
		files, err := os.ReadDir(dirPath)
		if err != nil {
			continue
		}

		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".md") {
				continue
			}

			filePath := filepath.Join(dirPath, file.Name())
			data, err := os.ReadFile(filePath)
			if err != nil {
				continue
			}

			se, err := parseEntryFile(filePath, string(data))
			if err != nil {
				continue
			}
			stored = append(stored, se)
		}
	}

	sort.SliceStable(stored, func(i, j int) bool {
		if stored[i].seq != stored[j].seq {
			return stored[i].seq < stored[j].seq
		}
		return stored[i].entry.Date.Before(stored[j].entry.Date)
	})

	return stored, nil
}

// parseEntryFile parses a markdown file into a stored entry.
func parseEntryFile(path string, content string) (storedEntry, error) {
	header, body := parseFrontmatter(content)
	if header == "" {
		return storedEntry{}, fmt.Errorf("no frontmatter found in %s", path)
	}

	var fm entryFrontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return storedEntry{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return storedEntry{}, fmt.Errorf("invalid UUID in frontmatter: %w", err)
	}

	date, err := parseTime(fm.Date)
	if err != nil {
		return storedEntry{}, fmt.Errorf("invalid date in frontmatter: %w", err)
	}

	return storedEntry{
		entry: models.DiaryEntry{ID: id, Date: date, Text: body},
		seq:   fm.Seq,
	}, nil
}
