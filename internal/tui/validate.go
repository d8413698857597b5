// ABOUTME: Storage validation for the setup wizard.
// ABOUTME: Opens the chosen backend and reads it once to confirm the location is usable.
package tui

import (
	"context"
	"fmt"

	"github.com/2389-research/diary/internal/config"
	"github.com/2389-research/diary/internal/storage"
)

// ValidateStorage opens the backend at dataDir and loads its contents.
// The context allows cancellation when the user quits during validation.
func ValidateStorage(ctx context.Context, backend, dataDir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := &config.Config{Storage: config.StorageConfig{Backend: backend, DataDir: dataDir}}
	b, err := storage.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = b.Close() }()

	if _, err := b.LoadEntries(); err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}
	if _, err := b.LoadRewards(); err != nil {
		return fmt.Errorf("failed to read rewards: %w", err)
	}
	return ctx.Err()
}
