// ABOUTME: Root Cobra command for the diary CLI.
// ABOUTME: Sets up lifecycle hooks that restore the journal from storage and close it afterwards.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/config"
	"github.com/2389-research/diary/internal/storage"
)

var globalConfig *config.Config
var globalSession *storage.Session

var rootCmd = &cobra.Command{
	Use:   "diary",
	Short: "A small diary that rewards you for writing",
	Long: `
   My Diary

Write short entries, browse them newest-first, and earn
10 points and +1 streak for every entry you keep.

Run without a subcommand to open the interactive diary.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsSession(cmd) {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		backend, err := storage.Open(cfg)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		session, err := storage.Restore(backend)
		if err != nil {
			_ = backend.Close()
			return fmt.Errorf("failed to restore diary: %w", err)
		}
		globalSession = session
		if err := session.RepairErr(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalSession != nil {
			_ = globalSession.Close()
			globalSession = nil
		}
		return nil
	},
	RunE: runTUI,
}

// needsSession reports whether cmd reads or writes the diary.
// Help, setup, and shell completion run without opening storage.
func needsSession(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "setup", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return false
		}
	}
	return true
}
