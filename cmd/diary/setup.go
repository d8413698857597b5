// ABOUTME: Cobra command for interactive storage setup.
// ABOUTME: Launches a bubbletea TUI wizard to choose and validate the storage backend.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/config"
	"github.com/2389-research/diary/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose where your diary is stored",
	Long:  "Interactive wizard to configure the storage backend and data directory.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	defaultDataDir, err := config.DefaultDataDir()
	if err != nil {
		return fmt.Errorf("failed to resolve default data dir: %w", err)
	}

	model := tui.NewSetupModel(cfg.Storage.Backend, cfg.Storage.DataDir, defaultDataDir)

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	out := cmd.OutOrStdout()
	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		_, _ = fmt.Fprintln(out, "Setup cancelled.")
		return nil
	}

	backend, dataDir := final.Result()
	cfg.Storage.Backend = backend
	cfg.Storage.DataDir = dataDir

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(out, "Config saved successfully.")
	} else {
		_, _ = fmt.Fprintf(out, "Config saved to %s\n", configPath)
	}
	return nil
}
