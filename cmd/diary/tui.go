// ABOUTME: Cobra command that opens the interactive diary screen.
// ABOUTME: Also the default action of the root command.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive diary",
	Long:  "Write entries and browse them newest-first. Press ctrl+s to add an entry and esc to quit.",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	model := tui.NewDiaryModel(globalSession.Journal, tui.WithSaveErrors(globalSession.Recorder.Err))
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
