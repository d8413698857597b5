// ABOUTME: Shared lipgloss styles for the diary screens.
// ABOUTME: Colors follow the 256-color palette used across the setup wizard and diary view.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	rewardStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Align(lipgloss.Right)
	dateStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	entryTextStyle = lipgloss.NewStyle().PaddingLeft(2)
	inputBoxStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241"))
)
