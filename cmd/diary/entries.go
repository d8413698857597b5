// ABOUTME: CLI commands for diary entries and rewards.
// ABOUTME: Provides write, list, read, and rewards subcommands over the restored journal.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/diary"
	"github.com/2389-research/diary/internal/storage"
)

const dateLayout = "2006-01-02 15:04:05"

var writeCmd = &cobra.Command{
	Use:   "write <text>",
	Short: "Write a diary entry",
	Long: `Add an entry with the given text. Multiple arguments are joined with spaces.
Blank text is ignored and nothing is recorded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWrite,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List diary entries",
	Long:  "List diary entries, newest first.",
	RunE:  runList,
}

var readCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Read a diary entry",
	Long:  "Print one entry by its full ID or a unique ID prefix.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Show points and streak",
	RunE:  runRewards,
}

var listLimit int

func init() {
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(rewardsCmd)

	listCmd.Flags().IntVar(&listLimit, "limit", 10, "Maximum number of entries to show (0 for all)")
}

func runWrite(cmd *cobra.Command, args []string) error {
	entry, ok, saveErr := globalSession.Submit(strings.Join(args, " "))
	if !ok {
		return nil
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Entry written: %s\n", entry.ID)
	printRewards(out, globalSession.Journal)

	if saveErr != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to save: %v\n", saveErr)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	if listLimit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", listLimit)
	}

	out := cmd.OutOrStdout()
	entries := globalSession.Journal.Entries().Sorted()
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No entries found.")
		return nil
	}
	if listLimit > 0 && len(entries) > listLimit {
		entries = entries[:listLimit]
	}

	for _, entry := range entries {
		_, _ = fmt.Fprintf(out, "%s %s  %s\n",
			entry.Date.Format(dateLayout),
			entry.ShortID(),
			truncate(firstLine(entry.Text), 60),
		)
	}
	return nil
}

func runRead(cmd *cobra.Command, args []string) error {
	entry, err := storage.FindEntry(globalSession.Journal.Entries().Entries(), args[0])
	if err != nil {
		return fmt.Errorf("failed to read entry: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "ID: %s\n", entry.ID)
	_, _ = fmt.Fprintf(out, "Date: %s\n\n", entry.Date.Format(dateLayout))
	_, _ = fmt.Fprintln(out, entry.Text)
	return nil
}

func runRewards(cmd *cobra.Command, args []string) error {
	printRewards(cmd.OutOrStdout(), globalSession.Journal)
	return nil
}

func printRewards(w io.Writer, journal *diary.Journal) {
	r := journal.Rewards().Snapshot()
	_, _ = fmt.Fprintf(w, "Points: %d\nStreak: %d\n", r.Points, r.Streak)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
