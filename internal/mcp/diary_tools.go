// ABOUTME: MCP tool implementations for diary operations.
// ABOUTME: Registers add_entry, list_entries, read_entry, and get_rewards.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/diary/internal/models"
	"github.com/2389-research/diary/internal/storage"
)

const dateLayout = "2006-01-02 15:04:05"

func (s *Server) registerDiaryTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_entry",
		Description: "Write a diary entry. The text is stored exactly as given and earns 10 points. Blank text is ignored.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"text": {"type": "string", "description": "Entry text"}
			},
			"required": ["text"]
		}`),
	}, s.handleAddEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_entries",
		Description: "List diary entries, most recent first.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "number", "description": "Maximum number of entries to return (default: 10, 0 for all)"}
			}
		}`),
	}, s.handleListEntries)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "read_entry",
		Description: "Read the full text of a diary entry by ID or ID prefix.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Entry ID or unique prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleReadEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "get_rewards",
		Description: "Get the current points and streak.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleGetRewards)
}

func (s *Server) handleAddEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Text *string `json:"text"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Text == nil {
		return toolError("text is required"), nil
	}

	entry, ok, saveErr := s.session.Submit(*args.Text)
	if !ok {
		return textResult("Nothing recorded: entry text is blank."), nil
	}

	rewards := s.session.Journal.Rewards().Snapshot()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Entry recorded: %s\n", entry.ID))
	sb.WriteString(fmt.Sprintf("Date: %s\n", entry.Date.Format(dateLayout)))
	sb.WriteString(fmt.Sprintf("Points: %d  Streak: %d\n", rewards.Points, rewards.Streak))
	if saveErr != nil {
		sb.WriteString(fmt.Sprintf("Warning: failed to save: %v\n", saveErr))
	}

	return textResult(sb.String()), nil
}

func (s *Server) handleListEntries(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Limit *int `json:"limit"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	limit := 10
	if args.Limit != nil && *args.Limit >= 0 {
		limit = *args.Limit
	}

	entries := s.session.Journal.Entries().Sorted()
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	if len(entries) == 0 {
		return textResult("No entries yet."), nil
	}

	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("- %s %s %s\n",
			entry.Date.Format(dateLayout),
			entry.ShortID(),
			summarize(entry.Text, 80),
		))
	}

	return textResult(sb.String()), nil
}

func (s *Server) handleReadEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.ID == "" {
		return toolError("id is required"), nil
	}

	entry, err := storage.FindEntry(s.session.Journal.Entries().Entries(), args.ID)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return toolError("no entry with id %q", args.ID), nil
		}
		return toolError("failed to read entry: %v", err), nil
	}

	return textResult(formatEntry(entry)), nil
}

func (s *Server) handleGetRewards(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	r := s.session.Journal.Rewards().Snapshot()
	return textResult(fmt.Sprintf("Points: %d\nStreak: %d\n", r.Points, r.Streak)), nil
}

func formatEntry(entry models.DiaryEntry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID: %s\n", entry.ID))
	sb.WriteString(fmt.Sprintf("Date: %s\n\n", entry.Date.Format(dateLayout)))
	sb.WriteString(entry.Text)
	return sb.String()
}

// summarize collapses whitespace and shortens text to maxLen runes.
func summarize(text string, maxLen int) string {
	s := strings.Join(strings.Fields(text), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// decodeArgs unmarshals tool arguments, treating absent arguments as an empty object.
func decodeArgs(req *gomcp.CallToolRequest, v any) error {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func textResult(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
