// ABOUTME: Tests for diary MCP tool handlers.
// ABOUTME: Covers add_entry, list_entries, read_entry, and get_rewards.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/diary/internal/models"
	"github.com/2389-research/diary/internal/storage"
)

// pickyBackend fails to append entries whose text starts with "fail".
type pickyBackend struct {
	storage.MemoryStore
}

func (b *pickyBackend) AppendEntry(entry models.DiaryEntry) error {
	if strings.HasPrefix(entry.Text, "fail") {
		return errors.New("rejected " + entry.Text)
	}
	return b.MemoryStore.AppendEntry(entry)
}

func makeDiaryServer(t *testing.T) *Server {
	t.Helper()
	session, err := storage.Restore(storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("Restore error: %v", err)
	}
	server, err := NewServer(session)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	return server
}

func callTool(t *testing.T, s *Server, name string, args interface{}) *gomcp.CallToolResult {
	t.Helper()
	var raw json.RawMessage
	if args != nil {
		data, err := json.Marshal(args)
		if err != nil {
			t.Fatalf("failed to marshal args: %v", err)
		}
		raw = data
	}

	req := &gomcp.CallToolRequest{
		Params: &gomcp.CallToolParamsRaw{
			Name:      name,
			Arguments: raw,
		},
	}

	handlers := map[string]func(context.Context, *gomcp.CallToolRequest) (*gomcp.CallToolResult, error){
		"add_entry":    s.handleAddEntry,
		"list_entries": s.handleListEntries,
		"read_entry":   s.handleReadEntry,
		"get_rewards":  s.handleGetRewards,
	}
	handler, ok := handlers[name]
	if !ok {
		t.Fatalf("unknown tool: %s", name)
	}

	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return result
}

func getTextContent(result *gomcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if tc, ok := result.Content[0].(*gomcp.TextContent); ok {
		return tc.Text
	}
	return ""
}

func TestAddEntryValid(t *testing.T) {
	s := makeDiaryServer(t)

	result := callTool(t, s, "add_entry", map[string]string{"text": "Had a good day"})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}

	text := getTextContent(result)
	if !strings.Contains(text, "Points: 10  Streak: 1") {
		t.Errorf("expected updated counters in response, got: %s", text)
	}
	if n := s.session.Journal.Entries().Len(); n != 1 {
		t.Errorf("entry count = %d, want 1", n)
	}
}

func TestAddEntryBlankIsIgnored(t *testing.T) {
	s := makeDiaryServer(t)

	result := callTool(t, s, "add_entry", map[string]string{"text": "   "})
	if result.IsError {
		t.Errorf("blank text should not be a tool error: %s", getTextContent(result))
	}
	if !strings.Contains(getTextContent(result), "Nothing recorded") {
		t.Errorf("unexpected response: %s", getTextContent(result))
	}
	if n := s.session.Journal.Entries().Len(); n != 0 {
		t.Errorf("entry count = %d, want 0", n)
	}
	if p := s.session.Journal.Rewards().Points(); p != 0 {
		t.Errorf("points = %d, want 0", p)
	}
}

func TestAddEntryReportsOnlyItsOwnSaveFailure(t *testing.T) {
	session, err := storage.Restore(&pickyBackend{})
	if err != nil {
		t.Fatalf("Restore error: %v", err)
	}
	s, err := NewServer(session)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}

	const n = 20
	texts := make([]string, n)
	results := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			texts[i] = fmt.Sprintf("fail-%d", i)
		} else {
			texts[i] = fmt.Sprintf("ok-%d", i)
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			raw, _ := json.Marshal(map[string]string{"text": texts[i]})
			req := &gomcp.CallToolRequest{Params: &gomcp.CallToolParamsRaw{Name: "add_entry", Arguments: raw}}
			result, _ := s.handleAddEntry(context.Background(), req)
			results[i] = getTextContent(result)
		}(i)
	}
	wg.Wait()

	for i, text := range results {
		failed := strings.HasPrefix(texts[i], "fail")
		if failed && !strings.Contains(text, "rejected "+texts[i]) {
			t.Errorf("%s: expected its own save failure, got: %s", texts[i], text)
		}
		if !failed && strings.Contains(text, "Warning") {
			t.Errorf("%s: expected no warning, got: %s", texts[i], text)
		}
		if strings.Count(text, "rejected") > 1 {
			t.Errorf("%s: reported another call's failure: %s", texts[i], text)
		}
	}
}

func TestAddEntryMissingText(t *testing.T) {
	s := makeDiaryServer(t)

	result := callTool(t, s, "add_entry", map[string]string{})
	if !result.IsError {
		t.Error("expected error when text is missing")
	}
}

func TestListEntriesNewestFirst(t *testing.T) {
	s := makeDiaryServer(t)
	callTool(t, s, "add_entry", map[string]string{"text": "A"})
	callTool(t, s, "add_entry", map[string]string{"text": "B"})

	entries := s.session.Journal.Entries().Sorted()
	text := getTextContent(callTool(t, s, "list_entries", nil))

	if got := strings.Count(text, "- "); got != 2 {
		t.Errorf("expected 2 listed entries, got %d:\n%s", got, text)
	}
	first := strings.Index(text, entries[0].ShortID())
	second := strings.Index(text, entries[1].ShortID())
	if first == -1 || second == -1 || first > second {
		t.Errorf("listing not in sorted order:\n%s", text)
	}
}

func TestListEntriesLimit(t *testing.T) {
	s := makeDiaryServer(t)
	for _, text := range []string{"one", "two", "three"} {
		callTool(t, s, "add_entry", map[string]string{"text": text})
	}

	text := getTextContent(callTool(t, s, "list_entries", map[string]int{"limit": 2}))
	if got := strings.Count(text, "- "); got != 2 {
		t.Errorf("expected 2 entries with limit, got %d:\n%s", got, text)
	}
}

func TestListEntriesEmpty(t *testing.T) {
	s := makeDiaryServer(t)

	text := getTextContent(callTool(t, s, "list_entries", nil))
	if !strings.Contains(text, "No entries yet") {
		t.Errorf("unexpected response for empty diary: %s", text)
	}
}

func TestReadEntry(t *testing.T) {
	s := makeDiaryServer(t)
	callTool(t, s, "add_entry", map[string]string{"text": "  full text\nsecond line"})
	entry := s.session.Journal.Entries().Entries()[0]

	result := callTool(t, s, "read_entry", map[string]string{"id": entry.ShortID()})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if !strings.HasSuffix(getTextContent(result), "  full text\nsecond line") {
		t.Errorf("expected verbatim text, got: %q", getTextContent(result))
	}
}

func TestReadEntryNotFound(t *testing.T) {
	s := makeDiaryServer(t)

	result := callTool(t, s, "read_entry", map[string]string{"id": "deadbeef"})
	if !result.IsError {
		t.Error("expected error for unknown id")
	}

	result = callTool(t, s, "read_entry", map[string]string{})
	if !result.IsError {
		t.Error("expected error when id is missing")
	}
}

func TestGetRewards(t *testing.T) {
	s := makeDiaryServer(t)
	callTool(t, s, "add_entry", map[string]string{"text": "A"})
	callTool(t, s, "add_entry", map[string]string{"text": "B"})

	text := getTextContent(callTool(t, s, "get_rewards", nil))
	if !strings.Contains(text, "Points: 20") || !strings.Contains(text, "Streak: 2") {
		t.Errorf("unexpected rewards: %s", text)
	}
}

func TestSummarize(t *testing.T) {
	if got := summarize("  a\n\tb  ", 10); got != "a b" {
		t.Errorf("summarize collapsed = %q, want %q", got, "a b")
	}
	if got := summarize("abcdef", 3); got != "abc..." {
		t.Errorf("summarize truncated = %q, want %q", got, "abc...")
	}
}
