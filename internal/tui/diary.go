// ABOUTME: Single-screen bubbletea view for writing and browsing diary entries.
// ABOUTME: Shows entries newest-first, the points/streak counters, and an input area.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/diary/internal/diary"
	"github.com/2389-research/diary/internal/models"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	inputHeight   = 5

	// header (1) + blank (1) + input box (inputHeight + 2) + status (1) + help (1)
	chromeHeight = inputHeight + 6
)

// diaryState is refreshed by store and tracker notifications.
// It is held by pointer so every copy of the value-receiver model sees updates.
type diaryState struct {
	entries     []models.DiaryEntry
	rewards     models.Rewards
	unsubscribe []func()
}

// DiaryOption configures optional DiaryModel behaviour.
type DiaryOption func(*DiaryModel)

// WithSaveErrors sets a source of persistence errors checked after each accepted entry.
func WithSaveErrors(fn func() error) DiaryOption {
	return func(m *DiaryModel) {
		m.saveErr = fn
	}
}

// DiaryModel is the bubbletea model for the diary screen.
type DiaryModel struct {
	journal  *diary.Journal
	state    *diaryState
	saveErr  func() error
	input    textarea.Model
	viewport viewport.Model
	status   string
	width    int
	height   int
	quitting bool
}

// NewDiaryModel creates the diary screen over journal and subscribes to its changes.
// Call Close when the program exits to drop the subscriptions.
func NewDiaryModel(journal *diary.Journal, opts ...DiaryOption) DiaryModel {
	input := textarea.New()
	input.Placeholder = "What happened today?"
	input.ShowLineNumbers = false
	input.SetHeight(inputHeight)
	input.Focus()

	state := &diaryState{
		entries: journal.Entries().Sorted(),
		rewards: journal.Rewards().Snapshot(),
	}
	state.unsubscribe = []func(){
		journal.Entries().Subscribe(func(models.DiaryEntry) {
			state.entries = journal.Entries().Sorted()
		}),
		journal.Rewards().Subscribe(func(r models.Rewards) {
			state.rewards = r
		}),
	}

	m := DiaryModel{
		journal:  journal,
		state:    state,
		input:    input,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Init implements tea.Model.
func (m DiaryModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m DiaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyCtrlS:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit forwards the input to the journal. Blank input changes nothing.
func (m DiaryModel) submit() (tea.Model, tea.Cmd) {
	if _, ok := m.journal.Submit(m.input.Value()); !ok {
		return m, nil
	}

	m.input.Reset()
	m.status = ""
	if m.saveErr != nil {
		if err := m.saveErr(); err != nil {
			m.status = fmt.Sprintf("Warning: failed to save: %v", err)
		}
	}
	m.viewport.SetContent(m.renderEntries())
	m.viewport.GotoTop()
	return m, nil
}

func (m *DiaryModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(width - 2)
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, 1)
	m.viewport.SetContent(m.renderEntries())
}

func (m DiaryModel) renderEntries() string {
	if len(m.state.entries) == 0 {
		return promptStyle.Render("No entries yet.")
	}

	wrap := lipgloss.NewStyle().Width(max(m.width-2, 10))
	var b strings.Builder
	for i, entry := range m.state.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(dateStyle.Render(entry.Date.Format("Jan 2, 2006")))
		b.WriteString("\n")
		b.WriteString(entryTextStyle.Render(wrap.Render(entry.Text)))
		b.WriteString("\n")
	}
	return b.String()
}

// View implements tea.Model.
func (m DiaryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := brandStyle.Render("My Diary")
	counters := rewardStyle.Render(fmt.Sprintf("Points: %d  Streak: %d", m.state.rewards.Points, m.state.rewards.Streak))
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(counters), 1)
	b.WriteString(title + strings.Repeat(" ", gap) + counters)
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(inputBoxStyle.Render(m.input.View()))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(promptStyle.Render("ctrl+s add entry • pgup/pgdn scroll • esc quit"))

	return b.String()
}

// Input returns the current contents of the input area.
func (m DiaryModel) Input() string {
	return m.input.Value()
}

// Close drops the store and tracker subscriptions.
func (m DiaryModel) Close() {
	for _, fn := range m.state.unsubscribe {
		fn()
	}
	m.state.unsubscribe = nil
}
