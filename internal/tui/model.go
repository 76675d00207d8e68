// Package tui is a small composer for adding bills with live name
// completion: one text input, a ranked suggestion list under it, and a
// corpus that grows with every committed name.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sap-has/bill/internal/utils"
	"github.com/Sap-has/bill/pkg/corpus"
	"github.com/Sap-has/bill/pkg/suggest"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const statusDuration = 5 * time.Second

type statusKind int

const (
	statusSuccess statusKind = iota
	statusError
	statusInfo
)

type statusTick struct{}

// Model drives the composer. The ranked list under the input is rendered
// by us rather than the textinput ghost: ghost completion only ever shows
// prefix matches, and the index also surfaces substring matches.
type Model struct {
	suggester suggest.ISuggester
	store     *corpus.Store

	input       textinput.Model
	suggestions []string
	cursor      int // -1 means free text, >= 0 selects from the list
	limit       int

	statusMessage string
	statusKind    statusKind
	statusExpiry  time.Time
	quitting      bool
}

// NewModel builds a composer over an already loaded index and store.
func NewModel(suggester suggest.ISuggester, store *corpus.Store, limit int) *Model {
	if limit < 1 {
		limit = suggest.DefaultLimit
	}
	ti := textinput.New()
	ti.Placeholder = "Bill name"
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 40
	ti.ShowSuggestions = true
	ti.Focus()

	m := &Model{
		suggester: suggester,
		store:     store,
		input:     ti,
		cursor:    -1,
		limit:     limit,
	}
	m.refreshSuggestions()
	return m
}

func statusTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return statusTick{} })
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, statusTickCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusTick:
		if !m.statusExpiry.IsZero() && time.Now().After(m.statusExpiry) {
			m.statusMessage = ""
			m.statusExpiry = time.Time{}
		}
		return m, statusTickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.input.SetValue("")
		m.refreshSuggestions()
		return m, nil
	case "down":
		if m.cursor < len(m.suggestions)-1 {
			m.cursor++
		}
		return m, nil
	case "up":
		if m.cursor >= 0 {
			m.cursor--
		}
		return m, nil
	case "tab":
		m.fillFromSuggestion()
		return m, nil
	case "enter":
		m.commit()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshSuggestions()
	return m, cmd
}

// refreshSuggestions reruns the query for the current input, feeding both
// our list and the textinput ghost, and drops any selection.
func (m *Model) refreshSuggestions() {
	m.suggestions = m.suggester.Suggestions(m.input.Value(), m.limit)
	m.input.SetSuggestions(m.suggestions)
	m.cursor = -1
}

// fillFromSuggestion copies the selected entry into the input, first
// entry when nothing is selected yet.
func (m *Model) fillFromSuggestion() {
	if len(m.suggestions) == 0 {
		return
	}
	idx := m.cursor
	if idx < 0 {
		idx = 0
	}
	m.input.SetValue(m.suggestions[idx])
	m.input.CursorEnd()
	m.refreshSuggestions()
}

// commit persists the selected or typed name and makes it suggestible for
// the next keystroke.
func (m *Model) commit() {
	name := m.input.Value()
	if m.cursor >= 0 && m.cursor < len(m.suggestions) {
		name = m.suggestions[m.cursor]
	}
	name = utils.CleanName(name)
	if name == "" {
		m.setStatus("Nothing to add", statusInfo)
		return
	}
	if err := m.store.Add(name); err != nil {
		m.setStatus(fmt.Sprintf("Save failed: %v", err), statusError)
		return
	}
	m.suggester.Insert(name)
	m.setStatus(fmt.Sprintf("Added '%s'", name), statusSuccess)
	m.input.SetValue("")
	m.refreshSuggestions()
}

func (m *Model) setStatus(message string, kind statusKind) {
	m.statusMessage = message
	m.statusKind = kind
	m.statusExpiry = time.Now().Add(statusDuration)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleColor.Render("bill composer"))
	b.WriteString(dimmedColor.Render(fmt.Sprintf("  %s names", utils.FormatWithCommas(m.store.Len()))))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.suggestions) == 0 {
		b.WriteString(dimmedColor.Render("no matches"))
		b.WriteString("\n")
	} else {
		for i, name := range m.suggestions {
			line := fmt.Sprintf("%d. %s", i+1, name)
			if i == m.cursor {
				b.WriteString(formatCursor("> "))
				b.WriteString(selectedColor.Render(line))
			} else {
				b.WriteString("  ")
				b.WriteString(suggestionColor.Render(line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.statusMessage != "" {
		b.WriteString(formatStatus(m.statusMessage, m.statusKind))
		b.WriteString("\n")
	}
	b.WriteString(dimmedColor.Render("[enter]add  [tab]fill  [up/down]select  [esc]clear  [ctrl+c]quit"))
	return b.String()
}
