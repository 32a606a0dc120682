package searchbox

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/casesearch/internal/ui"
)

const maxShown = 8

// SubmitMsg is emitted when the user presses enter in the box.
type SubmitMsg struct {
	Query string
}

type Model struct {
	input       textinput.Model
	suggestions []string
	cursor      int // -1 = no suggestion highlighted
	width       int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search cases, e.g. 借款合同纠纷"
	ti.CharLimit = 256
	ti.Prompt = "> "

	return Model{input: ti, cursor: -1}
}

func (m Model) Value() string {
	return m.input.Value()
}

func (m *Model) SetValue(v string) {
	m.input.SetValue(v)
	m.input.CursorEnd()
}

// SetSuggestions replaces the dropdown entries and clears the highlight.
func (m *Model) SetSuggestions(s []string) {
	m.suggestions = s
	m.cursor = -1
}

func (m Model) Suggestions() []string {
	return m.suggestions
}

func (m *Model) Focus() tea.Cmd {
	m.input.Focus()
	return textinput.Blink
}

func (m *Model) Blur() {
	m.input.Blur()
}

func (m Model) Focused() bool {
	return m.input.Focused()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.input.Focused() {
			return m, nil
		}
		switch msg.String() {
		case "down", "ctrl+n":
			if n := m.shown(); n > 0 {
				m.cursor = (m.cursor + 1) % n
			}
			return m, nil
		case "up", "ctrl+p":
			if n := m.shown(); n > 0 {
				m.cursor--
				if m.cursor < -1 {
					m.cursor = n - 1
				}
			}
			return m, nil
		case "tab":
			m.accept()
			return m, nil
		case "enter":
			m.accept()
			q := m.input.Value()
			return m, func() tea.Msg { return SubmitMsg{Query: q} }
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-6, 10)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// accept copies the highlighted suggestion into the input.
func (m *Model) accept() {
	if m.cursor >= 0 && m.cursor < m.shown() {
		m.input.SetValue(m.suggestions[m.cursor])
		m.input.CursorEnd()
	}
	m.cursor = -1
}

func (m Model) shown() int {
	return min(len(m.suggestions), maxShown)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())

	if m.input.Focused() && m.shown() > 0 {
		highlight := lipgloss.NewStyle().Background(ui.ColorHighlight).Bold(true)
		for i, s := range m.suggestions[:m.shown()] {
			line := "    " + s
			if i == m.cursor {
				line = highlight.Render("  > " + s)
			} else {
				line = ui.StyleMuted.Render(line)
			}
			b.WriteString("\n" + line)
		}
	}
	return b.String()
}
