// Package alert is a modal that reports a failed action and offers to
// retry it.
package alert

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/casesearch/internal/ui"
)

// ResultMsg is emitted when the alert is answered.
type ResultMsg struct {
	Retry  bool
	Action string
	Data   interface{}
}

type Model struct {
	Title   string
	Message string
	Action  string
	Data    interface{}
	active  bool
}

func New(title, message, action string, data interface{}) Model {
	return Model{
		Title:   title,
		Message: message,
		Action:  action,
		Data:    data,
		active:  true,
	}
}

func (m Model) IsActive() bool { return m.active }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y", "enter":
			m.active = false
			return m, m.emit(true)
		case "n", "N", "esc":
			m.active = false
			return m, m.emit(false)
		}
	}
	return m, nil
}

func (m Model) emit(retry bool) tea.Cmd {
	action, data := m.Action, m.Data
	return func() tea.Msg {
		return ResultMsg{Retry: retry, Action: action, Data: data}
	}
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorFailure).
		Padding(1, 2).
		Width(50)

	title := lipgloss.NewStyle().Bold(true).
		Foreground(ui.ColorFailure).
		Render(m.Title)

	retry := lipgloss.NewStyle().Padding(0, 1).Bold(true).
		Background(ui.ColorPrimary).Foreground(lipgloss.Color("#F9FAFB")).
		Render("Retry")
	dismiss := lipgloss.NewStyle().Padding(0, 1).Foreground(ui.ColorMuted).Render("Dismiss")

	content := fmt.Sprintf("%s\n\n%s\n\n%s  %s\n\ny/enter to retry, n/esc to dismiss",
		title, m.Message, retry, dismiss)

	return style.Render(content)
}
