// Package advanced is the structured search form: full text, case name,
// cause of action, court, judges and litigants.
package advanced

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/casesearch/internal/model"
	"github.com/altinukshini/casesearch/internal/ui"
)

// ResultMsg is emitted when the user submits or cancels the form.
type ResultMsg struct {
	Applied bool
	Query   model.UserQuery
}

type field int

const (
	fieldQuery field = iota
	fieldQW
	fieldAJMC
	fieldAY
	fieldFYMC
	fieldSPRY
	fieldDSR
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldQuery: "Query:",
	fieldQW:    "Full text:",
	fieldAJMC:  "Case name:",
	fieldAY:    "Cause:",
	fieldFYMC:  "Court:",
	fieldSPRY:  "Judges:",
	fieldDSR:   "Litigants:",
}

type Model struct {
	title     string
	withQuery bool // show the free-text query field (edit mode)
	focused   field
	inputs    [fieldCount]textinput.Model
	labels    []string
	labelIdx  int    // -1 = any cause
	customAY  string // cause that is not in labels, kept as-is
	width     int
	height    int
}

// New builds a form pre-filled from current. withQuery adds the free-text
// query field, which the home screen keeps in its own search box.
func New(title string, labels []string, current model.UserQuery, withQuery bool) Model {
	m := Model{
		title:     title,
		withQuery: withQuery,
		labels:    labels,
		labelIdx:  -1,
	}
	values := [fieldCount]string{
		fieldQuery: current.Query,
		fieldQW:    current.QW,
		fieldAJMC:  current.AJMC,
		fieldFYMC:  current.FYMC,
		fieldSPRY:  current.SPRY,
		fieldDSR:   current.DSR,
	}
	for f := field(0); f < fieldCount; f++ {
		if f == fieldAY {
			continue
		}
		ti := textinput.New()
		ti.CharLimit = 4096
		ti.Width = 40
		ti.SetValue(values[f])
		m.inputs[f] = ti
	}
	m.inputs[fieldQW].Placeholder = "text contained anywhere in the judgment"
	m.inputs[fieldSPRY].Placeholder = "e.g. 王五"
	m.inputs[fieldDSR].Placeholder = "e.g. 张三"
	m.setCause(current.AY)

	m.focused = fieldQW
	if withQuery {
		m.focused = fieldQuery
	}
	return m
}

func (m *Model) setCause(ay string) {
	m.labelIdx = -1
	m.customAY = ""
	if ay == "" {
		return
	}
	for i, l := range m.labels {
		if l == ay {
			m.labelIdx = i
			return
		}
	}
	m.customAY = ay
}

// SetLabels installs the cause-of-action options, keeping the current choice.
func (m *Model) SetLabels(labels []string) {
	ay := m.cause()
	m.labels = labels
	m.setCause(ay)
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Focus puts the cursor into the current text field.
func (m *Model) Focus() tea.Cmd {
	m.blurInputs()
	if m.focused != fieldAY {
		m.inputs[m.focused].Focus()
		return textinput.Blink
	}
	return nil
}

func (m *Model) Blur() {
	m.blurInputs()
}

// Query returns the form's values. The free-text query is only included
// when the form shows it.
func (m Model) Query() model.UserQuery {
	q := model.UserQuery{
		QW:   m.inputs[fieldQW].Value(),
		AJMC: m.inputs[fieldAJMC].Value(),
		AY:   m.cause(),
		FYMC: m.inputs[fieldFYMC].Value(),
		SPRY: m.inputs[fieldSPRY].Value(),
		DSR:  m.inputs[fieldDSR].Value(),
	}
	if m.withQuery {
		q.Query = m.inputs[fieldQuery].Value()
	}
	return q
}

func (m Model) cause() string {
	if m.labelIdx >= 0 && m.labelIdx < len(m.labels) {
		return m.labels[m.labelIdx]
	}
	return m.customAY
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.blurInputs()
		return m, emitResult(false, model.UserQuery{})
	case "enter":
		m.blurInputs()
		return m, emitResult(true, m.Query())
	case "tab", "down":
		m.moveFocus(1)
		return m, m.Focus()
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, m.Focus()
	case "ctrl+r":
		for f := range m.inputs {
			if field(f) != fieldAY {
				m.inputs[f].SetValue("")
			}
		}
		m.setCause("")
		return m, nil
	}

	if m.focused == fieldAY {
		switch keyMsg.String() {
		case "right", "l", " ":
			m.labelIdx = cycleForward(m.labelIdx, len(m.labels))
			m.customAY = ""
		case "left", "h":
			m.labelIdx = cycleBackward(m.labelIdx, len(m.labels))
			m.customAY = ""
		case "backspace", "delete":
			m.setCause("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *Model) moveFocus(delta int) {
	first := fieldQW
	if m.withQuery {
		first = fieldQuery
	}
	next := int(m.focused) + delta
	if next < int(first) {
		next = int(fieldCount) - 1
	}
	if next >= int(fieldCount) {
		next = int(first)
	}
	m.focused = field(next)
}

func (m *Model) blurInputs() {
	for f := range m.inputs {
		m.inputs[f].Blur()
	}
}

// View renders the form as a bordered box.
func (m Model) View() string {
	return m.render(true)
}

// InlineView renders the fields without a box, for embedding under the
// home screen's search box.
func (m Model) InlineView() string {
	return m.render(false)
}

func (m Model) render(boxed bool) string {
	labelStyle := lipgloss.NewStyle().Width(12).Foreground(ui.ColorMuted)
	focusedLabelStyle := lipgloss.NewStyle().Width(12).Bold(true).Foreground(ui.ColorPrimary)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB"))
	anyStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted).Italic(true)

	var rows []string
	for f := field(0); f < fieldCount; f++ {
		if f == fieldQuery && !m.withQuery {
			continue
		}
		ls := labelStyle
		cursor := "  "
		if f == m.focused {
			ls = focusedLabelStyle
			cursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render("> ")
		}

		var value string
		if f == fieldAY {
			switch ay := m.cause(); {
			case ay == "":
				value = anyStyle.Render("Any cause")
			case len(m.labels) == 0:
				value = valueStyle.Render(ay)
			default:
				value = valueStyle.Render(fmt.Sprintf("< %s >", ay))
			}
		} else {
			value = m.inputs[f].View()
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, ls.Render(fieldLabels[f]), value))
	}

	help := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		MarginTop(1).
		Render("tab: next field  h/l: pick cause  ctrl+r: clear  enter: search  esc: close")

	if !boxed {
		return lipgloss.JoinVertical(lipgloss.Left, strings.Join(rows, "\n"), help)
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		MarginBottom(1).
		Render(m.title)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Padding(1, 2).
		Width(64).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"), help))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// cycleForward advances the index by one. -1 means "any", and going past
// the last entry wraps back to -1.
func cycleForward(idx, count int) int {
	if count == 0 {
		return -1
	}
	idx++
	if idx >= count {
		idx = -1
	}
	return idx
}

func cycleBackward(idx, count int) int {
	if count == 0 {
		return -1
	}
	idx--
	if idx < -1 {
		idx = count - 1
	}
	return idx
}

func emitResult(applied bool, q model.UserQuery) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{Applied: applied, Query: q}
	}
}
