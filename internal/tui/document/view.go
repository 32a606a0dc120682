// Package document renders a loaded judgment document with in-document
// term search.
package document

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/casesearch/internal/detail"
	"github.com/altinukshini/casesearch/internal/model"
	"github.com/altinukshini/casesearch/internal/search"
	"github.com/altinukshini/casesearch/internal/ui"
)

type Model struct {
	viewport viewport.Model
	spinner  spinner.Model
	status   detail.Status
	docID    string
	doc      *model.Document
	width    int
	height   int
	ready    bool

	// rendered content and, per section title, the rendered line of each
	// source line
	lines     []string
	lineIndex map[string][]int

	searchInput textinput.Model
	searching   bool
	searchQuery string
	searchSeq   uint64 // bumped on every search or clear
	results     *model.TermResults
	searchErr   error
	matchLines  []int
	matchIndex  int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Find in document (/re/ for regex)"
	ti.CharLimit = 256

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.StyleInfo

	return Model{searchInput: ti, spinner: s}
}

// SetState mirrors the loader into the view.
func (m *Model) SetState(l *detail.Loader) tea.Cmd {
	m.status = l.Status()
	if l.DocID() != m.docID || l.Document() != m.doc {
		m.docID = l.DocID()
		m.doc = l.Document()
		m.clearSearch()
		m.render()
		if m.ready {
			m.viewport.GotoTop()
		}
	}
	if m.status == detail.Loading {
		return m.spinner.Tick
	}
	return nil
}

func (m Model) IsSearching() bool {
	return m.searching
}

func (m Model) MatchCount() int {
	return len(m.matchLines)
}

func (m Model) CurrentLine() int {
	if len(m.matchLines) == 0 {
		return -1
	}
	return m.matchLines[m.matchIndex]
}

func (m *Model) clearSearch() {
	m.searchSeq++
	m.searchQuery = ""
	m.results = nil
	m.searchErr = nil
	m.matchLines = nil
	m.matchIndex = 0
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.status != detail.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ui.TermSearchDoneMsg:
		if msg.DocID != m.docID || msg.Seq != m.searchSeq || m.doc == nil {
			return m, nil
		}
		m.results = msg.Results
		m.searchErr = msg.Err
		m.matchLines = nil
		m.matchIndex = 0
		if msg.Results != nil {
			for _, match := range msg.Results.Matches {
				idx := m.lineIndex[match.Section]
				if match.Line-1 < len(idx) {
					m.matchLines = append(m.matchLines, idx[match.Line-1])
				}
			}
		}
		m.refresh()
		if len(m.matchLines) > 0 {
			m.viewport.SetYOffset(m.matchLines[0])
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter":
				m.searching = false
				m.searchInput.Blur()
				m.searchQuery = m.searchInput.Value()
				if m.searchQuery == "" || m.doc == nil {
					m.clearSearch()
					m.refresh()
					return m, nil
				}
				m.searchSeq++
				return m, m.executeSearch(m.searchQuery)
			case "esc":
				m.searching = false
				m.searchInput.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "/":
			if m.doc == nil {
				return m, nil
			}
			m.searching = true
			m.searchInput.SetValue("")
			m.searchInput.Focus()
			return m, textinput.Blink
		case "n":
			if len(m.matchLines) > 0 {
				m.matchIndex = (m.matchIndex + 1) % len(m.matchLines)
				m.refresh()
				m.viewport.SetYOffset(m.matchLines[m.matchIndex])
			}
			return m, nil
		case "N":
			if len(m.matchLines) > 0 {
				m.matchIndex = (m.matchIndex - 1 + len(m.matchLines)) % len(m.matchLines)
				m.refresh()
				m.viewport.SetYOffset(m.matchLines[m.matchIndex])
			}
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = max(msg.Width-6, 10)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(msg.Height-2, 1))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(msg.Height-2, 1)
		}
		m.render()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// executeSearch runs the term search off the update loop.
func (m Model) executeSearch(pattern string) tea.Cmd {
	docID, seq := m.docID, m.searchSeq
	sections := m.doc.Sections()
	return func() tea.Msg {
		query := model.TermQuery{Pattern: pattern}
		if len(pattern) > 2 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") {
			query.Pattern = pattern[1 : len(pattern)-1]
			query.IsRegex = true
		}
		results, err := search.New().Search(sections, query)
		return ui.TermSearchDoneMsg{DocID: docID, Pattern: pattern, Seq: seq, Results: results, Err: err}
	}
}

// render lays the document out into lines and records where each section
// line landed, so term matches can be mapped to viewport offsets.
func (m *Model) render() {
	m.lines = nil
	m.lineIndex = make(map[string][]int)
	if m.doc == nil {
		m.refresh()
		return
	}
	d := m.doc
	width := max(m.width-2, 20)

	title := d.AJName
	if title == "" {
		title = "Untitled case"
	}
	m.lines = append(m.lines,
		ui.StyleTitle.Render(title),
		ui.StyleMuted.Render(fmt.Sprintf("Case %s  |  Writ %s  |  %s", d.AJID, d.WritID, d.WritName)),
	)
	if chips := ui.Chips(
		ui.Chip(ui.ChipLabel, d.Labels.Join(" ")),
		ui.Chip(ui.ChipCourt, prefixed("Court: ", d.FYMC.Join("、"))),
		ui.Chip(ui.ChipJudges, prefixed("Judges: ", d.SPRY.Join("、"))),
		ui.Chip(ui.ChipParties, prefixed("Parties: ", d.DSR.Join("、"))),
	); chips != "" {
		m.lines = append(m.lines, chips)
	}

	wrap := lipgloss.NewStyle().Width(width)
	heading := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary)
	for _, sec := range d.Sections() {
		m.lines = append(m.lines, "", heading.Render("── "+sec.Title+" ──"))
		content := sec.Content
		if strings.TrimSpace(content) == "" {
			content = "(none)"
		}
		src := strings.Split(content, "\n")
		idx := make([]int, len(src))
		for i, line := range src {
			idx[i] = len(m.lines)
			m.lines = append(m.lines, strings.Split(wrap.Render(line), "\n")...)
		}
		m.lineIndex[sec.Title] = idx
	}
	m.refresh()
}

func prefixed(prefix, v string) string {
	if v == "" {
		return ""
	}
	return prefix + v
}

// refresh pushes the rendered lines into the viewport with match highlights.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	if len(m.matchLines) == 0 {
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		return
	}
	matchSet := make(map[int]bool, len(m.matchLines))
	for _, l := range m.matchLines {
		matchSet[l] = true
	}
	current := m.matchLines[m.matchIndex]
	highlight := lipgloss.NewStyle().Background(ui.ColorBorder)

	out := make([]string, len(m.lines))
	for i, line := range m.lines {
		switch {
		case i == current:
			out[i] = ui.StyleMatch.Render(line)
		case matchSet[i]:
			out[i] = highlight.Render(line)
		default:
			out[i] = line
		}
	}
	m.viewport.SetContent(strings.Join(out, "\n"))
}

func (m Model) View() string {
	switch m.status {
	case detail.Idle:
		return ""
	case detail.Loading:
		return fmt.Sprintf("\n  %s Loading document...", m.spinner.View())
	case detail.NotFound, detail.Failed:
		return "\n  Document not found."
	}

	header := fmt.Sprintf(" %s  %3.f%%", m.docID, m.viewport.ScrollPercent()*100)
	switch {
	case m.searchErr != nil:
		header += "  " + ui.StyleFailure.Render("[invalid pattern]")
	case m.searchQuery != "" && len(m.matchLines) > 0:
		header += fmt.Sprintf("  [%d/%d matches]", m.matchIndex+1, len(m.matchLines))
	case m.searchQuery != "" && m.results != nil:
		header += "  [no matches]"
	}
	hints := ui.StyleMuted.Render("  /:find  n/N:match  j/k:scroll  g/G:top/bot  esc:back")
	top := lipgloss.NewStyle().Bold(true).Render(header) + hints

	if m.searching {
		return top + "\n  /" + m.searchInput.View() + "\n" + m.viewport.View()
	}
	return top + "\n" + m.viewport.View()
}
