package results

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/casesearch/internal/model"
	"github.com/altinukshini/casesearch/internal/pager"
	"github.com/altinukshini/casesearch/internal/ui"
)

// --- Custom delegate ---

type resultDelegate struct{}

func (d resultDelegate) Height() int                             { return 3 }
func (d resultDelegate) Spacing() int                            { return 1 }
func (d resultDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d resultDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(resultItem)
	if !ok {
		return
	}
	r := ri.result

	score := "-"
	if r.Score != nil {
		score = fmt.Sprintf("%.2f", *r.Score)
	}

	line1 := fmt.Sprintf(" %s  %s", ui.StyleTitle.Render(r.Title()), ui.StyleMuted.Render("score "+score))
	line2 := "   " + ui.Chips(
		ui.Chip(ui.ChipLabel, r.Labels.Join(" ")),
		ui.Chip(ui.ChipCourt, r.FYMC.Join("、")),
		ui.Chip(ui.ChipJudges, r.SPRY.Join("、")),
		ui.Chip(ui.ChipParties, r.DSR.Join("、")),
	)
	excerptW := max(m.Width()-6, 20)
	line3 := "   " + ui.StyleMuted.Render(truncate(oneLine(r.Excerpt(100)), excerptW))

	if index == m.Index() {
		hl := lipgloss.NewStyle().Background(ui.ColorHighlight).Width(m.Width())
		line1 = hl.Render(line1)
		line2 = hl.Render(line2)
		line3 = hl.Render(line3)
	}

	fmt.Fprintf(w, "%s\n%s\n%s", line1, line2, line3)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// --- Item ---

type resultItem struct {
	result model.CaseResult
}

func (r resultItem) FilterValue() string {
	return r.result.AJName + " " + r.result.AJID
}

// --- Model ---

type Model struct {
	list      list.Model
	paginator paginator.Model
	spinner   spinner.Model
	status    pager.Status
	summary   string
	err       error
	width     int
	height    int
}

func New() Model {
	l := list.New(nil, resultDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	// The app owns h/l/left/right for server-side paging; keep the list's
	// own paging on pgup/pgdown only.
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next page"))
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev page"))
	l.KeyMap.GoToStart = key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "go to start"))
	l.KeyMap.GoToEnd = key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "go to end"))
	l.DisableQuitKeybindings()

	p := paginator.New()
	p.Type = paginator.Arabic
	p.ArabicFormat = "Page %d of %d"
	p.PerPage = pager.PageSize

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.StyleInfo

	return Model{list: l, paginator: p, spinner: s}
}

// SetState mirrors the pager into the view. Items are replaced only when
// results were committed, and the cursor returns to the top.
func (m *Model) SetState(p *pager.Pager) tea.Cmd {
	m.status = p.Status()
	m.err = p.Err()
	// The paginator is 0-based; Page may exceed DisplayPages and is shown as is.
	m.paginator.TotalPages = max(p.DisplayPages(), p.Page())
	m.paginator.Page = max(p.Page()-1, 0)

	var cmd tea.Cmd
	switch m.status {
	case pager.Loading:
		return m.spinner.Tick
	case pager.Loaded:
		items := make([]list.Item, len(p.Results()))
		for i, r := range p.Results() {
			items[i] = resultItem{result: r}
		}
		cmd = m.list.SetItems(items)
		m.list.Select(0)
	default:
		cmd = m.list.SetItems(nil)
	}
	return cmd
}

// SetSummary sets the line shown above the list, typically the query.
func (m *Model) SetSummary(s string) {
	m.summary = s
}

func (m Model) SelectedResult() *model.CaseResult {
	if m.status != pager.Loaded {
		return nil
	}
	if item, ok := m.list.SelectedItem().(resultItem); ok {
		return &item.result
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.status != pager.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// summary(1) + blank(1) + pagination(2)
		m.list.SetSize(msg.Width, max(msg.Height-4, 1))
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := ui.StyleMuted.Render("  " + m.summary)

	var body string
	switch m.status {
	case pager.Idle:
		body = ""
	case pager.Loading:
		body = fmt.Sprintf("\n  %s Loading results...", m.spinner.View())
	case pager.Empty, pager.Failed:
		// Failures render like an empty page; the cause is in the log.
		body = "\n  No matching cases."
	default:
		body = m.list.View() + "\n\n  " + m.paginator.View() + ui.StyleMuted.Render("   <-/->: page  g/G: first/last")
	}
	return header + "\n" + body
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{
		ui.Keys.Enter,
		ui.Keys.PrevPage,
		ui.Keys.NextPage,
		ui.Keys.Edit,
		ui.Keys.Refresh,
	}
}
