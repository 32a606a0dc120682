package queryinfo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/casesearch/internal/model"
	"github.com/altinukshini/casesearch/internal/ui"
)

type Model struct {
	meta     *model.QueryMeta
	stale    bool // meta is the local snapshot, not the server's
	err      error
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

func New() Model {
	return Model{}
}

// SetMeta shows meta. stale marks a locally cached snapshot shown while
// the server copy is being fetched or could not be fetched.
func (m *Model) SetMeta(meta *model.QueryMeta, stale bool, err error) {
	m.meta = meta
	m.stale = stale
	m.err = err
	if m.ready {
		m.viewport.SetContent(m.render())
	}
}

func (m Model) Meta() *model.QueryMeta {
	return m.meta
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		if !m.ready {
			m.viewport = viewport.New(wsm.Width, max(wsm.Height-1, 1))
			m.ready = true
			m.viewport.SetContent(m.render())
		} else {
			m.viewport.Width = wsm.Width
			m.viewport.Height = max(wsm.Height-1, 1)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.meta == nil && m.err == nil {
		return "\n  Loading query info..."
	}
	header := " Query info"
	if m.meta != nil {
		header = " Query " + m.meta.ID
	}
	hints := ui.StyleMuted.Render("  j/k:scroll  esc:back")
	headerLine := ui.StyleTitle.Render(header) + hints

	if !m.ready {
		return headerLine + "\n" + m.render()
	}
	return headerLine + "\n" + m.viewport.View()
}

func (m Model) render() string {
	var b strings.Builder
	if m.err != nil {
		b.WriteString("  " + ui.StyleFailure.Render(fmt.Sprintf("Could not fetch query info: %v", m.err)) + "\n\n")
	}
	if m.meta == nil {
		return b.String()
	}

	meta := m.meta
	bold := lipgloss.NewStyle().Bold(true)
	label := lipgloss.NewStyle().Foreground(ui.ColorMuted).Width(16)
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB"))

	row := func(l, v string) {
		if v == "" {
			v = "-"
		}
		b.WriteString("  " + label.Render(l) + value.Render(v) + "\n")
	}

	if m.stale {
		b.WriteString("  " + ui.StyleWarning.Render("Local snapshot, may be out of date") + "\n\n")
	}

	b.WriteString("  " + bold.Render("Resource") + "\n\n")
	row("ID", meta.ID)
	row("Version", strconv.Itoa(meta.Version))
	row("Total results", strconv.Itoa(meta.TotalResults))
	row("Created", formatTime(meta.CreatedAt))
	row("Last accessed", formatTime(meta.LastAccessed))

	p := meta.Params
	b.WriteString("\n  " + bold.Render("Parameters") + "\n\n")
	row("Query", p.Query)
	row("Full text", p.QW)
	row("Case name", p.AJMC)
	row("Cause", p.AY)
	row("Court", p.FYMC)
	row("Judges", p.SPRY)
	row("Litigants", p.DSR)

	return b.String()
}

func formatTime(ts model.Timestamp) string {
	t := ts.Time()
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.DateTime)
}
