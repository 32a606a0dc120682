package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/altinukshini/casesearch/internal/api"
	"github.com/altinukshini/casesearch/internal/config"
	"github.com/altinukshini/casesearch/internal/detail"
	"github.com/altinukshini/casesearch/internal/metrics"
	"github.com/altinukshini/casesearch/internal/model"
	"github.com/altinukshini/casesearch/internal/nav"
	"github.com/altinukshini/casesearch/internal/pager"
	"github.com/altinukshini/casesearch/internal/query"
	"github.com/altinukshini/casesearch/internal/suggest"
	"github.com/altinukshini/casesearch/internal/tui/advanced"
	"github.com/altinukshini/casesearch/internal/tui/alert"
	"github.com/altinukshini/casesearch/internal/tui/document"
	"github.com/altinukshini/casesearch/internal/tui/queryinfo"
	"github.com/altinukshini/casesearch/internal/tui/results"
	"github.com/altinukshini/casesearch/internal/tui/searchbox"
	"github.com/altinukshini/casesearch/internal/ui"
)

// SearchAPI is the read side of the search service used by the screens.
type SearchAPI interface {
	ListResults(ctx context.Context, filter api.ResultsFilter) (*model.ResultPage, error)
	GetDocument(ctx context.Context, docID string) (*model.Document, error)
	ListLabels(ctx context.Context) ([]string, error)
	Suggest(ctx context.Context, field, q string) ([]string, error)
}

// Alert actions that can be retried.
const (
	actionCreate = "create"
	actionUpdate = "update"
)

type updateRequest struct {
	QueryID string
	Query   model.UserQuery
}

type App struct {
	cfg     config.Config
	client  SearchAPI
	queries *query.Service
	logger  *zap.Logger
	host    string

	// Navigation and the state machines it drives
	history     *nav.History
	pager       *pager.Pager
	suggestions *suggest.Fetcher
	loader      *detail.Loader

	// Views
	searchBox    searchbox.Model
	advancedForm advanced.Model
	editForm     advanced.Model
	resultsView  results.Model
	documentView document.Model
	infoView     queryinfo.Model
	alertDialog  alert.Model

	// State
	labels       []string
	showAdvanced bool
	formFocused  bool // home: keys go to the advanced form instead of the search box
	editing      bool
	showInfo     bool
	submitting   bool
	showHelp     bool
	width        int
	height       int
	status       string

	initCmds []tea.Cmd
}

func NewApp(cfg config.Config, client SearchAPI, queries *query.Service, logger *zap.Logger, start nav.Location) App {
	if logger == nil {
		logger = zap.NewNop()
	}
	host := cfg.BaseURL
	if u, err := url.Parse(cfg.BaseURL); err == nil && u.Host != "" {
		host = u.Host
	}

	a := App{
		cfg:          cfg,
		client:       client,
		queries:      queries,
		logger:       logger,
		host:         host,
		history:      nav.NewHistory(start),
		pager:        pager.New(cfg.PageSize),
		suggestions:  suggest.New(),
		loader:       detail.New(),
		searchBox:    searchbox.New(),
		advancedForm: advanced.New("Advanced search", nil, model.UserQuery{}, false),
		resultsView:  results.New(),
		documentView: document.New(),
		infoView:     queryinfo.New(),
		status:       "Ready",
	}
	a.initCmds = append(a.initCmds, a.searchBox.Focus(), a.fetchLabels(), a.syncLocation())
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.initCmds...)
}

// Location is the current navigational location.
func (a App) Location() nav.Location {
	return a.history.Current()
}

// --- Data fetching commands ---

func (a App) createQuery(q model.UserQuery) tea.Cmd {
	queries := a.queries
	return func() tea.Msg {
		h, err := queries.Create(context.Background(), q)
		return ui.QueryCreatedMsg{Query: q, Handle: h, Err: err}
	}
}

func (a App) updateQuery(queryID string, q model.UserQuery) tea.Cmd {
	queries := a.queries
	return func() tea.Msg {
		h, err := queries.Update(context.Background(), queryID, q)
		return ui.QueryUpdatedMsg{QueryID: queryID, Query: q, Handle: h, Err: err}
	}
}

func (a App) fetchMeta(queryID string) tea.Cmd {
	queries := a.queries
	return func() tea.Msg {
		meta, err := queries.FetchMeta(context.Background(), queryID)
		return ui.QueryMetaMsg{QueryID: queryID, Meta: meta, Err: err}
	}
}

func (a App) fetchResults(req *pager.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	r := *req
	client := a.client
	return func() tea.Msg {
		page, err := client.ListResults(context.Background(), api.ResultsFilter{
			QueryID:  r.QueryID,
			Page:     r.Page,
			PageSize: r.PageSize,
		})
		return ui.ResultsPageMsg{Req: r, Page: page, Err: err}
	}
}

func (a App) fetchDocument(req *detail.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	r := *req
	client := a.client
	return func() tea.Msg {
		doc, err := client.GetDocument(context.Background(), r.DocID)
		return ui.DocumentLoadedMsg{Req: r, Doc: doc, Err: err}
	}
}

func (a App) fetchSuggestions(req *suggest.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	r := *req
	client := a.client
	return func() tea.Msg {
		s, err := client.Suggest(context.Background(), r.Field, r.Text)
		return ui.SuggestionsMsg{Req: r, Suggestions: s, Err: err}
	}
}

func (a App) fetchLabels() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		labels, err := client.ListLabels(context.Background())
		return ui.LabelsLoadedMsg{Labels: labels, Err: err}
	}
}

// --- Navigation ---

// syncLocation hands the current location to the component that owns its
// state. An out-of-range page is written back to the location and the
// location re-applied, which settles at once because the pager already
// holds the corrected key.
func (a *App) syncLocation() tea.Cmd {
	loc := a.history.Current()
	switch loc.Route {
	case nav.Search:
		t := a.pager.Navigate(loc.QueryID, loc.Page)
		fetch := a.fetchResults(t.Fetch)
		if t.Fetch != nil {
			a.logger.Debug("fetching results",
				zap.String("query_id", t.Fetch.QueryID),
				zap.Int("page", t.Fetch.Page),
				zap.Uint64("seq", t.Fetch.Seq))
		}
		if t.Corrected {
			metrics.PageCorrectionsTotal.Inc()
			a.logger.Info("page corrected",
				zap.String("query_id", loc.QueryID),
				zap.Int("requested", loc.Page),
				zap.Int("page", t.Page))
			a.history.Replace(loc.WithPage(t.Page))
			return tea.Batch(fetch, a.syncLocation())
		}
		a.resultsView.SetSummary(a.querySummary(loc.QueryID))
		a.searchBox.Blur()
		return tea.Batch(fetch, a.resultsView.SetState(a.pager))

	case nav.Detail:
		req := a.loader.Load(loc.DocID)
		a.searchBox.Blur()
		return tea.Batch(a.fetchDocument(req), a.documentView.SetState(a.loader))
	}

	a.formFocused = false
	a.advancedForm.Blur()
	return a.searchBox.Focus()
}

func (a *App) navigate(loc nav.Location) tea.Cmd {
	a.history.Push(loc)
	a.showInfo = false
	return a.syncLocation()
}

func (a *App) back() tea.Cmd {
	if _, ok := a.history.Back(); !ok {
		a.history.Reset(nav.HomeLocation())
	}
	a.showInfo = false
	return a.syncLocation()
}

// gotoPage rewrites the page of the current search location.
func (a *App) gotoPage(page int) tea.Cmd {
	loc := a.history.Current()
	if loc.Route != nav.Search || page == loc.Page {
		return nil
	}
	a.history.Replace(loc.WithPage(page))
	return a.syncLocation()
}

func (a App) querySummary(queryID string) string {
	if snap, ok := a.queries.Snapshot(queryID); ok {
		summary := snap.Params.Summary()
		if snap.Params.IsEmpty() {
			summary = "(all cases)"
		}
		return fmt.Sprintf("%s  |  %d results", summary, snap.TotalResults)
	}
	return "Query " + queryID
}

// submit combines the search box and the advanced fields into a new query.
func (a *App) submit() tea.Cmd {
	if a.submitting {
		return nil
	}
	q := a.advancedForm.Query()
	q.Query = a.searchBox.Value()
	a.submitting = true
	a.status = "Searching..."
	return a.createQuery(q)
}

// --- Update ---

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Alert answers arrive after the dialog has closed itself.
	if result, ok := msg.(alert.ResultMsg); ok {
		if result.Retry {
			switch result.Action {
			case actionCreate:
				a.submitting = true
				a.status = "Searching..."
				cmds = append(cmds, a.createQuery(result.Data.(model.UserQuery)))
			case actionUpdate:
				req := result.Data.(updateRequest)
				a.status = "Updating query..."
				cmds = append(cmds, a.updateQuery(req.QueryID, req.Query))
			}
		}
		return &a, tea.Batch(cmds...)
	}

	if a.alertDialog.IsActive() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			a.alertDialog, cmd = a.alertDialog.Update(msg)
			return &a, cmd
		}
	}

	if result, ok := msg.(advanced.ResultMsg); ok {
		if a.editing {
			a.editing = false
			loc := a.history.Current()
			if result.Applied && loc.Route == nav.Search {
				a.status = "Updating query..."
				cmds = append(cmds, a.updateQuery(loc.QueryID, result.Query))
			}
			return &a, tea.Batch(cmds...)
		}
		if result.Applied {
			cmds = append(cmds, a.submit())
		} else {
			a.formFocused = false
			cmds = append(cmds, a.searchBox.Focus())
		}
		return &a, tea.Batch(cmds...)
	}

	if a.editing {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			a.editForm, cmd = a.editForm.Update(msg)
			return &a, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.propagateSize()
		return &a, nil

	case searchbox.SubmitMsg:
		cmds = append(cmds, a.submit())

	case ui.QueryCreatedMsg:
		a.submitting = false
		if msg.Err != nil {
			a.status = "Query creation failed"
			a.alertDialog = alert.New("Search failed",
				"Query creation failed, please try again.", actionCreate, msg.Query)
			break
		}
		a.queries.Commit(msg.Handle, msg.Query)
		a.suggestions.Clear()
		a.searchBox.SetSuggestions(nil)
		a.status = fmt.Sprintf("%d results", msg.Handle.TotalResults)
		cmds = append(cmds, a.navigate(nav.SearchLocation(msg.Handle.QueryID, 1)))

	case ui.QueryUpdatedMsg:
		if msg.Err != nil {
			a.status = "Query update failed"
			a.alertDialog = alert.New("Update failed",
				fmt.Sprintf("Could not update query %s: %v", msg.QueryID, msg.Err),
				actionUpdate, updateRequest{QueryID: msg.QueryID, Query: msg.Query})
			break
		}
		a.queries.Commit(msg.Handle, msg.Query)
		a.status = fmt.Sprintf("Query updated, %d results", msg.Handle.TotalResults)
		if loc := a.history.Current(); loc.Route == nav.Search && loc.QueryID == msg.QueryID {
			a.resultsView.SetSummary(a.querySummary(msg.QueryID))
			cmds = append(cmds, a.fetchResults(a.pager.Reload()), a.resultsView.SetState(a.pager))
		}

	case ui.QueryMetaMsg:
		if msg.Err != nil {
			a.logger.Warn("query meta fetch failed", zap.String("query_id", msg.QueryID), zap.Error(msg.Err))
			if snap, ok := a.queries.Snapshot(msg.QueryID); ok {
				a.infoView.SetMeta(&snap, true, msg.Err)
			} else {
				a.infoView.SetMeta(nil, true, msg.Err)
			}
			break
		}
		a.queries.Reconcile(*msg.Meta)
		a.infoView.SetMeta(msg.Meta, false, nil)

	case ui.ResultsPageMsg:
		if !a.pager.Commit(msg.Req, msg.Page, msg.Err) {
			metrics.StaleResponsesTotal.WithLabelValues(metrics.SlotResults).Inc()
			a.logger.Debug("discarding stale results",
				zap.String("query_id", msg.Req.QueryID),
				zap.Int("page", msg.Req.Page),
				zap.Uint64("seq", msg.Req.Seq))
			break
		}
		switch a.pager.Status() {
		case pager.Failed:
			metrics.RequestsTotal.WithLabelValues(metrics.OpResults, metrics.OutcomeError).Inc()
			a.logger.Warn("results fetch failed",
				zap.String("query_id", msg.Req.QueryID),
				zap.Int("page", msg.Req.Page),
				zap.Error(msg.Err))
			a.status = "No results"
		case pager.Empty:
			metrics.RequestsTotal.WithLabelValues(metrics.OpResults, metrics.OutcomeEmpty).Inc()
			a.status = "No results"
		default:
			metrics.RequestsTotal.WithLabelValues(metrics.OpResults, metrics.OutcomeOK).Inc()
			a.status = fmt.Sprintf("Page %d/%d", a.pager.Page(), a.pager.DisplayPages())
		}
		cmds = append(cmds, a.resultsView.SetState(a.pager))

	case ui.SuggestionsMsg:
		if !a.suggestions.Commit(msg.Req, msg.Suggestions, msg.Err) {
			metrics.StaleResponsesTotal.WithLabelValues(metrics.SlotSuggestions).Inc()
			a.logger.Debug("discarding stale suggestions", zap.String("text", msg.Req.Text))
			break
		}
		if msg.Err != nil {
			metrics.RequestsTotal.WithLabelValues(metrics.OpSuggest, metrics.OutcomeError).Inc()
			a.logger.Debug("suggestion fetch failed",
				zap.Int("failures", a.suggestions.Failures()),
				zap.Error(msg.Err))
		} else {
			metrics.RequestsTotal.WithLabelValues(metrics.OpSuggest, metrics.OutcomeOK).Inc()
		}
		a.searchBox.SetSuggestions(a.suggestions.Suggestions())

	case ui.DocumentLoadedMsg:
		if !a.loader.Commit(msg.Req, msg.Doc, msg.Err) {
			metrics.StaleResponsesTotal.WithLabelValues(metrics.SlotDetail).Inc()
			a.logger.Debug("discarding stale document",
				zap.String("doc_id", msg.Req.DocID),
				zap.Uint64("seq", msg.Req.Seq))
			break
		}
		switch a.loader.Status() {
		case detail.NotFound:
			metrics.RequestsTotal.WithLabelValues(metrics.OpDetail, metrics.OutcomeNotFound).Inc()
			a.status = "Document not found"
		case detail.Failed:
			metrics.RequestsTotal.WithLabelValues(metrics.OpDetail, metrics.OutcomeError).Inc()
			a.logger.Warn("document fetch failed", zap.String("doc_id", msg.Req.DocID), zap.Error(msg.Err))
			a.status = "Document not found"
		default:
			metrics.RequestsTotal.WithLabelValues(metrics.OpDetail, metrics.OutcomeOK).Inc()
			a.status = "Document loaded"
		}
		cmds = append(cmds, a.documentView.SetState(a.loader))

	case ui.LabelsLoadedMsg:
		if msg.Err != nil {
			metrics.RequestsTotal.WithLabelValues(metrics.OpLabels, metrics.OutcomeError).Inc()
			a.logger.Warn("labels fetch failed", zap.Error(msg.Err))
			break
		}
		metrics.RequestsTotal.WithLabelValues(metrics.OpLabels, metrics.OutcomeOK).Inc()
		a.labels = msg.Labels
		a.advancedForm.SetLabels(msg.Labels)

	case ui.TermSearchDoneMsg:
		var cmd tea.Cmd
		a.documentView, cmd = a.documentView.Update(msg)
		cmds = append(cmds, cmd)
		if msg.Err == nil && msg.Results != nil {
			a.status = fmt.Sprintf("Find: %d matches across %d sections",
				msg.Results.TotalCount, len(msg.Results.SectionCounts))
		}

	case ui.StatusMsg:
		a.status = msg.Text

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.resultsView, cmd = a.resultsView.Update(msg)
		cmds = append(cmds, cmd)
		a.documentView, cmd = a.documentView.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		cmds = append(cmds, a.handleKey(msg))

	default:
		// Cursor blinks and other widget-internal messages.
		cmds = append(cmds, a.forwardToActive(msg))
	}

	return &a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if a.showHelp {
		a.showHelp = false
		return nil
	}

	switch a.history.Current().Route {
	case nav.Home:
		return a.handleHomeKey(msg)
	case nav.Search:
		return a.handleResultsKey(msg)
	case nav.Detail:
		return a.handleDetailKey(msg)
	}
	return nil
}

func (a *App) handleHomeKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, ui.Keys.Advanced) {
		if a.showAdvanced && a.formFocused {
			a.showAdvanced = false
			a.formFocused = false
			a.advancedForm.Blur()
			return a.searchBox.Focus()
		}
		a.showAdvanced = true
		a.formFocused = true
		a.searchBox.Blur()
		return a.advancedForm.Focus()
	}

	if a.formFocused {
		var cmd tea.Cmd
		a.advancedForm, cmd = a.advancedForm.Update(msg)
		return cmd
	}

	before := a.searchBox.Value()
	var cmd tea.Cmd
	a.searchBox, cmd = a.searchBox.Update(msg)
	if after := a.searchBox.Value(); after != before {
		req := a.suggestions.Input(after)
		if req == nil {
			a.searchBox.SetSuggestions(nil)
		}
		return tea.Batch(cmd, a.fetchSuggestions(req))
	}
	return cmd
}

func (a *App) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	if a.showInfo {
		if key.Matches(msg, ui.Keys.Back) {
			a.showInfo = false
			return nil
		}
		var cmd tea.Cmd
		a.infoView, cmd = a.infoView.Update(msg)
		return cmd
	}

	loc := a.history.Current()
	page := a.pager.Page()
	switch {
	case key.Matches(msg, ui.Keys.Quit):
		return tea.Quit
	case key.Matches(msg, ui.Keys.Help):
		a.showHelp = true
		return nil
	case key.Matches(msg, ui.Keys.Back):
		return a.back()
	case key.Matches(msg, ui.Keys.NextPage):
		if a.pager.ShowControls() && page < a.pager.DisplayPages() {
			return a.gotoPage(page + 1)
		}
		return nil
	case key.Matches(msg, ui.Keys.PrevPage):
		if a.pager.ShowControls() && page > 1 {
			return a.gotoPage(page - 1)
		}
		return nil
	case key.Matches(msg, ui.Keys.FirstPage):
		if a.pager.ShowControls() {
			return a.gotoPage(1)
		}
		return nil
	case key.Matches(msg, ui.Keys.LastPage):
		if a.pager.ShowControls() {
			return a.gotoPage(a.pager.DisplayPages())
		}
		return nil
	case key.Matches(msg, ui.Keys.Enter):
		if r := a.resultsView.SelectedResult(); r != nil {
			return a.navigate(nav.DetailLocation(r.AJID))
		}
		return nil
	case key.Matches(msg, ui.Keys.Refresh):
		a.status = "Reloading..."
		return tea.Batch(a.fetchResults(a.pager.Reload()), a.resultsView.SetState(a.pager))
	case key.Matches(msg, ui.Keys.Edit):
		var current model.UserQuery
		if snap, ok := a.queries.Snapshot(loc.QueryID); ok {
			current = snap.Params
		}
		a.editForm = advanced.New("Edit query", a.labels, current, true)
		a.editForm.SetSize(a.width, a.height-2)
		a.editing = true
		return a.editForm.Focus()
	case key.Matches(msg, ui.Keys.Info):
		a.showInfo = true
		if snap, ok := a.queries.Snapshot(loc.QueryID); ok {
			a.infoView.SetMeta(&snap, true, nil)
		} else {
			a.infoView.SetMeta(nil, true, nil)
		}
		return a.fetchMeta(loc.QueryID)
	}

	var cmd tea.Cmd
	a.resultsView, cmd = a.resultsView.Update(msg)
	return cmd
}

func (a *App) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	if !a.documentView.IsSearching() {
		switch {
		case key.Matches(msg, ui.Keys.Quit):
			return tea.Quit
		case key.Matches(msg, ui.Keys.Help):
			a.showHelp = true
			return nil
		case key.Matches(msg, ui.Keys.Back):
			return a.back()
		case key.Matches(msg, ui.Keys.Refresh):
			return tea.Batch(a.fetchDocument(a.loader.Reload()), a.documentView.SetState(a.loader))
		}
	}

	var cmd tea.Cmd
	a.documentView, cmd = a.documentView.Update(msg)
	return cmd
}

func (a *App) forwardToActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.history.Current().Route {
	case nav.Home:
		if a.formFocused {
			a.advancedForm, cmd = a.advancedForm.Update(msg)
		} else {
			a.searchBox, cmd = a.searchBox.Update(msg)
		}
	case nav.Detail:
		a.documentView, cmd = a.documentView.Update(msg)
	}
	return cmd
}

func (a *App) propagateSize() {
	// header(1) + status(1) + pane border(2)
	contentH := max(a.height-4, 1)
	contentW := max(a.width-4, 1)

	a.searchBox, _ = a.searchBox.Update(tea.WindowSizeMsg{Width: min(contentW, 80), Height: contentH})
	a.resultsView, _ = a.resultsView.Update(tea.WindowSizeMsg{Width: contentW, Height: contentH})
	a.documentView, _ = a.documentView.Update(tea.WindowSizeMsg{Width: contentW, Height: contentH})
	a.infoView, _ = a.infoView.Update(tea.WindowSizeMsg{Width: contentW, Height: contentH})
	if a.editing {
		a.editForm.SetSize(a.width, a.height-2)
	}
}

// --- View ---

func (a App) View() string {
	header := RenderHeader(a.history.Current().String(), a.host, a.width)
	contentH := max(a.height-4, 1)
	pane := ui.StylePaneFocused.Width(max(a.width-2, 1)).Height(contentH)

	var content string
	switch {
	case a.showHelp:
		content = pane.Render(a.renderHelp())
	case a.alertDialog.IsActive():
		content = lipgloss.Place(a.width, a.height-2, lipgloss.Center, lipgloss.Center, a.alertDialog.View())
	case a.editing:
		content = a.editForm.View()
	default:
		switch a.history.Current().Route {
		case nav.Search:
			if a.showInfo {
				content = pane.Render(a.infoView.View())
			} else {
				content = pane.Render(a.resultsView.View())
			}
		case nav.Detail:
			content = pane.Render(a.documentView.View())
		default:
			content = pane.Render(a.renderHome())
		}
	}

	statusBar := RenderStatusBar(a.status, a.contextHints(), a.width)

	// Hard clamp: header(1) + statusbar(1) = 2 lines of chrome.
	if maxContentLines := a.height - 2; maxContentLines > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > maxContentLines {
			content = strings.Join(lines[:maxContentLines], "\n")
		}
	}

	return header + "\n" + content + "\n" + statusBar
}

func (a App) renderHome() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).Render("Case search")
	sub := ui.StyleMuted.Render("Search judgments by case name, parties, court or full text")

	parts := []string{"", "  " + title, "  " + sub, "", a.indent(a.searchBox.View())}
	if a.showAdvanced {
		parts = append(parts, "", a.indent(a.advancedForm.InlineView()))
	} else {
		parts = append(parts, "", ui.StyleMuted.Render("  ctrl+a: advanced search"))
	}
	if a.submitting {
		parts = append(parts, "", ui.StyleInfo.Render("  Searching..."))
	}
	return strings.Join(parts, "\n")
}

func (a App) indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

func (a App) contextHints() string {
	if a.alertDialog.IsActive() {
		return "y/enter:retry  n/esc:dismiss"
	}
	if a.editing {
		return "tab:next field  enter:update  esc:cancel"
	}
	switch a.history.Current().Route {
	case nav.Search:
		if a.showInfo {
			return "j/k:scroll  esc:back"
		}
		return "enter:open  <-/->:page  g/G:first/last  e:edit  i:info  r:reload  esc:home  ?:help"
	case nav.Detail:
		if a.documentView.IsSearching() {
			return "enter:find  esc:cancel"
		}
		return "/:find  n/N:match  r:reload  esc:back  ?:help"
	}
	if a.formFocused {
		return "tab:next field  enter:search  ctrl+a:hide  esc:back to query"
	}
	return "enter:search  up/down:suggestions  tab:complete  ctrl+a:advanced  ctrl+c:quit"
}

func (a App) renderHelp() string {
	bold := lipgloss.NewStyle().Bold(true)
	key := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Width(14)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))

	row := func(k, d string) string {
		return "  " + key.Render(k) + desc.Render(d) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n" + bold.Render("  Search") + "\n\n")
	b.WriteString(row("enter", "Run search"))
	b.WriteString(row("up / down", "Pick a suggestion"))
	b.WriteString(row("tab", "Complete with the picked suggestion"))
	b.WriteString(row("ctrl+a", "Show / hide advanced fields"))

	b.WriteString("\n" + bold.Render("  Results") + "\n\n")
	b.WriteString(row("j / k", "Move down / up"))
	b.WriteString(row("enter", "Open document"))
	b.WriteString(row("<- / ->", "Previous / next page"))
	b.WriteString(row("h / l", "Previous / next page"))
	b.WriteString(row("g / G", "First / last page"))
	b.WriteString(row("e", "Edit query"))
	b.WriteString(row("i", "Query info"))
	b.WriteString(row("r", "Reload page"))
	b.WriteString(row("esc", "Back to search"))

	b.WriteString("\n" + bold.Render("  Document") + "\n\n")
	b.WriteString(row("/", "Find in document (/re/ for regex)"))
	b.WriteString(row("n / N", "Next / previous match"))
	b.WriteString(row("g / G", "Top / bottom"))
	b.WriteString(row("esc", "Back to results"))

	b.WriteString("\n" + lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("  Press any key to close") + "\n")
	return b.String()
}
