package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/casesearch/internal/api"
	"github.com/altinukshini/casesearch/internal/config"
	"github.com/altinukshini/casesearch/internal/detail"
	"github.com/altinukshini/casesearch/internal/model"
	"github.com/altinukshini/casesearch/internal/nav"
	"github.com/altinukshini/casesearch/internal/pager"
	"github.com/altinukshini/casesearch/internal/query"
	"github.com/altinukshini/casesearch/internal/suggest"
	"github.com/altinukshini/casesearch/internal/tui/advanced"
	"github.com/altinukshini/casesearch/internal/tui/alert"
	"github.com/altinukshini/casesearch/internal/tui/searchbox"
	"github.com/altinukshini/casesearch/internal/ui"
)

// fakeBackend serves both the search endpoints and the query resource.
type fakeBackend struct {
	mu          sync.Mutex
	createErr   error
	created     []model.UserQuery
	updateErr   error
	updateReply string // id to answer updates with, if set
	updates     []string
	totalPages  int
	resultCalls []api.ResultsFilter
	docs        map[string]*model.Document
	suggest     map[string][]string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		totalPages: 3,
		docs: map[string]*model.Document{
			"X123": {ID: "X123", AJID: "X123", AJName: "张三诉李四民间借贷纠纷案", AJJBQK: "原告张三向被告李四出借人民币十万元。"},
		},
		suggest: map[string][]string{
			"张":  {"张三诉李四", "张某某案"},
			"张三": {"张三诉李四"},
		},
	}
}

func (f *fakeBackend) CreateQuery(_ context.Context, q model.UserQuery) (*model.QueryHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, q)
	return &model.QueryHandle{QueryID: fmt.Sprintf("q%d", len(f.created)), TotalResults: 25}, nil
}

func (f *fakeBackend) UpdateQuery(_ context.Context, queryID string, _ model.UserQuery) (*model.QueryHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, queryID)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	id := queryID
	if f.updateReply != "" {
		id = f.updateReply
	}
	return &model.QueryHandle{QueryID: id, TotalResults: 7}, nil
}

func (f *fakeBackend) GetQueryMeta(_ context.Context, queryID string) (*model.QueryMeta, error) {
	return &model.QueryMeta{ID: queryID, Version: 1}, nil
}

func (f *fakeBackend) ListResults(_ context.Context, filter api.ResultsFilter) (*model.ResultPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resultCalls = append(f.resultCalls, filter)
	results := make([]model.CaseResult, 2)
	for i := range results {
		id := fmt.Sprintf("P%dR%d", filter.Page, i)
		if filter.Page == 1 && i == 0 {
			id = "X123"
		}
		results[i] = model.CaseResult{AJID: id, AJName: "case " + id}
	}
	return &model.ResultPage{Page: filter.Page, TotalPages: f.totalPages, Results: results}, nil
}

func (f *fakeBackend) GetDocument(_ context.Context, docID string) (*model.Document, error) {
	if doc, ok := f.docs[docID]; ok {
		return doc, nil
	}
	return nil, fmt.Errorf("get %s: %w", docID, api.ErrDetailNotFound)
}

func (f *fakeBackend) ListLabels(context.Context) ([]string, error) {
	return []string{"民间借贷纠纷", "合同纠纷"}, nil
}

func (f *fakeBackend) Suggest(_ context.Context, _ string, q string) ([]string, error) {
	return f.suggest[q], nil
}

func (f *fakeBackend) lastResultCall() api.ResultsFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.resultCalls) == 0 {
		return api.ResultsFilter{}
	}
	return f.resultCalls[len(f.resultCalls)-1]
}

func newTestApp(t *testing.T, backend *fakeBackend, start string) App {
	t.Helper()
	loc, err := nav.Parse(start)
	if err != nil {
		t.Fatalf("parse %q: %v", start, err)
	}
	app := NewApp(config.Config{BaseURL: "http://localhost:5000"}, backend, query.New(backend, nil), nil, loc)
	app, _ = update(app, tea.WindowSizeMsg{Width: 120, Height: 40})
	return settle(app, app.Init())
}

func update(a App, msg tea.Msg) (App, tea.Cmd) {
	m, cmd := a.Update(msg)
	return *m.(*App), cmd
}

// run executes cmd and flattens batches. Commands that do not return
// promptly (cursor blink, spinner ticks) are dropped.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, run(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// settle feeds the app's own messages back until nothing is left in flight.
func settle(a App, cmd tea.Cmd) App {
	for _, msg := range run(cmd) {
		switch msg.(type) {
		case ui.QueryCreatedMsg, ui.QueryUpdatedMsg, ui.QueryMetaMsg, ui.ResultsPageMsg,
			ui.SuggestionsMsg, ui.DocumentLoadedMsg, ui.LabelsLoadedMsg, ui.TermSearchDoneMsg,
			searchbox.SubmitMsg, advanced.ResultMsg, alert.ResultMsg:
			var next tea.Cmd
			a, next = update(a, msg)
			a = settle(a, next)
		}
	}
	return a
}

func press(a App, keys ...string) App {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		case "ctrl+a":
			msg = tea.KeyMsg{Type: tea.KeyCtrlA}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var cmd tea.Cmd
		a, cmd = update(a, msg)
		a = settle(a, cmd)
	}
	return a
}

func TestOpenSearchLocationClampsPage(t *testing.T) {
	backend := newFakeBackend()
	app := newTestApp(t, backend, "/search/q1?page=150")

	loc := app.Location()
	if loc.Route != nav.Search || loc.QueryID != "q1" || loc.Page != pager.MaxPages {
		t.Fatalf("expected /search/q1?page=100, got %s", loc)
	}
	if app.history.Len() != 1 {
		t.Errorf("correction should replace the location, history has %d entries", app.history.Len())
	}
	if got := backend.lastResultCall(); got.Page != 100 || got.QueryID != "q1" {
		t.Errorf("expected fetch of q1 page 100, got %+v", got)
	}
	// The server reports 3 pages; the page is not pulled back.
	if app.pager.Page() != 100 || app.pager.Status() != pager.Loaded {
		t.Errorf("expected loaded page 100, got page %d status %s", app.pager.Page(), app.pager.Status())
	}
}

func TestOpenSearchLocationCorrectsPageZero(t *testing.T) {
	backend := newFakeBackend()
	app := newTestApp(t, backend, "/search/q1?page=abc")

	if loc := app.Location(); loc.Page != 1 {
		t.Fatalf("expected page 1, got %s", loc)
	}
	if got := backend.lastResultCall(); got.Page != 1 {
		t.Errorf("expected fetch of page 1, got %+v", got)
	}
}

func TestStaleResultsAreDiscarded(t *testing.T) {
	backend := newFakeBackend()
	app := newTestApp(t, backend, "/search/q1?page=1")

	toPage2 := app.gotoPage(2)
	toPage3 := app.gotoPage(3)

	// Page 3 answers first, then the superseded page 2 request.
	app = settle(app, toPage3)
	app = settle(app, toPage2)

	if app.Location().Page != 3 {
		t.Fatalf("expected location page 3, got %s", app.Location())
	}
	if app.pager.Page() != 3 || app.pager.Status() != pager.Loaded {
		t.Fatalf("expected loaded page 3, got %d/%s", app.pager.Page(), app.pager.Status())
	}
	for _, r := range app.pager.Results() {
		if !strings.HasPrefix(r.AJID, "P3") {
			t.Errorf("results from another page leaked in: %s", r.AJID)
		}
	}
}

func TestPagingKeysReplaceLocation(t *testing.T) {
	backend := newFakeBackend()
	app := newTestApp(t, backend, "/search/q1?page=1")

	app = press(app, "l")
	if app.Location().Page != 2 {
		t.Fatalf("expected page 2 after l, got %s", app.Location())
	}
	app = press(app, "G")
	if app.Location().Page != 3 {
		t.Fatalf("expected last page 3 after G, got %s", app.Location())
	}
	app = press(app, "right")
	if app.Location().Page != 3 {
		t.Errorf("should not page past the last page, got %s", app.Location())
	}
	app = press(app, "g")
	if app.Location().Page != 1 {
		t.Errorf("expected page 1 after g, got %s", app.Location())
	}
	if app.history.Len() != 1 {
		t.Errorf("paging should not grow history, got %d entries", app.history.Len())
	}
}

func TestSelectResultOpensDetail(t *testing.T) {
	backend := newFakeBackend()
	app := newTestApp(t, backend, "/search/q1?page=1")

	app = press(app, "enter")

	loc := app.Location()
	if loc.Route != nav.Detail || loc.DocID != "X123" {
		t.Fatalf("expected /detail/X123, got %s", loc)
	}
	if app.loader.Status() != detail.Loaded {
		t.Fatalf("expected document loaded, got %s", app.loader.Status())
	}
	if !strings.Contains(app.View(), "张三诉李四民间借贷纠纷案") {
		t.Error("detail view should show the case name")
	}

	// Going back returns to the same results page without refetching.
	calls := len(backend.resultCalls)
	app = press(app, "esc")
	if loc := app.Location(); loc.Route != nav.Search || loc.Page != 1 {
		t.Fatalf("expected back to /search/q1?page=1, got %s", loc)
	}
	if len(backend.resultCalls) != calls {
		t.Errorf("returning to the same page should not refetch")
	}
}

func TestUnknownDocumentShowsNotFound(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), "/detail/NOPE")

	if app.loader.Status() != detail.NotFound {
		t.Fatalf("expected NotFound, got %s", app.loader.Status())
	}
	if !strings.Contains(app.View(), "Document not found") {
		t.Error("view should show document not found")
	}
}

func TestSubmitCreatesQueryAndNavigates(t *testing.T) {
	backend := newFakeBackend()
	app := newTestApp(t, backend, "/")

	app = press(app, "张", "三", "enter")

	if len(backend.created) != 1 || backend.created[0].Query != "张三" {
		t.Fatalf("expected one create with query 张三, got %+v", backend.created)
	}
	loc := app.Location()
	if loc.Route != nav.Search || loc.QueryID != "q1" || loc.Page != 1 {
		t.Fatalf("expected /search/q1?page=1, got %s", loc)
	}
	if snap, ok := app.queries.Snapshot("q1"); !ok || snap.Params.Query != "张三" || snap.TotalResults != 25 {
		t.Errorf("snapshot not committed: %+v %v", snap, ok)
	}
	if app.pager.Status() != pager.Loaded {
		t.Errorf("expected results loaded, got %s", app.pager.Status())
	}
}

func TestSubmitIncludesAdvancedFields(t *testing.T) {
	backend := newFakeBackend()
	app := newTestApp(t, backend, "/")

	app = press(app, "ctrl+a")
	if !app.showAdvanced || !app.formFocused {
		t.Fatal("ctrl+a should open the advanced form")
	}
	// Focus starts on the full-text field.
	app = press(app, "借", "款", "enter")

	if len(backend.created) != 1 {
		t.Fatalf("expected one create, got %d", len(backend.created))
	}
	if got := backend.created[0]; got.QW != "借款" || got.Query != "" {
		t.Errorf("unexpected query %+v", got)
	}
}

func TestCreateFailureShowsAlertAndKeepsLocation(t *testing.T) {
	backend := newFakeBackend()
	backend.createErr = errors.New("boom")
	app := newTestApp(t, backend, "/")

	app = press(app, "x", "enter")

	if app.Location().Route != nav.Home {
		t.Fatalf("location should not change, got %s", app.Location())
	}
	if !app.alertDialog.IsActive() {
		t.Fatal("expected an alert after create failure")
	}

	// Retrying after the service recovers navigates as usual.
	backend.createErr = nil
	app = press(app, "y")
	if app.alertDialog.IsActive() {
		t.Error("alert should close after answering")
	}
	if loc := app.Location(); loc.Route != nav.Search || loc.QueryID != "q1" {
		t.Errorf("expected retry to navigate to q1, got %s", loc)
	}
}

func TestSuggestionsFollowInput(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), "/")

	app = press(app, "张")
	if got := app.searchBox.Suggestions(); len(got) != 2 {
		t.Fatalf("expected 2 suggestions for 张, got %v", got)
	}
	app = press(app, "三")
	if got := app.searchBox.Suggestions(); len(got) != 1 || got[0] != "张三诉李四" {
		t.Fatalf("expected suggestions for 张三, got %v", got)
	}

	// A late answer for a value the box no longer holds is dropped.
	late := suggest.Request{Field: api.SuggestField, Text: "张", Seq: 1}
	app, _ = update(app, ui.SuggestionsMsg{Req: late, Suggestions: []string{"stale"}})
	if got := app.searchBox.Suggestions(); len(got) != 1 || got[0] != "张三诉李四" {
		t.Errorf("late suggestions should be discarded, got %v", got)
	}
}

func TestSuggestionsArrivingAfterSubmitAreDropped(t *testing.T) {
	app := newTestApp(t, newFakeBackend(), "/")

	// The suggestion fetch for 张 is still in flight when the user submits.
	app, pending := update(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("张")})
	app = press(app, "enter")
	if app.Location().Route != nav.Search {
		t.Fatalf("expected search route after submit, got %s", app.Location())
	}

	for _, msg := range run(pending) {
		if sm, ok := msg.(ui.SuggestionsMsg); ok {
			app, _ = update(app, sm)
		}
	}
	app = press(app, "esc")

	if app.Location().Route != nav.Home {
		t.Fatalf("expected home after esc, got %s", app.Location())
	}
	if got := app.searchBox.Suggestions(); len(got) != 0 {
		t.Errorf("suggestions should stay closed after submit, got %v", got)
	}
}

func TestEditQueryUpdatesAndReloads(t *testing.T) {
	backend := newFakeBackend()
	app := newTestApp(t, backend, "/")
	app = press(app, "a", "enter")
	app = press(app, "l")
	calls := len(backend.resultCalls)

	app = press(app, "e")
	if !app.editing {
		t.Fatal("e should open the edit form")
	}
	app = press(app, "enter")

	if app.editing {
		t.Error("edit form should close after applying")
	}
	snap, _ := app.queries.Snapshot("q1")
	if snap.Version != 2 || snap.TotalResults != 7 {
		t.Errorf("expected version 2 with 7 results, got %+v", snap)
	}
	if app.Location().Page != 2 {
		t.Errorf("update should keep the page, got %s", app.Location())
	}
	if len(backend.resultCalls) != calls+1 {
		t.Errorf("update should reload the current page")
	}
}

func TestUpdateAnsweredWithAnotherIDKeepsQuery(t *testing.T) {
	backend := newFakeBackend()
	backend.updateReply = "q99"
	app := newTestApp(t, backend, "/")
	app = press(app, "a", "enter")

	app = press(app, "e", "enter")

	snap, ok := app.queries.Snapshot("q1")
	if !ok || snap.Version != 2 || snap.TotalResults != 7 {
		t.Errorf("expected q1 at version 2 with 7 results, got %+v", snap)
	}
	if _, ok := app.queries.Snapshot("q99"); ok {
		t.Error("no snapshot should be stored under the reply id")
	}
	if loc := app.Location(); loc.QueryID != "q1" {
		t.Errorf("location should stay on q1, got %s", loc)
	}
	if !strings.Contains(app.resultsView.View(), "7 results") {
		t.Errorf("summary should show the updated total:\n%s", app.resultsView.View())
	}
}

func TestUpdateFailureShowsAlertAndRetries(t *testing.T) {
	backend := newFakeBackend()
	app := newTestApp(t, backend, "/")
	app = press(app, "a", "enter")
	before, _ := app.queries.Snapshot("q1")
	calls := len(backend.resultCalls)

	backend.updateErr = errors.New("boom")
	app = press(app, "e", "enter")

	if !app.alertDialog.IsActive() {
		t.Fatal("expected an alert after update failure")
	}
	if loc := app.Location(); loc.String() != "/search/q1?page=1" {
		t.Errorf("location should not change, got %s", loc)
	}
	snap, _ := app.queries.Snapshot("q1")
	if snap.Version != before.Version || snap.TotalResults != before.TotalResults || snap.Params != before.Params {
		t.Errorf("snapshot should be untouched, got %+v want %+v", snap, before)
	}
	if len(backend.resultCalls) != calls {
		t.Error("a failed update must not reload results")
	}

	backend.updateErr = nil
	app = press(app, "y")

	if app.alertDialog.IsActive() {
		t.Error("alert should close after answering")
	}
	if len(backend.updates) != 2 || backend.updates[1] != "q1" {
		t.Errorf("retry should re-issue the update for q1, got %v", backend.updates)
	}
	snap, _ = app.queries.Snapshot("q1")
	if snap.Version != before.Version+1 || snap.TotalResults != 7 {
		t.Errorf("expected the retried update to commit, got %+v", snap)
	}
	if len(backend.resultCalls) != calls+1 {
		t.Error("a successful retry should reload the current page")
	}
}
