package results

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/casesearch/internal/model"
	"github.com/altinukshini/casesearch/internal/pager"
)

func loadedPager(t *testing.T, page, total int, results []model.CaseResult) *pager.Pager {
	t.Helper()
	p := pager.New(pager.PageSize)
	req := p.Navigate("q1", page).Fetch
	if req == nil {
		t.Fatal("expected fetch")
	}
	p.Commit(*req, &model.ResultPage{Page: page, TotalPages: total, Results: results}, nil)
	return p
}

func TestLoadedPageShowsResultsAndPagination(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	p := loadedPager(t, 2, 5, []model.CaseResult{
		{AJID: "X123", AJName: "张三诉李四借款合同纠纷"},
		{AJID: "X124", AJName: "王五离婚纠纷"},
	})
	m.SetState(p)

	view := m.View()
	if !strings.Contains(view, "张三诉李四借款合同纠纷") {
		t.Errorf("view should list results:\n%s", view)
	}
	if !strings.Contains(view, "Page 2 of 5") {
		t.Errorf("view should show pagination:\n%s", view)
	}
	if sel := m.SelectedResult(); sel == nil || sel.AJID != "X123" {
		t.Errorf("SelectedResult() = %+v, want X123", sel)
	}
}

func TestCursorMovesToSecondResult(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m.SetState(loadedPager(t, 1, 1, []model.CaseResult{{AJID: "A"}, {AJID: "B"}}))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if sel := m.SelectedResult(); sel == nil || sel.AJID != "B" {
		t.Errorf("SelectedResult() = %+v, want B", sel)
	}
}

func TestEmptyAndFailedRenderAlike(t *testing.T) {
	empty := New()
	empty.SetState(loadedPager(t, 1, 0, nil))

	p := pager.New(pager.PageSize)
	req := p.Navigate("q1", 1).Fetch
	p.Commit(*req, nil, errors.New("boom"))
	failed := New()
	failed.SetState(p)

	if empty.View() != failed.View() {
		t.Errorf("empty and failed views differ:\n%s\n---\n%s", empty.View(), failed.View())
	}
	if strings.Contains(empty.View(), "Page") {
		t.Error("empty results should not show pagination")
	}
	if empty.SelectedResult() != nil {
		t.Error("no result should be selectable")
	}
}

func TestLoadingShowsSpinner(t *testing.T) {
	m := New()
	p := pager.New(pager.PageSize)
	p.Navigate("q1", 1)

	if cmd := m.SetState(p); cmd == nil {
		t.Error("expected spinner tick while loading")
	}
	if !strings.Contains(m.View(), "Loading results") {
		t.Errorf("view = %q", m.View())
	}
}
