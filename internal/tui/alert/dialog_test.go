package alert

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRetryOnEnter(t *testing.T) {
	m := New("Search failed", "query creation failed", "create", "payload")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.IsActive() {
		t.Error("alert should close after answering")
	}
	res, ok := cmd().(ResultMsg)
	if !ok {
		t.Fatalf("expected ResultMsg, got %T", cmd())
	}
	if !res.Retry || res.Action != "create" || res.Data != "payload" {
		t.Errorf("ResultMsg = %+v", res)
	}
}

func TestDismissOnEsc(t *testing.T) {
	m := New("Search failed", "query creation failed", "create", nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if res := cmd().(ResultMsg); res.Retry {
		t.Error("esc should dismiss")
	}
}

func TestInactiveIgnoresKeys(t *testing.T) {
	var m Model
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.View() != "" {
		t.Error("inactive alert should do nothing")
	}
}

func TestViewShowsMessage(t *testing.T) {
	m := New("Search failed", "query creation failed, please retry", "create", nil)
	if !strings.Contains(m.View(), "please retry") {
		t.Errorf("view = %q", m.View())
	}
}
