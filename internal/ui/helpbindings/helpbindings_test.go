package helpbindings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/chime/internal/ui/action"
	"github.com/llehouerou/chime/internal/ui/testutil"
)

func newTestHelp() Model {
	m := New()
	m.SetSize(80, 24)
	return m
}

func sendKey(m *Model, key string) tea.Cmd {
	var cmd tea.Cmd
	*m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return cmd
}

func sendSpecialKey(m *Model, keyType tea.KeyType) tea.Cmd {
	var cmd tea.Cmd
	*m, cmd = m.Update(tea.KeyMsg{Type: keyType})
	return cmd
}

func assertClosed(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}
	msg := testutil.ExecuteCmd(cmd)
	actionMsg, ok := msg.(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", msg)
	}
	if _, ok := actionMsg.Action.(Close); !ok {
		t.Fatalf("expected Close, got %T", actionMsg.Action)
	}
}

// Close tests

func TestHelpBindings_CloseWithEscape(t *testing.T) {
	m := newTestHelp()
	assertClosed(t, sendSpecialKey(&m, tea.KeyEscape))
}

func TestHelpBindings_CloseWithQ(t *testing.T) {
	m := newTestHelp()
	assertClosed(t, sendKey(&m, "q"))
}

func TestHelpBindings_CloseWithQuestionMark(t *testing.T) {
	m := newTestHelp()
	assertClosed(t, sendKey(&m, "?"))
}

// Scroll tests

func TestHelpBindings_ScrollDownWithJ(t *testing.T) {
	m := newTestHelp()

	sendKey(&m, "j")
	sendKey(&m, "j")

	if m.scrollOffset != 2 {
		t.Errorf("scroll offset = %d, want 2", m.scrollOffset)
	}
}

func TestHelpBindings_ScrollUpWithK(t *testing.T) {
	m := newTestHelp()

	sendKey(&m, "j")
	sendKey(&m, "j")
	sendKey(&m, "j")
	afterDown := m.scrollOffset

	sendKey(&m, "k")

	if m.scrollOffset >= afterDown {
		t.Error("scroll offset should decrease after pressing k")
	}
}

func TestHelpBindings_ScrollUpAtTopDoesNothing(t *testing.T) {
	m := newTestHelp()

	sendSpecialKey(&m, tea.KeyUp)
	sendSpecialKey(&m, tea.KeyUp)

	if m.scrollOffset != 0 {
		t.Errorf("scroll offset = %d, want 0 when at top", m.scrollOffset)
	}
}

func TestHelpBindings_ScrollStopsAtBottom(t *testing.T) {
	m := newTestHelp()

	for range 200 {
		sendKey(&m, "j")
	}

	if m.scrollOffset != m.maxScroll() {
		t.Errorf("scroll offset = %d, want %d", m.scrollOffset, m.maxScroll())
	}
}

// View tests

func TestHelpBindings_ViewShowsCategories(t *testing.T) {
	m := newTestHelp()

	view := testutil.StripANSI(m.View())
	for _, want := range []string{"Help", "Global", "Playback", "Play/pause", "close"} {
		if !testutil.ContainsLine(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHelpBindings_WidthStableWhileScrolling(t *testing.T) {
	m := newTestHelp()

	before := lipgloss.Width(m.View())
	sendKey(&m, "j")
	sendKey(&m, "j")
	after := lipgloss.Width(m.View())

	if before != after {
		t.Errorf("width changed while scrolling: %d -> %d", before, after)
	}
}

func TestHelpBindings_Reset(t *testing.T) {
	m := newTestHelp()

	sendKey(&m, "j")
	m.Reset()

	if m.scrollOffset != 0 {
		t.Errorf("scroll offset after Reset = %d, want 0", m.scrollOffset)
	}
}
