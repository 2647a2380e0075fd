package collection

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"settings-tui/internal/tui/state"
)

type updater interface {
	Update(tea.Msg) tea.Cmd
	View() string
}

// testHelper drives a widget the way the host program would: it feeds key
// and pointer messages and runs the commands that come back.
type testHelper struct {
	t *testing.T
	w updater
}

func newTestHelper(t *testing.T, w updater) *testHelper {
	t.Helper()
	return &testHelper{t: t, w: w}
}

func testConfig() Config {
	return Config{Toolkit: TermToolkit{StaticCursor: true}, Width: 60}
}

// Run executes cmd and feeds back the messages a widget handles itself.
func (h *testHelper) Run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case focusMsg:
		h.Run(h.w.Update(msg))
	case tea.BatchMsg:
		for _, c := range msg {
			h.Run(c)
		}
	}
}

func (h *testHelper) Send(msg tea.Msg) {
	h.Run(h.w.Update(msg))
}

func (h *testHelper) SendKey(k tea.KeyType) {
	h.Send(tea.KeyMsg{Type: k})
}

func (h *testHelper) SendAltKey(k tea.KeyType) {
	h.Send(tea.KeyMsg{Type: k, Alt: true})
}

func (h *testHelper) SendKeyRune(r rune) {
	if r == ' ' {
		h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		return
	}
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (h *testHelper) Type(s string) {
	for _, r := range s {
		h.SendKeyRune(r)
	}
}

// LineOf returns the first line of the current view containing substr.
func (h *testHelper) LineOf(substr string) int {
	h.t.Helper()
	for i, l := range strings.Split(h.w.View(), "\n") {
		if strings.Contains(l, substr) {
			return i
		}
	}
	h.t.Fatalf("no line containing %q in view:\n%s", substr, h.w.View())
	return -1
}

func (h *testHelper) Press(line int) {
	h.Send(PointerMsg{Line: line, Action: PointerPress})
}

func strItems(values ...string) []state.ListItem {
	out := make([]state.ListItem, 0, len(values))
	for _, v := range values {
		out = append(out, state.ListItem{Value: state.StringValue{Data: v}})
	}
	return out
}

func texts(items []state.ListItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Value.Text())
	}
	return out
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
