package statusbar

import (
	"strings"
	"testing"

	"settings-tui/internal/tui/state"
)

func TestStatusLine(t *testing.T) {
	b := NewStatusBar(true)
	s := state.UIState{Setting: "files.exclude", Row: 1, Rows: 3, Changed: 2, Notice: "files.exclude: add"}
	got := b.View(s)
	for _, want := range []string{"[VIEW]", "files.exclude", "Row 2/3", "Changed: 2", "files.exclude: add"} {
		if !strings.Contains(got, want) {
			t.Fatalf("status %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "Invalid") {
		t.Fatalf("invalid counter shown without failures: %q", got)
	}

	s = state.SetEditing(s, true)
	s.Invalid = 1
	s.Row = -1
	got = b.View(s)
	for _, want := range []string{"[EDIT]", "Rows 3", "Invalid: 1"} {
		if !strings.Contains(got, want) {
			t.Fatalf("status %q missing %q", got, want)
		}
	}
}
