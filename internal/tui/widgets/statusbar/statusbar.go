package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"settings-tui/internal/tui/state"
	"settings-tui/internal/tui/util"
)

type StatusBar struct {
	NoColor bool
}

func NewStatusBar(noColor bool) StatusBar { return StatusBar{NoColor: noColor} }

// View composes a concise status line reflecting key UI state. In debug mode
// the line is drawn on the warning colour.
func (b StatusBar) View(s state.UIState) string {
	mode := "[VIEW]"
	if s.Mode == state.EDIT {
		mode = "[EDIT]"
	}
	parts := []string{mode}
	if s.Setting != "" {
		parts = append(parts, s.Setting)
	}
	if s.Rows > 0 && s.Row >= 0 {
		parts = append(parts, fmt.Sprintf("Row %d/%d", s.Row+1, s.Rows))
	} else {
		parts = append(parts, fmt.Sprintf("Rows %d", s.Rows))
	}
	parts = append(parts, fmt.Sprintf("Changed: %d", s.Changed))
	if s.Invalid > 0 {
		parts = append(parts, fmt.Sprintf("Invalid: %d", s.Invalid))
	}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	line := strings.Join(parts, "  ")
	if b.NoColor {
		return line
	}
	p := util.DefaultPalette()
	style := lipgloss.NewStyle().Foreground(p.Muted)
	if s.Debug {
		style = lipgloss.NewStyle().Background(p.Warning).Foreground(lipgloss.Color("#111111"))
	}
	if s.Width > 0 {
		style = style.Width(s.Width)
	}
	return style.Render(line)
}
