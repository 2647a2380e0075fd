package tagchips

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"settings-tui/internal/tui/state"
	"settings-tui/internal/tui/util"
)

// View renders indicator tags in order using colored chips when possible and
// ASCII fallbacks when color is disabled.
func View(tags []state.Tag, noColor bool) string {
	if len(tags) == 0 {
		return ""
	}
	if !noColor && os.Getenv("NO_COLOR") != "" {
		noColor = true
	}

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, renderChip(t, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(t state.Tag, noColor bool) string {
	label := chipLabel(t)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(t).Render(label)
}

func chipLabel(t state.Tag) string {
	switch t.Kind {
	case state.MODIFIED:
		return "Modified"
	case state.INVALID:
		return "Invalid"
	case state.READ_ONLY:
		return "Read-only"
	case state.DEFAULT:
		return "Default"
	case state.SOURCE:
		return "From " + t.Text
	case state.ROWS:
		if t.Value == 1 {
			return "1 row"
		}
		return fmt.Sprintf("%d rows", t.Value)
	default:
		return "Tag"
	}
}

func chipStyle(t state.Tag) lipgloss.Style {
	p := util.DefaultPalette()
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	white := lipgloss.Color("#FFFFFF")
	switch t.Kind {
	case state.MODIFIED:
		return base.Background(p.Primary).Foreground(white)
	case state.INVALID:
		return base.Background(p.Danger).Foreground(white)
	case state.READ_ONLY:
		return base.Background(p.Warning).Foreground(lipgloss.Color("#111111"))
	case state.DEFAULT:
		return base.Background(p.Success).Foreground(white)
	case state.SOURCE:
		return base.Background(p.Muted).Foreground(white)
	case state.ROWS:
		return base.Background(p.MutedDark).Foreground(white)
	default:
		return base
	}
}
