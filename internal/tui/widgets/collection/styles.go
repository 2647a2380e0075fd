package collection

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	selectedRowStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#3D6DFF", Dark: "#7AA2FF"})
	headerStyle       = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#D9534F"))
	buttonStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#2AA876"))
	focusedFieldStyle = lipgloss.NewStyle().Reverse(true)
	dragTargetStyle   = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#F0AD4E"))
)

// fit truncates s to w terminal cells, marking the cut with an ellipsis.
func fit(s string, w int) string {
	if w <= 0 || runewidth.StringWidth(s) <= w {
		return s
	}
	return runewidth.Truncate(s, w, "…")
}

// pad right-pads s to w terminal cells.
func pad(s string, w int) string {
	return runewidth.FillRight(fit(s, w), w)
}
