// Package diff renders the before/after override documents of an editing
// session with line- and character-level highlights.
package diff

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

var (
	delLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	addLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	delChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true)
	addChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
	faint   = lipgloss.NewStyle().Faint(true)
	heading = lipgloss.NewStyle().Bold(true)
)

// DiffView renders diffs. With NoColor, changed spans are bracketed as
// [-deleted-] and {+inserted+} instead of coloured.
type DiffView struct {
	NoColor bool
}

func NewDiffView(noColor bool) DiffView { return DiffView{NoColor: noColor} }

// Unified renders changed lines as -/+ pairs. Line-aligned input gets
// character highlights per pair; otherwise both blocks are shown whole.
func (v DiffView) Unified(before, after string) string {
	if before == after {
		return "No changes\n"
	}
	bLines := strings.Split(before, "\n")
	aLines := strings.Split(after, "\n")
	var sb strings.Builder
	if len(bLines) == len(aLines) {
		for i := range bLines {
			bl, al := bLines[i], aLines[i]
			if bl == al {
				if strings.TrimSpace(bl) == "" {
					continue
				}
				sb.WriteString("  " + v.style(faint, bl) + "\n")
				continue
			}
			del, ins := v.spans(bl, al)
			sb.WriteString(v.style(delLine, "- ") + del + "\n")
			sb.WriteString(v.style(addLine, "+ ") + ins + "\n")
		}
		return sb.String()
	}
	sb.WriteString(v.style(heading, "BEFORE") + "\n")
	for _, l := range bLines {
		sb.WriteString(v.style(delLine, "- ") + l + "\n")
	}
	sb.WriteString("\n" + v.style(heading, "AFTER") + "\n")
	for _, l := range aLines {
		sb.WriteString(v.style(addLine, "+ ") + l + "\n")
	}
	return sb.String()
}

// SideBySide renders before and after in two columns of width cells.
func (v DiffView) SideBySide(before, after string, width int) string {
	if width < 10 {
		width = 10
	}
	bLines := strings.Split(before, "\n")
	aLines := strings.Split(after, "\n")
	n := max(len(bLines), len(aLines))
	var sb strings.Builder
	sb.WriteString(pad(v.style(heading, "BEFORE"), width) + " │ " + v.style(heading, "AFTER") + "\n")
	for i := 0; i < n; i++ {
		var bl, al string
		if i < len(bLines) {
			bl = bLines[i]
		}
		if i < len(aLines) {
			al = aLines[i]
		}
		if bl == al {
			sb.WriteString(pad(v.style(faint, fit(bl, width)), width) + " │ " + v.style(faint, al) + "\n")
			continue
		}
		del, ins := v.spans(fit(bl, width-2), al)
		sb.WriteString(pad(v.style(delLine, "- ")+del, width) + " │ " + v.style(addLine, "+ ") + ins + "\n")
	}
	return sb.String()
}

// spans returns the before and after line with changed characters marked.
func (v DiffView) spans(before, after string) (string, string) {
	d := dmp.New()
	diffs := d.DiffMain(before, after, false)
	diffs = d.DiffCleanupSemantic(diffs)
	var del, ins strings.Builder
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			del.WriteString(v.mark(delChar, "[-", df.Text, "-]"))
		case dmp.DiffInsert:
			ins.WriteString(v.mark(addChar, "{+", df.Text, "+}"))
		case dmp.DiffEqual:
			del.WriteString(v.style(delLine, df.Text))
			ins.WriteString(v.style(addLine, df.Text))
		}
	}
	return del.String(), ins.String()
}

func (v DiffView) style(s lipgloss.Style, text string) string {
	if v.NoColor {
		return text
	}
	return s.Render(text)
}

func (v DiffView) mark(s lipgloss.Style, open, text, close string) string {
	if v.NoColor {
		return open + text + close
	}
	return s.Render(text)
}

func fit(s string, w int) string {
	if runewidth.StringWidth(s) <= w {
		return s
	}
	return runewidth.Truncate(s, w, "…")
}

func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
