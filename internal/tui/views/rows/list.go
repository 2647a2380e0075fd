package rows

import (
	"fmt"
	"strings"

	"settings-tui/internal/settings"
	"settings-tui/internal/tui/state"
	"settings-tui/internal/tui/util"
	chips "settings-tui/internal/tui/widgets/tagchips"
)

// RenderTags is a thin adapter over the TagChips widget for setting headers.
func RenderTags(tags []state.Tag, noColor bool) string {
	return chips.View(tags, noColor)
}

// Render prints a setting as plain text: a header with its chips, the
// description, one line per row and any whole-value validation problem.
func Render(e settings.Element, noColor bool) string {
	var lines []string
	var sources []string
	switch e.Kind() {
	case settings.KindList:
		for _, it := range settings.ListItems(e) {
			lines = append(lines, "- "+it.Value.Text())
		}
	case settings.KindExclude, settings.KindInclude:
		for _, it := range settings.PatternItems(e) {
			line := "- " + it.Value.Text()
			if it.Sibling != "" {
				line += "  (when: " + it.Sibling + ")"
			}
			lines = append(lines, line+source(it.Source))
			sources = append(sources, it.Source)
		}
	case settings.KindBoolObject:
		for _, it := range settings.BoolObjectItems(e) {
			box := "[ ]"
			if v, _ := state.Data(it.Value).(bool); v {
				box = "[x]"
			}
			lines = append(lines, box+" "+it.Key.Text()+source(it.Source))
			sources = append(sources, it.Source)
		}
	default:
		for _, it := range settings.ObjectItems(e) {
			lines = append(lines, fmt.Sprintf("%s: %s%s", it.Key.Text(), it.Value.Text(), source(it.Source)))
			sources = append(sources, it.Source)
		}
	}

	problem := settings.Validate(e)
	tags := util.ComputeTags(util.Indicators{
		Invalid:    problem != "",
		ReadOnly:   e.Setting.ReadOnly,
		Configured: e.Configured,
		Sources:    sources,
		Rows:       len(lines),
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", e.Setting.Key, RenderTags(tags, noColor))
	if d := e.Setting.Description; d != "" {
		fmt.Fprintf(&b, "  %s\n", d)
	}
	if len(lines) == 0 {
		b.WriteString("  (empty)\n")
	}
	for _, l := range lines {
		fmt.Fprintf(&b, "  %s\n", l)
	}
	if problem != "" {
		for _, p := range strings.Split(problem, "\n") {
			fmt.Fprintf(&b, "  ! %s\n", p)
		}
	}
	return b.String()
}

func source(s string) string {
	if s == "" {
		return ""
	}
	return "  (from " + s + ")"
}
