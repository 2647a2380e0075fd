package util

import (
	"settings-tui/internal/tui/state"
)

// Indicators describes one setting for chip computation.
type Indicators struct {
	Modified   bool // override differs from the one loaded
	Invalid    bool
	ReadOnly   bool
	Configured bool // an override exists at this scope
	// Sources are the default providers named by the setting's rows.
	Sources []string
	Rows    int
}

// ComputeTags returns the indicator chips for a setting in a stable order:
//
//	Modified, Invalid, Read-only, Default, Source, Rows
//
// Default is shown when nothing is configured. Source is shown only when every
// row that names a provider names the same one.
func ComputeTags(in Indicators) []state.Tag {
	tags := make([]state.Tag, 0, 6)
	if in.Modified {
		tags = append(tags, state.Tag{Kind: state.MODIFIED})
	}
	if in.Invalid {
		tags = append(tags, state.Tag{Kind: state.INVALID})
	}
	if in.ReadOnly {
		tags = append(tags, state.Tag{Kind: state.READ_ONLY})
	}
	if !in.Configured {
		tags = append(tags, state.Tag{Kind: state.DEFAULT})
	}
	if src := singleSource(in.Sources); src != "" {
		tags = append(tags, state.Tag{Kind: state.SOURCE, Text: src})
	}
	tags = append(tags, state.Tag{Kind: state.ROWS, Value: in.Rows})
	return tags
}

func singleSource(sources []string) string {
	found := ""
	for _, s := range sources {
		if s == "" {
			continue
		}
		if found != "" && s != found {
			return ""
		}
		found = s
	}
	return found
}
