package collection

import "settings-tui/internal/tui/state"

// ShouldUseSuggestion decides whether a suggested value replaces the value
// currently shown in an object row editor.
//
// original is the value the row had when editing began, previous the value
// shown now, candidate the suggestion. A candidate is rejected when it would
// not change anything visible, and accepted outright when the row started
// out blank.
func ShouldUseSuggestion(original, previous, candidate state.Value) bool {
	if candidate == nil {
		return false
	}
	// same scalar shown already
	if candidate.Kind() != state.KindEnum && state.SameData(candidate, previous) {
		return false
	}
	if state.IsBlank(original) {
		return true
	}
	if previous != nil && previous.Kind() == candidate.Kind() && candidate.Kind() != state.KindEnum {
		return false
	}
	if p, ok := previous.(state.EnumValue); ok {
		if c, ok := candidate.(state.EnumValue); ok && state.SameOptions(p.Options, c.Options) {
			return false
		}
	}
	return true
}
