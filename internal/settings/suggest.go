package settings

import (
	"slices"

	"settings-tui/internal/tui/state"
)

// ArraySuggester offers the item enum as options for a list row. With
// uniqueItems, values already used by other rows are left out; the row's own
// value always stays. Returns nil when the items have no enum.
func ArraySuggester(e Element) func(existing []string, idx int) (state.Value, bool) {
	items := e.Setting.Items
	if items == nil || len(EnumOptions(items)) == 0 {
		return nil
	}
	unique := e.Setting.UniqueItems
	return func(existing []string, idx int) (state.Value, bool) {
		var opts []state.EnumOption
		for _, o := range EnumOptions(items) {
			own := idx >= 0 && idx < len(existing) && existing[idx] == o.Value
			if !unique || own || !slices.Contains(existing, o.Value) {
				opts = append(opts, o)
			}
		}
		if len(opts) == 0 {
			return nil, false
		}
		return state.EnumValue{Data: opts[0].Value, Options: opts}, true
	}
}

// ObjectKeySuggester offers the first declared property not yet present.
func ObjectKeySuggester(e Element) func(existing []string) (state.Value, bool) {
	s := e.Setting
	if len(s.Properties) == 0 {
		return nil
	}
	return func(existing []string) (state.Value, bool) {
		var opts []state.EnumOption
		for _, o := range propertyOptions(s) {
			if !slices.Contains(existing, o.Value) {
				opts = append(opts, o)
			}
		}
		if len(opts) == 0 {
			return nil, false
		}
		return state.EnumValue{Data: opts[0].Value, Options: opts}, true
	}
}

// ObjectValueSuggester offers a value for a key from the schema that governs
// it. Booleans default to true, enums to their first option and strings to
// "", unless the schema has a default.
func ObjectValueSuggester(e Element) func(key string) (state.Value, bool) {
	s := e.Setting
	return func(key string) (state.Value, bool) {
		sch := SchemaForKey(s, key)
		if sch == nil {
			return nil, false
		}
		switch ValueType(sch) {
		case state.KindBoolean:
			if sch.Default == nil {
				return state.BoolValue{Data: true}, true
			}
			return state.BoolValue{Data: Truthy(sch.Default)}, true
		case state.KindEnum:
			opts := EnumOptions(sch)
			data := state.TextOf(sch.Default)
			if sch.Default == nil && len(opts) > 0 {
				data = opts[0].Value
			}
			return state.EnumValue{Data: data, Options: opts}, true
		default:
			return state.StringValue{Data: state.TextOf(sch.Default)}, true
		}
	}
}

// ShowAddButtonList hides the add button of an enum list with uniqueItems
// once every option is used.
func ShowAddButtonList(e Element, items []state.ListItem) bool {
	s := e.Setting
	if s.Items == nil || !s.UniqueItems {
		return true
	}
	opts := EnumOptions(s.Items)
	if len(opts) == 0 {
		return true
	}
	return len(opts)-len(items) > 0
}

// ShowAddButtonObject hides the add button of a closed object once every
// declared property is present, unless pattern properties can still match.
func ShowAddButtonObject(e Element, items []state.ObjectItem) bool {
	s := e.Setting
	if !s.ClosedObject() {
		return true
	}
	if len(s.PatternProperties) > 0 {
		return true
	}
	present := make(map[string]bool, len(items))
	for _, it := range items {
		present[it.Key.Text()] = true
	}
	for k := range s.Properties {
		if !present[k] {
			return true
		}
	}
	return false
}
