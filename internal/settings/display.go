package settings

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"settings-tui/internal/config"
	"settings-tui/internal/tui/state"
)

// ListItems builds the rows of an array setting from its effective value.
// Items of an enum schema carry the enum options.
func ListItems(e Element) []state.ListItem {
	arr, _ := AsArray(e.Value())
	items := make([]state.ListItem, 0, len(arr))
	enum := e.Setting.Items != nil && len(EnumOptions(e.Setting.Items)) > 0
	for _, v := range arr {
		var val state.Value = state.StringValue{Data: state.TextOf(v)}
		if enum {
			val = state.EnumValue{Data: state.TextOf(v), Options: EnumOptions(e.Setting.Items)}
		}
		items = append(items, state.ListItem{Value: val})
	}
	return items
}

// PatternItems builds the rows of an include/exclude setting: the default
// merged with the scope value, keeping only enabled patterns.
func PatternItems(e Element) []state.ListItem {
	def := e.DefaultObject()
	data := merged(def, e.ScopeObject())
	var items []state.ListItem
	for _, key := range CollateKeys(data) {
		v := data[key]
		if !Truthy(v) {
			continue
		}
		it := state.ListItem{Value: state.StringValue{Data: key}}
		if m, ok := v.(map[string]any); ok {
			it.Sibling, _ = m["when"].(string)
		}
		if dv, ok := def[key]; ok && Same(dv, v) {
			it.Source = e.Setting.DefaultSources[key]
		}
		items = append(items, it)
	}
	return items
}

// ObjectItems builds the rows of an object setting from the default merged
// with the scope value. Tombstoned keys are not shown.
func ObjectItems(e Element) []state.ObjectItem {
	s := e.Setting
	def := e.DefaultObject()
	data := merged(def, e.ScopeObject())
	keyOptions := propertyOptions(s)

	items := make([]state.ObjectItem, 0, len(data))
	for _, key := range SortedKeys(data) {
		v := data[key]
		if v == nil {
			continue
		}
		dv, hasDefault := def[key]
		it := state.ObjectItem{Key: state.StringValue{Data: key}}
		if p, ok := s.Properties[key]; ok {
			it.Key = state.EnumValue{Data: key, Options: keyOptions}
			it.Value = RowValue(&p, v)
			it.KeyDescription = p.Description
			it.Removable = dv == nil
			it.Resetable = dv != nil
		} else {
			sch := SchemaForKey(s, key)
			it.Value = RowValue(sch, v)
			if sch != nil {
				it.KeyDescription = sch.Description
			}
			it.Removable = !hasDefault || s.SupportsRemoveDefault
			it.Resetable = Truthy(dv) && !Same(dv, v)
		}
		if hasDefault && Same(dv, v) {
			it.Source = s.DefaultSources[key]
		}
		items = append(items, it)
	}
	return items
}

// BoolObjectItems builds one checkbox row per declared property.
func BoolObjectItems(e Element) []state.ObjectItem {
	s := e.Setting
	def := e.DefaultObject()
	data := merged(def, e.ScopeObject())
	items := make([]state.ObjectItem, 0, len(s.Properties))
	for _, key := range s.PropertyNames() {
		it := state.ObjectItem{
			Key:            state.StringValue{Data: key},
			Value:          state.BoolValue{Data: Truthy(data[key])},
			KeyDescription: s.Properties[key].Description,
			Resetable:      true,
		}
		if dv, ok := def[key]; ok && Same(dv, data[key]) {
			it.Source = s.DefaultSources[key]
		}
		items = append(items, it)
	}
	return items
}

func propertyOptions(s *config.Setting) []state.EnumOption {
	names := s.PropertyNames()
	opts := make([]state.EnumOption, 0, len(names))
	for _, k := range names {
		opts = append(opts, state.EnumOption{Value: k, Description: s.Properties[k].Description})
	}
	return opts
}

func merged(def, scope map[string]any) map[string]any {
	out := make(map[string]any, len(def)+len(scope))
	for k, v := range def {
		out[k] = v
	}
	for k, v := range scope {
		out[k] = v
	}
	return out
}

// CollateKeys returns the keys of m in locale collation order.
func CollateKeys(m map[string]any) []string {
	keys := SortedKeys(m)
	collate.New(language.Und).SortStrings(keys)
	return keys
}
