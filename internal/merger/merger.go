// Package merger folds collection change events into the override value
// stored for a setting. A nil result means "no override": the setting falls
// back to its default.
package merger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"settings-tui/internal/settings"
	"settings-tui/internal/tui/state"
)

var ErrUnexpectedEvent = errors.New("unexpected event type")

// Scope is what a change is folded into: the value configured at the current
// scope (nil when unset) and the setting's default.
type Scope struct {
	Value                 any
	Default               any
	SupportsRemoveDefault bool
}

// ScopeOf builds a Scope from a settings element.
func ScopeOf(e settings.Element) Scope {
	sc := Scope{Default: e.Setting.Default, SupportsRemoveDefault: e.Setting.SupportsRemoveDefault}
	if e.Configured {
		sc.Value = e.ScopeValue
	}
	return sc
}

// ApplyListChange folds a list event into an array value. Moves splice the
// source into the target position, removes and resets drop the target, and
// changes replace it (or append when there is no target). The result is nil
// when it equals the default.
func ApplyListChange(sc Scope, ev state.ChangeEvent[state.ListItem]) []any {
	base, ok := settings.AsArray(sc.Value)
	if !ok {
		base, _ = settings.AsArray(sc.Default)
	}
	list := append([]any(nil), base...)
	inRange := func(i int) bool { return i >= 0 && i < len(list) }

	switch ev.Type {
	case state.EventMove:
		if inRange(ev.SourceIndex) && ev.TargetIndex >= 0 && ev.TargetIndex < len(list) {
			moved := list[ev.SourceIndex]
			list = append(list[:ev.SourceIndex], list[ev.SourceIndex+1:]...)
			list = append(list[:ev.TargetIndex], append([]any{moved}, list[ev.TargetIndex:]...)...)
		}
	case state.EventRemove, state.EventReset:
		if inRange(ev.TargetIndex) {
			list = append(list[:ev.TargetIndex], list[ev.TargetIndex+1:]...)
		}
	case state.EventChange:
		data := state.TextOf(state.Data(ev.NewItem.Value))
		if inRange(ev.TargetIndex) {
			list[ev.TargetIndex] = data
		} else {
			list = append(list, data)
		}
	case state.EventAdd:
		list = append(list, state.TextOf(state.Data(ev.NewItem.Value)))
	}

	if def, ok := settings.AsArray(sc.Default); ok && sameList(def, list) {
		return nil
	}
	return list
}

func sameList(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if state.TextOf(a[i]) != state.TextOf(b[i]) {
			return false
		}
	}
	return true
}

// ApplyObjectChange folds an object event into an object value. items are
// the rows the widget showed when the event fired. Removing a key that has a
// default stores a null tombstone when the setting supports removing
// defaults, otherwise the key reverts to the default. Keys whose value ends
// up equal to the default are dropped from the override. The value is nil
// when nothing is left.
func ApplyObjectChange(sc Scope, items []state.ObjectItem, ev state.ChangeEvent[state.ObjectItem]) map[string]any {
	def := settings.AsObject(sc.Default)
	scope := settings.AsObject(sc.Value)

	value := make(map[string]any, len(scope))
	for k, v := range scope {
		value[k] = v
	}

	if ev.Type == state.EventChange || ev.Type == state.EventMove {
		newKey := ev.NewItem.Key.Text()
		for i, it := range items {
			if i == ev.TargetIndex {
				oldKey := ev.OriginalItem.Key.Text()
				if _, inDefault := def[oldKey]; inDefault && sc.SupportsRemoveDefault && oldKey != newKey {
					value[oldKey] = nil
				} else {
					delete(value, oldKey)
				}
				value[newKey] = state.Data(ev.NewItem.Value)
				continue
			}
			if it.Key.Text() != newKey {
				value[it.Key.Text()] = state.Data(it.Value)
			}
		}
	} else {
		for _, it := range items {
			value[it.Key.Text()] = state.Data(it.Value)
		}
	}

	switch ev.Type {
	case state.EventRemove, state.EventReset:
		key := ev.OriginalItem.Key.Text()
		dv, hasDefault := def[key]
		if ev.Type == state.EventRemove && sc.SupportsRemoveDefault &&
			hasDefault && settings.Same(dv, state.Data(ev.OriginalItem.Value)) {
			value[key] = nil
		} else {
			delete(value, key)
		}
	case state.EventAdd:
		value[ev.NewItem.Key.Text()] = state.Data(ev.NewItem.Value)
	}

	for k, v := range value {
		sv, inScope := scope[k]
		dv, hasDefault := def[k]
		if (!inScope || !settings.Same(sv, v)) && hasDefault && settings.Same(dv, v) &&
			!(v == nil && sc.SupportsRemoveDefault) {
			delete(value, k)
		}
	}
	if len(value) == 0 {
		return nil
	}
	return value
}

// ApplyBoolObjectChange folds a checkbox event. Only changes and resets are
// meaningful for a fixed set of boolean properties.
func ApplyBoolObjectChange(sc Scope, ev state.ChangeEvent[state.ObjectItem]) (map[string]any, error) {
	if ev.Type != state.EventChange && ev.Type != state.EventReset {
		return nil, fmt.Errorf("%w: %s on a boolean object", ErrUnexpectedEvent, ev.Type)
	}
	def := settings.AsObject(sc.Default)
	scope := settings.AsObject(sc.Value)
	value := make(map[string]any, len(scope))
	for k, v := range scope {
		value[k] = v
	}
	key := ev.OriginalItem.Key.Text()
	if ev.Type == state.EventReset {
		delete(value, key)
	} else {
		value[key] = state.Data(ev.NewItem.Value)
	}
	for k, v := range value {
		sv, inScope := scope[k]
		if dv, ok := def[k]; ok && settings.Same(dv, v) && (!inScope || !settings.Same(sv, v)) {
			delete(value, k)
		}
	}
	if len(value) == 0 {
		return nil, nil
	}
	return value, nil
}

// OrderedObject is an include/exclude value whose keys marshal in collation
// order.
type OrderedObject struct {
	Keys   []string
	Values map[string]any
}

func (o *OrderedObject) Map() map[string]any { return o.Values }

func (o *OrderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(o.Values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ApplyPatternChange folds an include/exclude event. Patterns coming from the
// default are disabled with false rather than deleted; a sibling is stored as
// {"when": sibling}. Returns nil when no override is left.
func ApplyPatternChange(sc Scope, ev state.ChangeEvent[state.ListItem]) *OrderedObject {
	def := settings.AsObject(sc.Default)
	value := make(map[string]any)
	for k, v := range settings.AsObject(sc.Value) {
		value[k] = v
	}

	if ev.Type != state.EventAdd {
		key := ev.OriginalItem.Value.Text()
		if _, ok := def[key]; ok {
			value[key] = false
		} else {
			delete(value, key)
		}
	}
	if ev.Type == state.EventChange || ev.Type == state.EventAdd || ev.Type == state.EventMove {
		key := ev.NewItem.Value.Text()
		_, inDefault := def[key]
		switch {
		case inDefault && ev.NewItem.Sibling == "":
			delete(value, key)
		case ev.NewItem.Sibling != "":
			value[key] = map[string]any{"when": ev.NewItem.Sibling}
		default:
			value[key] = true
		}
	}
	if len(value) == 0 {
		return nil
	}
	return &OrderedObject{Keys: settings.CollateKeys(value), Values: value}
}
