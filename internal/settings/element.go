// Package settings turns setting schemas and configured values into the rows,
// suggesters, add-button policies and validators the collection widgets use.
package settings

import (
	"reflect"
	"regexp"
	"sort"

	"settings-tui/internal/config"
	"settings-tui/internal/tui/state"
)

// Kind selects the widget a setting is edited with.
type Kind int

const (
	KindList Kind = iota
	KindExclude
	KindInclude
	KindObject
	KindBoolObject
)

func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindExclude:
		return "exclude"
	case KindInclude:
		return "include"
	case KindObject:
		return "object"
	case KindBoolObject:
		return "bool-object"
	default:
		return "unknown"
	}
}

// Element is one setting as the editor shows it: its schema plus the value
// configured at the current scope.
type Element struct {
	Setting *config.Setting
	// ScopeValue is the configured value; meaningless unless Configured.
	ScopeValue any
	Configured bool
}

func NewElement(s *config.Setting, values map[string]any) Element {
	v, ok := values[s.Key]
	return Element{Setting: s, ScopeValue: v, Configured: ok}
}

// Value is the effective value: the scope value when configured, else the
// default.
func (e Element) Value() any {
	if e.Configured {
		return e.ScopeValue
	}
	return e.Setting.Default
}

// Kind classifies the setting. Objects whose properties are all booleans and
// that accept no other keys are edited as checkboxes.
func (e Element) Kind() Kind {
	s := e.Setting
	switch {
	case s.Widget == "exclude":
		return KindExclude
	case s.Widget == "include":
		return KindInclude
	case s.Type == "array":
		return KindList
	}
	if s.ClosedObject() && len(s.PatternProperties) == 0 && len(s.Properties) > 0 {
		for _, p := range s.Properties {
			if p.Type != "boolean" {
				return KindObject
			}
		}
		return KindBoolObject
	}
	return KindObject
}

// DefaultObject is the default as an object; nil defaults give an empty map.
func (e Element) DefaultObject() map[string]any {
	return AsObject(e.Setting.Default)
}

// ScopeObject is the scope value as an object, empty when not configured.
func (e Element) ScopeObject() map[string]any {
	if !e.Configured {
		return map[string]any{}
	}
	return AsObject(e.ScopeValue)
}

// AsObject converts a JSON object value to a map. Anything else yields an
// empty map. Values implementing Object (such as ordered pattern maps) are
// unwrapped.
func AsObject(v any) map[string]any {
	switch v := v.(type) {
	case map[string]any:
		return v
	case Object:
		return v.Map()
	default:
		return map[string]any{}
	}
}

// AsArray converts a JSON array value. ok is false for non-arrays.
func AsArray(v any) ([]any, bool) {
	switch v := v.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// Object is implemented by map-like values that keep their own key order.
type Object interface {
	Map() map[string]any
}

// Same compares two JSON values: scalars by value, containers structurally.
func Same(a, b any) bool {
	switch a.(type) {
	case map[string]any, []any:
		return reflect.DeepEqual(a, b)
	}
	switch b.(type) {
	case map[string]any, []any:
		return false
	}
	return a == b
}

// Truthy follows JSON-ish truthiness: nil, false, 0 and "" are false.
func Truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return true
	}
}

// SortedKeys returns the keys of m in byte order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValueType is the row value variant used for a property schema.
func ValueType(s *config.Schema) state.ValueKind {
	if s == nil {
		return state.KindString
	}
	for _, sub := range s.AnyOf {
		if len(sub.Enum) > 0 {
			return state.KindEnum
		}
	}
	switch {
	case s.Type == "boolean":
		return state.KindBoolean
	case len(s.Enum) > 0:
		return state.KindEnum
	}
	return state.KindString
}

// EnumOptions lists the enum choices of a schema, flattening anyOf.
func EnumOptions(s *config.Schema) []state.EnumOption {
	if s == nil {
		return nil
	}
	if len(s.AnyOf) > 0 {
		var out []state.EnumOption
		for i := range s.AnyOf {
			out = append(out, EnumOptions(&s.AnyOf[i])...)
		}
		return out
	}
	out := make([]state.EnumOption, 0, len(s.Enum))
	for i, v := range s.Enum {
		opt := state.EnumOption{Value: state.TextOf(v)}
		if i < len(s.EnumDescriptions) {
			opt.Description = s.EnumDescriptions[i]
		}
		out = append(out, opt)
	}
	return out
}

// RowValue wraps raw data in the variant the schema asks for.
func RowValue(s *config.Schema, data any) state.Value {
	switch ValueType(s) {
	case state.KindBoolean:
		return state.BoolValue{Data: Truthy(data)}
	case state.KindEnum:
		return state.EnumValue{Data: state.TextOf(data), Options: EnumOptions(s)}
	default:
		return state.StringValue{Data: state.TextOf(data)}
	}
}

type patternSchema struct {
	re     *regexp.Regexp
	schema *config.Schema
}

// patternSchemas compiles patternProperties in sorted pattern order. Patterns
// RE2 cannot compile are skipped.
func patternSchemas(s *config.Setting) []patternSchema {
	patterns := make([]string, 0, len(s.PatternProperties))
	for p := range s.PatternProperties {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	out := make([]patternSchema, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		sch := s.PatternProperties[p]
		out = append(out, patternSchema{re: re, schema: &sch})
	}
	return out
}

// SchemaForKey resolves the schema of an object key: properties first, then
// the first matching patternProperties entry, then additionalProperties.
func SchemaForKey(s *config.Setting, key string) *config.Schema {
	if p, ok := s.Properties[key]; ok {
		return &p
	}
	for _, ps := range patternSchemas(s) {
		if ps.re.MatchString(key) {
			return ps.schema
		}
	}
	return s.AdditionalSchema()
}
