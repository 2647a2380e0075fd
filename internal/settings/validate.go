package settings

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"settings-tui/internal/config"
	"settings-tui/internal/tui/state"
)

// Validate checks the effective value of a setting as a whole. The result is
// empty when the value is acceptable; problems are joined by newlines.
func Validate(e Element) string {
	switch e.Kind() {
	case KindList:
		return ValidateArray(e.Setting, e.Value())
	case KindObject, KindBoolObject:
		return ValidateObject(e.Setting, e.Value())
	default:
		return ""
	}
}

// ValidationLabel is the accessible label of a whole-value validation error.
func ValidationLabel(key, msg string) string {
	return key + " Validation Error. " + msg
}

func ValidateArray(s *config.Setting, value any) string {
	if value == nil {
		return ""
	}
	arr, ok := AsArray(value)
	if !ok {
		return "Incorrect type. Expected an array."
	}
	var problems []string
	if s.MinItems != nil && len(arr) < *s.MinItems {
		problems = append(problems, fmt.Sprintf("Array must have at least %d items", *s.MinItems))
	}
	if s.MaxItems != nil && len(arr) > *s.MaxItems {
		problems = append(problems, fmt.Sprintf("Array must have at most %d items", *s.MaxItems))
	}
	if s.UniqueItems {
		seen := map[string]bool{}
		for _, v := range arr {
			t := state.TextOf(v)
			if seen[t] {
				problems = append(problems, "Array has duplicate items")
				break
			}
			seen[t] = true
		}
	}
	if s.Items != nil {
		for _, v := range arr {
			if msg := checkItem(s.Items, state.TextOf(v)); msg != "" {
				problems = append(problems, msg)
			}
		}
	}
	return strings.Join(problems, "\n")
}

func ValidateObject(s *config.Setting, value any) string {
	if value == nil {
		return ""
	}
	obj, ok := value.(map[string]any)
	if !ok {
		if o, isObj := value.(Object); isObj {
			obj = o.Map()
		} else {
			return "Incorrect type. Expected an object."
		}
	}
	var problems []string
	for _, key := range SortedKeys(obj) {
		if msg := checkKey(s, key); msg != "" {
			problems = append(problems, msg)
			continue
		}
		if obj[key] == nil {
			continue
		}
		if sch := SchemaForKey(s, key); sch != nil && sch.Type.IsNumeric() {
			if _, isNum := obj[key].(float64); !isNum {
				problems = append(problems, fmt.Sprintf("Property %s must be a number.", key))
			}
		}
	}
	return strings.Join(problems, "\n")
}

// ListRowValidator checks one list row against the item schema. Returns nil
// when the items carry nothing to check.
func ListRowValidator(e Element) func(state.ListItem) string {
	items := e.Setting.Items
	if e.Kind() != KindList || items == nil {
		return nil
	}
	if items.Pattern == "" && !items.Type.IsNumeric() && len(items.Enum) == 0 {
		return nil
	}
	return func(it state.ListItem) string {
		return checkItem(items, it.Value.Text())
	}
}

// ObjectRowValidator checks a row's key against a closed object and a
// numeric value against its schema type.
func ObjectRowValidator(e Element) func(state.ObjectItem) string {
	s := e.Setting
	return func(it state.ObjectItem) string {
		key := it.Key.Text()
		if msg := checkKey(s, key); msg != "" {
			return msg
		}
		if sch := SchemaForKey(s, key); sch != nil && sch.Type.IsNumeric() {
			if _, err := strconv.ParseFloat(strings.TrimSpace(it.Value.Text()), 64); err != nil {
				return fmt.Sprintf("Property %s must be a number.", key)
			}
		}
		return ""
	}
}

func checkItem(items *config.Schema, text string) string {
	if items.Type.IsNumeric() {
		if _, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err != nil {
			return fmt.Sprintf("Value %s is not a number.", text)
		}
	}
	if items.Pattern != "" {
		re, err := regexp.Compile(items.Pattern)
		if err == nil && !re.MatchString(text) {
			return fmt.Sprintf("Value %s must match regex %s.", text, items.Pattern)
		}
	}
	if opts := EnumOptions(items); len(opts) > 0 {
		names := make([]string, 0, len(opts))
		for _, o := range opts {
			if o.Value == text {
				return ""
			}
			names = append(names, o.Value)
		}
		return fmt.Sprintf("Value %s is not one of %s", text, strings.Join(names, ", "))
	}
	return ""
}

// checkKey rejects keys a closed object does not declare, suggesting the
// nearest declared property.
func checkKey(s *config.Setting, key string) string {
	if !s.ClosedObject() {
		return ""
	}
	if _, ok := s.Properties[key]; ok {
		return ""
	}
	for _, ps := range patternSchemas(s) {
		if ps.re.MatchString(key) {
			return ""
		}
	}
	msg := fmt.Sprintf("Property %s is not allowed.", key)
	if near := nearest(key, s.PropertyNames()); near != "" {
		msg += fmt.Sprintf(" Did you mean `%s`?", near)
	}
	return msg
}

func nearest(key string, candidates []string) string {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(key, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	limit := len(key) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}
