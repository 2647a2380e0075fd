package merger

import (
	"strconv"
	"strings"

	"settings-tui/internal/config"
	"settings-tui/internal/settings"
)

// ParseNumericObjectValues converts the values of keys whose schema is a
// number or integer from their text form. Values that do not parse, and
// tombstones, are kept as they are.
func ParseNumericObjectValues(s *config.Setting, v map[string]any) map[string]any {
	if v == nil {
		return nil
	}
	out := make(map[string]any, len(v))
	for k, val := range v {
		out[k] = val
		if sch := settings.SchemaForKey(s, k); sch != nil && sch.Type.IsNumeric() {
			out[k] = toNumber(val)
		}
	}
	return out
}

// ParseNumericList converts list entries when the items are numeric.
func ParseNumericList(items *config.Schema, list []any) []any {
	if list == nil || items == nil || !items.Type.IsNumeric() {
		return list
	}
	out := make([]any, len(list))
	for i, v := range list {
		out[i] = toNumber(v)
	}
	return out
}

func toNumber(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return v
	}
	return f
}
