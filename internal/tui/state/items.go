package state

import "strconv"

// ValueKind discriminates the Value variants.
type ValueKind int

const (
	KindString ValueKind = iota
	KindEnum
	KindBoolean
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is the payload of one side of a row: a string, an enum choice or a
// boolean. The set of implementations is closed; switch on the concrete type.
type Value interface {
	Kind() ValueKind
	// Text is the display form of the data ("true"/"false" for booleans).
	Text() string
	isValue()
}

// EnumOption is one choice of an enum value.
type EnumOption struct {
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type StringValue struct {
	Data string
}

type EnumValue struct {
	Data    string
	Options []EnumOption
}

type BoolValue struct {
	Data bool
}

func (StringValue) Kind() ValueKind { return KindString }
func (EnumValue) Kind() ValueKind   { return KindEnum }
func (BoolValue) Kind() ValueKind   { return KindBoolean }

func (v StringValue) Text() string { return v.Data }
func (v EnumValue) Text() string   { return v.Data }
func (v BoolValue) Text() string   { return strconv.FormatBool(v.Data) }

func (StringValue) isValue() {}
func (EnumValue) isValue()   {}
func (BoolValue) isValue()   {}

// Data returns the raw payload as it would be stored in a settings object:
// a string for string and enum values, a bool for booleans.
func Data(v Value) any {
	switch v := v.(type) {
	case StringValue:
		return v.Data
	case EnumValue:
		return v.Data
	case BoolValue:
		return v.Data
	default:
		return nil
	}
}

// IsBlank reports whether v is a string or enum value whose data is the
// empty string. Booleans are never blank.
func IsBlank(v Value) bool {
	switch v := v.(type) {
	case StringValue:
		return v.Data == ""
	case EnumValue:
		return v.Data == ""
	default:
		return false
	}
}

// SameData reports whether a and b are the same variant with the same data.
// Enum options are not compared.
func SameData(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind() == b.Kind() && Data(a) == Data(b)
}

// SameOptions reports whether two option lists offer the same set of values.
func SameOptions(a, b []EnumOption) bool {
	seen := make(map[string]bool, len(a))
	for _, o := range a {
		seen[o.Value] = true
	}
	for _, o := range b {
		delete(seen, o.Value)
	}
	return len(seen) == 0
}

// WithData returns v with its payload replaced by data, keeping the variant
// (and enum options). Data of the wrong Go type is converted through its
// text form.
func WithData(v Value, data any) Value {
	switch v := v.(type) {
	case BoolValue:
		switch d := data.(type) {
		case bool:
			return BoolValue{Data: d}
		case string:
			return BoolValue{Data: d == "true"}
		default:
			return BoolValue{Data: data != nil}
		}
	case EnumValue:
		return EnumValue{Data: TextOf(data), Options: v.Options}
	default:
		return StringValue{Data: TextOf(data)}
	}
}

// TextOf renders raw setting data the way a row displays it.
func TextOf(data any) string {
	switch d := data.(type) {
	case nil:
		return ""
	case string:
		return d
	case bool:
		return strconv.FormatBool(d)
	case float64:
		return strconv.FormatFloat(d, 'f', -1, 64)
	case int:
		return strconv.Itoa(d)
	default:
		return ""
	}
}

// ListItem is one row of a scalar list. Sibling is the "when" pattern of
// include/exclude lists and is empty everywhere else.
type ListItem struct {
	Value   Value
	Sibling string
	Source  string
}

// ObjectItem is one key/value row of an object setting.
type ObjectItem struct {
	Key            Value
	Value          Value
	KeyDescription string
	Removable      bool
	Resetable      bool
	Source         string
}
