package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"settings-tui/internal/httpx"
)

var (
	ErrNoSettings     = errors.New("document has no settings")
	ErrUnknownSetting = errors.New("unknown setting")
)

// Document is a settings document: the schema of every editable setting and
// the values configured at the current scope, keyed by setting key.
//
//	{"settings": [{"key": "files.exclude", "type": "object", "widget": "exclude", ...}],
//	 "values": {"files.exclude": {"**/.git": true}}}
type Document struct {
	Settings []Setting     `json:"settings"`
	Values   map[string]any `json:"values,omitempty"`
}

// Setting is the schema of one array or object setting.
type Setting struct {
	Key         string     `json:"key"`
	Type        SchemaType `json:"type"`
	Widget      string     `json:"widget,omitempty"` // "" | "exclude" | "include"
	Description string     `json:"description,omitempty"`
	Default     any        `json:"default,omitempty"`
	// DefaultSources names who contributed a default entry, keyed by object
	// key (or pattern for include/exclude settings).
	DefaultSources map[string]string `json:"defaultSources,omitempty"`
	ReadOnly       bool              `json:"readOnly,omitempty"`

	// array settings
	Items       *Schema `json:"items,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty"`
	MinItems    *int    `json:"minItems,omitempty"`
	MaxItems    *int    `json:"maxItems,omitempty"`

	// object settings
	Properties            map[string]Schema     `json:"properties,omitempty"`
	PatternProperties     map[string]Schema     `json:"patternProperties,omitempty"`
	AdditionalProperties  *AdditionalProperties `json:"additionalProperties,omitempty"`
	SupportsRemoveDefault bool                  `json:"supportsRemoveDefault,omitempty"`
}

// Schema is the subset of JSON schema used for items and property values.
type Schema struct {
	Type             SchemaType `json:"type,omitempty"`
	Enum             []any      `json:"enum,omitempty"`
	EnumDescriptions []string   `json:"enumDescriptions,omitempty"`
	Default          any        `json:"default,omitempty"`
	Description      string     `json:"description,omitempty"`
	AnyOf            []Schema   `json:"anyOf,omitempty"`
	Pattern          string     `json:"pattern,omitempty"`
}

// SchemaType is a JSON schema "type". A list of types collapses to its first
// non-null member.
type SchemaType string

func (t *SchemaType) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*t = SchemaType(one)
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("schema type: %w", err)
	}
	*t = ""
	for _, m := range many {
		if m != "null" {
			*t = SchemaType(m)
			break
		}
	}
	return nil
}

// IsNumeric reports whether values of this type are stored as numbers.
func (t SchemaType) IsNumeric() bool {
	return t == "number" || t == "integer"
}

// AdditionalProperties is either a boolean or a schema.
type AdditionalProperties struct {
	Forbidden bool
	Schema    *Schema
}

func (a *AdditionalProperties) UnmarshalJSON(b []byte) error {
	var allowed bool
	if err := json.Unmarshal(b, &allowed); err == nil {
		*a = AdditionalProperties{Forbidden: !allowed}
		return nil
	}
	var s Schema
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("additionalProperties: %w", err)
	}
	*a = AdditionalProperties{Schema: &s}
	return nil
}

func (a AdditionalProperties) MarshalJSON() ([]byte, error) {
	if a.Schema != nil {
		return json.Marshal(a.Schema)
	}
	return json.Marshal(!a.Forbidden)
}

// ClosedObject reports whether keys outside properties and patternProperties
// are rejected.
func (s *Setting) ClosedObject() bool {
	return s.AdditionalProperties != nil && s.AdditionalProperties.Forbidden
}

// AdditionalSchema is the schema of keys matched by neither properties nor
// patternProperties, or nil.
func (s *Setting) AdditionalSchema() *Schema {
	if s.AdditionalProperties == nil {
		return nil
	}
	return s.AdditionalProperties.Schema
}

// PropertyNames returns the declared property names in sorted order.
func (s *Setting) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Load reads a settings document from a local path or an http(s) URL. YAML is
// accepted for .yaml/.yml paths and for content that does not start with '{'.
func Load(ctx context.Context, location string) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if IsURL(location) {
		data, err = httpx.GetJSON(ctx, location)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("read settings document: %w", err)
	}
	return Parse(data, isYAML(location, data))
}

func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func isYAML(location string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		return true
	case ".json":
		return false
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] != '{'
}

// Parse decodes a settings document. YAML input is converted to JSON values
// first so both formats decode through the same struct tags.
func Parse(data []byte, fromYAML bool) (*Document, error) {
	if fromYAML {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse settings YAML: %w", err)
		}
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("convert settings YAML: %w", err)
		}
		data = b
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse settings JSON: %w", err)
	}
	if err := d.check(); err != nil {
		return nil, err
	}
	if d.Values == nil {
		d.Values = map[string]any{}
	}
	return &d, nil
}

func (d *Document) check() error {
	if len(d.Settings) == 0 {
		return ErrNoSettings
	}
	seen := make(map[string]bool, len(d.Settings))
	for _, s := range d.Settings {
		if s.Key == "" {
			return fmt.Errorf("setting without key")
		}
		if seen[s.Key] {
			return fmt.Errorf("duplicate setting %q", s.Key)
		}
		seen[s.Key] = true
		if s.Type != "array" && s.Type != "object" {
			return fmt.Errorf("setting %q: unsupported type %q", s.Key, s.Type)
		}
	}
	return nil
}

// Keys returns the setting keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.Settings))
	for _, s := range d.Settings {
		keys = append(keys, s.Key)
	}
	return keys
}

func (d *Document) Lookup(key string) (*Setting, error) {
	for i := range d.Settings {
		if d.Settings[i].Key == key {
			return &d.Settings[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
}

// Clone copies the document. Values are deep-copied; schemas are shared.
func Clone(d *Document) *Document {
	out := &Document{
		Settings: append([]Setting(nil), d.Settings...),
		Values:   make(map[string]any, len(d.Values)),
	}
	for k, v := range d.Values {
		out.Values[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies a JSON value.
func CloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[k] = CloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(v))
		for i, e := range v {
			s[i] = CloneValue(e)
		}
		return s
	default:
		return v
	}
}

func Save(path string, d *Document) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
