package config

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "settings": [
    {"key": "files.exclude", "type": "object", "widget": "exclude",
     "default": {"**/.git": true}, "defaultSources": {"**/.git": "Git"}},
    {"key": "editor.rulers", "type": "array", "items": {"type": ["number", "null"]}, "maxItems": 3},
    {"key": "workbench.colors", "type": "object",
     "properties": {"fg": {"type": "string"}, "bg": {"type": "string", "default": "black"}},
     "additionalProperties": false},
    {"key": "search.modes", "type": "object",
     "additionalProperties": {"type": "string", "enum": ["fast", "slow"]}}
  ],
  "values": {"editor.rulers": [80, 120]}
}`

func TestParseJSON(t *testing.T) {
	d, err := Parse([]byte(sampleJSON), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"files.exclude", "editor.rulers", "workbench.colors", "search.modes"}, d.Keys())

	rulers, err := d.Lookup("editor.rulers")
	require.NoError(t, err)
	assert.Equal(t, SchemaType("number"), rulers.Items.Type)
	assert.True(t, rulers.Items.Type.IsNumeric())
	require.NotNil(t, rulers.MaxItems)
	assert.Equal(t, 3, *rulers.MaxItems)

	colors, _ := d.Lookup("workbench.colors")
	assert.True(t, colors.ClosedObject())
	assert.Nil(t, colors.AdditionalSchema())
	assert.Equal(t, []string{"bg", "fg"}, colors.PropertyNames())

	modes, _ := d.Lookup("search.modes")
	assert.False(t, modes.ClosedObject())
	require.NotNil(t, modes.AdditionalSchema())
	assert.Equal(t, []any{"fast", "slow"}, modes.AdditionalSchema().Enum)

	exclude, _ := d.Lookup("files.exclude")
	assert.Equal(t, "Git", exclude.DefaultSources["**/.git"])
}

func TestParseYAML(t *testing.T) {
	src := `
settings:
  - key: files.include
    type: object
    widget: include
    default:
      "*.go": true
values:
  files.include:
    "*.md": {when: "$(basename).go"}
`
	d, err := Parse([]byte(src), true)
	require.NoError(t, err)
	s, err := d.Lookup("files.include")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"*.go": true}, s.Default)
	assert.Equal(t, map[string]any{"*.md": map[string]any{"when": "$(basename).go"}}, d.Values["files.include"])
}

func TestParseRejectsBadDocuments(t *testing.T) {
	_, err := Parse([]byte(`{"settings": []}`), false)
	assert.True(t, errors.Is(err, ErrNoSettings))

	_, err = Parse([]byte(`{"settings": [{"key": "a", "type": "array"}, {"key": "a", "type": "array"}]}`), false)
	assert.ErrorContains(t, err, "duplicate")

	_, err = Parse([]byte(`{"settings": [{"key": "a", "type": "string"}]}`), false)
	assert.ErrorContains(t, err, "unsupported type")

	_, err = Parse([]byte(`{"settings": [{"key": "a", "type": "object", "additionalProperties": 3}]}`), false)
	assert.ErrorContains(t, err, "additionalProperties")
}

func TestLookupUnknown(t *testing.T) {
	d, err := Parse([]byte(sampleJSON), false)
	require.NoError(t, err)
	_, err = d.Lookup("nope")
	assert.True(t, errors.Is(err, ErrUnknownSetting))
}

func TestCloneCopiesValues(t *testing.T) {
	d, err := Parse([]byte(sampleJSON), false)
	require.NoError(t, err)
	cp := Clone(d)
	cp.Values["editor.rulers"].([]any)[0] = 100.0
	cp.Values["new"] = true

	assert.Equal(t, 80.0, d.Values["editor.rulers"].([]any)[0])
	assert.NotContains(t, d.Values, "new")
}

func TestLoadFromFileAndURL(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "settings.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("settings:\n  - key: a\n    type: array\n"), 0o644))
	d, err := Load(context.Background(), yamlPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, d.Keys())
	assert.NotNil(t, d.Values)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()
	assert.True(t, IsURL(srv.URL))
	d, err = Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, d.Settings, 4)

	_, err = Load(context.Background(), filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "read settings document")
}

func TestSaveRoundTrip(t *testing.T) {
	d, err := Parse([]byte(sampleJSON), false)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, Save(path, d))
	back, err := Load(context.Background(), path)
	require.NoError(t, err)
	colors, _ := back.Lookup("workbench.colors")
	assert.True(t, colors.ClosedObject())
	modes, _ := back.Lookup("search.modes")
	require.NotNil(t, modes.AdditionalSchema())
}
