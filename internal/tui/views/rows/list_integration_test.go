package rows

import (
	"strings"
	"testing"

	"settings-tui/internal/config"
	"settings-tui/internal/settings"
)

func TestRenderListSetting(t *testing.T) {
	s := &config.Setting{
		Key:         "editor.rulers",
		Type:        "array",
		Description: "Columns to draw rulers at.",
		Items:       &config.Schema{Type: "number"},
		Default:     []any{80.0},
	}
	out := Render(settings.NewElement(s, map[string]any{"editor.rulers": []any{80.0, "wide"}}), true)

	wants := []string{"editor.rulers  [Invalid] [2 rows]", "  Columns to draw rulers at.", "  - 80\n", "  - wide\n", "  ! Value wide is not a number."}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("expected %q in output: %s", w, out)
		}
	}
	if strings.Contains(out, "[Default]") {
		t.Fatalf("configured setting rendered as default: %s", out)
	}
}

func TestRenderBoolObjectWithSource(t *testing.T) {
	s := &config.Setting{
		Key:  "editor.quickSuggestions",
		Type: "object",
		Properties: map[string]config.Schema{
			"comments": {Type: "boolean"},
			"strings":  {Type: "boolean"},
		},
		AdditionalProperties: &config.AdditionalProperties{Forbidden: true},
		Default:              map[string]any{"comments": false, "strings": true},
		DefaultSources:       map[string]string{"strings": "Go extension"},
	}
	out := Render(settings.NewElement(s, nil), true)

	wants := []string{"[Default]", "[From Go extension]", "[ ] comments\n", "[x] strings  (from Go extension)"}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("expected %q in output: %s", w, out)
		}
	}
}

func TestRenderPatternWithSibling(t *testing.T) {
	s := &config.Setting{Key: "files.exclude", Type: "object", Widget: "exclude"}
	out := Render(settings.NewElement(s, map[string]any{
		"files.exclude": map[string]any{"*.js": map[string]any{"when": "$(basename).ts"}, "off": false},
	}), true)

	if !strings.Contains(out, "- *.js  (when: $(basename).ts)") {
		t.Fatalf("sibling missing: %s", out)
	}
	if strings.Contains(out, "off") {
		t.Fatalf("disabled pattern shown: %s", out)
	}
}
