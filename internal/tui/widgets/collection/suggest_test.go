package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"settings-tui/internal/tui/state"
)

func TestShouldUseSuggestion(t *testing.T) {
	ab := []state.EnumOption{{Value: "a"}, {Value: "b"}}
	abc := []state.EnumOption{{Value: "a"}, {Value: "b"}, {Value: "c"}}
	xy := []state.EnumOption{{Value: "x"}, {Value: "y"}}

	tests := []struct {
		name                          string
		original, previous, candidate state.Value
		want                          bool
	}{
		{"blank original takes enum", state.StringValue{}, state.StringValue{}, state.EnumValue{Data: "a", Options: ab}, true},
		{"blank original takes different string", state.StringValue{}, state.StringValue{Data: "p"}, state.StringValue{Data: "q"}, true},
		{"identical scalar is ignored", state.StringValue{}, state.StringValue{Data: "p"}, state.StringValue{Data: "p"}, false},
		{"identical boolean is ignored", state.BoolValue{}, state.BoolValue{Data: true}, state.BoolValue{Data: true}, false},
		{"same scalar kind keeps user value", state.StringValue{Data: "o"}, state.StringValue{Data: "p"}, state.StringValue{Data: "q"}, false},
		{"same boolean kind keeps user value", state.BoolValue{Data: true}, state.BoolValue{Data: true}, state.BoolValue{Data: false}, false},
		{"kind change is taken", state.StringValue{Data: "o"}, state.StringValue{Data: "p"}, state.BoolValue{Data: true}, true},
		{"enum with same options is ignored", state.StringValue{Data: "o"}, state.EnumValue{Data: "a", Options: ab}, state.EnumValue{Data: "b", Options: ab}, false},
		{"enum with superset options is ignored", state.StringValue{Data: "o"}, state.EnumValue{Data: "a", Options: ab}, state.EnumValue{Data: "a", Options: abc}, false},
		{"enum with other options is taken", state.StringValue{Data: "o"}, state.EnumValue{Data: "a", Options: ab}, state.EnumValue{Data: "x", Options: xy}, true},
		{"enum replacing string is taken", state.StringValue{Data: "o"}, state.StringValue{Data: "p"}, state.EnumValue{Data: "a", Options: ab}, true},
		{"nil candidate", state.StringValue{}, state.StringValue{}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldUseSuggestion(tt.original, tt.previous, tt.candidate))
		})
	}
}
