package collection

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settings-tui/internal/tui/state"
)

func TestExcludeAddWithAndWithoutSibling(t *testing.T) {
	w := NewExcludeSettingWidget(testConfig())
	h, events := hostedList(t, w.ListSettingWidget)

	h.Press(h.LineOf("Add Pattern"))
	require.True(t, w.EditKey().IsCreate())
	h.Type("*.log")
	h.SendKey(tea.KeyTab)
	h.Type("*.txt")
	h.SendKey(tea.KeyEnter)

	require.Len(t, *events, 1)
	first := (*events)[0]
	assert.Equal(t, state.EventAdd, first.Type)
	assert.Equal(t, 0, first.TargetIndex)
	assert.Equal(t, state.ListItem{Value: state.StringValue{Data: "*.log"}, Sibling: "*.txt"}, first.NewItem)

	h.Run(w.StartAdd())
	h.Type("*.tmp")
	h.SendKey(tea.KeyEnter)

	require.Len(t, *events, 2)
	second := (*events)[1]
	assert.Equal(t, 1, second.TargetIndex)
	assert.Equal(t, state.ListItem{Value: state.StringValue{Data: "*.tmp"}}, second.NewItem, "an empty sibling is left out")

	assert.Equal(t, []string{"*.log", "*.tmp"}, texts(w.Data()))
	assert.Contains(t, w.View(), "when: *.txt")
	assert.True(t, w.EditKey().IsNone())
}

func TestPatternListsRejectDrag(t *testing.T) {
	ex := NewExcludeSettingWidget(testConfig())
	hostedList(t, ex.ListSettingWidget, "*.log", "*.tmp")
	assert.False(t, ex.DragStart(0))
	assert.False(t, ex.Dragging())

	in := NewIncludeSettingWidget(testConfig())
	h, events := hostedList(t, in.ListSettingWidget, "src/**", "docs/**")
	require.NoError(t, in.SelectRow(0))
	h.SendAltKey(tea.KeyDown)
	assert.Empty(t, *events, "keyboard move is a drag too")
	assert.Equal(t, []string{"src/**", "docs/**"}, texts(in.Data()))
}

func TestPatternTooltipsNameSibling(t *testing.T) {
	in := NewIncludeSettingWidget(testConfig())
	h := newTestHelper(t, in)
	h.Run(in.SetValue([]state.ListItem{
		{Value: state.StringValue{Data: "*.go"}, Sibling: "go.mod"},
		{Value: state.StringValue{Data: "*.md"}},
	}))
	assert.Equal(t, "Include files matching `*.go`, only when a file matching `go.mod` is present", in.RowLabel(0))
	assert.Equal(t, "Include files matching `*.md`", in.RowLabel(1))
}
