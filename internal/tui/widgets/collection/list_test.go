package collection

import (
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settings-tui/internal/tui/state"
)

type listEvent = state.ChangeEvent[state.ListItem]

func applyList(data []state.ListItem, ev listEvent) []state.ListItem {
	out := append([]state.ListItem(nil), data...)
	switch ev.Type {
	case state.EventAdd:
		out = append(out, ev.NewItem)
	case state.EventChange:
		out[ev.TargetIndex] = ev.NewItem
	case state.EventRemove, state.EventReset:
		out = slices.Delete(out, ev.TargetIndex, ev.TargetIndex+1)
	case state.EventMove:
		item := out[ev.SourceIndex]
		out = slices.Delete(out, ev.SourceIndex, ev.SourceIndex+1)
		out = slices.Insert(out, ev.TargetIndex, item)
	}
	return out
}

// hostedList wires a list widget to a listener that applies every event
// and pushes the result back, like the settings editor does.
func hostedList(t *testing.T, w *ListSettingWidget, values ...string) (*testHelper, *[]listEvent) {
	h := newTestHelper(t, w)
	var events []listEvent
	w.OnDidChangeList(func(ev listEvent) {
		events = append(events, ev)
		h.Run(w.SetValue(applyList(w.Data(), ev)))
	})
	h.Run(w.SetValue(strItems(values...)))
	return h, &events
}

func TestListAddThroughAddButton(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h, events := hostedList(t, w, "a", "b")

	h.Press(h.LineOf("Add Item"))
	require.True(t, w.EditKey().IsCreate())
	assert.False(t, w.IsAddButtonVisible(), "add button hidden while a new row is edited")

	h.Type("c")
	h.SendKey(tea.KeyEnter)

	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, state.EventAdd, ev.Type)
	assert.Equal(t, 2, ev.TargetIndex)
	assert.Equal(t, state.StringValue{Data: "c"}, ev.NewItem.Value)
	assert.Equal(t, []string{"a", "b", "c"}, texts(w.Data()))
	assert.True(t, w.EditKey().IsNone())
	assert.False(t, w.Editing())
}

func TestListEditExistingRowFiresChange(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h, events := hostedList(t, w, "a", "b")

	cmd, err := w.EditSetting(1)
	require.NoError(t, err)
	h.Run(cmd)
	h.Type("2")
	h.SendKey(tea.KeyEnter)

	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, state.EventChange, ev.Type)
	assert.Equal(t, 1, ev.TargetIndex)
	assert.Equal(t, "b", ev.OriginalItem.Value.Text())
	assert.Equal(t, "b2", ev.NewItem.Value.Text())
	assert.Equal(t, []string{"a", "b2"}, texts(w.Data()))
}

func TestListCancelPublishesNothing(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h, events := hostedList(t, w, "a")

	h.Run(w.StartAdd())
	h.Type("zzz")
	h.SendKey(tea.KeyEsc)

	assert.Empty(t, *events)
	assert.True(t, w.EditKey().IsNone())
	assert.Equal(t, 1, w.Len())
	assert.Len(t, w.Items(), 1, "create row is gone")
}

func TestListKeyboardNavigation(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h, events := hostedList(t, w, "a", "b", "c")

	h.SendKey(tea.KeyDown)
	sel, ok := w.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, sel)

	h.SendKey(tea.KeyDown)
	h.SendKey(tea.KeyDown)
	h.SendKey(tea.KeyDown)
	sel, _ = w.Selected()
	assert.Equal(t, 2, sel, "selection clamps at the last row")

	h.SendKey(tea.KeyUp)
	h.SendKeyRune('d')
	require.Len(t, *events, 1)
	assert.Equal(t, state.EventRemove, (*events)[0].Type)
	assert.Equal(t, 1, (*events)[0].TargetIndex)
	assert.Equal(t, []string{"a", "c"}, texts(w.Data()))

	h.SendKey(tea.KeyEnter)
	assert.True(t, w.Editing())
	idx, ok := w.EditKey().Index()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestListValidationBlocksCommit(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h := newTestHelper(t, w)
	var events []listEvent
	w.OnDidChangeList(func(ev listEvent) { events = append(events, ev) })
	noSpaces := func(it state.ListItem) string {
		if strings.Contains(it.Value.Text(), " ") {
			return "Value must not contain spaces"
		}
		return ""
	}
	h.Run(w.SetValue(strItems("a"), WithValidator(noSpaces)))

	cmd, err := w.EditSetting(0)
	require.NoError(t, err)
	h.Run(cmd)
	h.Type(" x")
	h.SendKey(tea.KeyEnter)

	assert.Empty(t, events)
	assert.True(t, w.Editing())
	assert.Contains(t, w.View(), "Value must not contain spaces")

	h.SendKey(tea.KeyBackspace)
	h.SendKey(tea.KeyBackspace)
	h.SendKey(tea.KeyEnter)

	require.Len(t, events, 1)
	assert.Equal(t, state.EventChange, events[0].Type)
	assert.Equal(t, "a", events[0].NewItem.Value.Text())
	assert.False(t, w.Editing())
}

func TestListValidationFlagsStoredRows(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h := newTestHelper(t, w)
	h.Run(w.SetValue(strItems("ok", "b a d"), WithValidator(func(it state.ListItem) string {
		if strings.Contains(it.Value.Text(), " ") {
			return "bad"
		}
		return ""
	})))
	assert.Empty(t, w.RowError(0))
	assert.Equal(t, "bad", w.RowError(1))
}

func TestListDragReorder(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	_, events := hostedList(t, w, "a", "b", "c")

	require.True(t, w.DragStart(0))
	w.Drop(0)
	assert.Empty(t, *events, "dropping on the origin row is not a move")
	assert.False(t, w.Dragging())

	require.True(t, w.DragStart(0))
	require.True(t, w.DragOver(2))
	w.Drop(2)
	w.DragEnd()

	require.Len(t, *events, 1)
	ev := (*events)[0]
	assert.Equal(t, state.EventMove, ev.Type)
	assert.Equal(t, 0, ev.SourceIndex)
	assert.Equal(t, 2, ev.TargetIndex)
	assert.Equal(t, "a", ev.OriginalItem.Value.Text())
	assert.Equal(t, "c", ev.NewItem.Value.Text())
	assert.Equal(t, []string{"b", "c", "a"}, texts(w.Data()))
}

func TestListDragBounds(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h, events := hostedList(t, w, "a", "b")

	assert.False(t, w.DragStart(5))
	require.True(t, w.DragStart(1))
	assert.False(t, w.DragOver(2))
	w.Drop(2)
	assert.Empty(t, *events)
	assert.False(t, w.Dragging())

	cmd, err := w.EditSetting(0)
	require.NoError(t, err)
	h.Run(cmd)
	assert.False(t, w.DragStart(1), "no drag while a row is edited")
}

func TestListPointerDrag(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h, events := hostedList(t, w, "a", "b", "c")

	from := h.LineOf("a")
	to := h.LineOf("c")
	h.Send(PointerMsg{Line: from, Action: PointerPress})
	h.Send(PointerMsg{Line: to, Action: PointerMotion})
	assert.True(t, w.Dragging())
	h.Send(PointerMsg{Line: to, Action: PointerRelease})

	require.Len(t, *events, 1)
	assert.Equal(t, state.EventMove, (*events)[0].Type)
	assert.Equal(t, []string{"b", "c", "a"}, texts(w.Data()))
	assert.False(t, w.Dragging())
}

func TestListKeyboardMove(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h, events := hostedList(t, w, "a", "b", "c")

	require.NoError(t, w.SelectRow(0))
	h.SendAltKey(tea.KeyDown)

	require.Len(t, *events, 1)
	assert.Equal(t, []string{"b", "a", "c"}, texts(w.Data()))
	sel, _ := w.Selected()
	assert.Equal(t, 1, sel, "selection follows the moved row")

	h.SendAltKey(tea.KeyUp)
	h.SendAltKey(tea.KeyUp)
	assert.Equal(t, []string{"a", "b", "c"}, texts(w.Data()))
	assert.Len(t, *events, 2, "moving past the first row is ignored")
}

func TestListReadOnly(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h := newTestHelper(t, w)
	h.Run(w.SetValue(strItems("a", "b"), WithReadOnly(true)))

	_, err := w.EditSetting(0)
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.False(t, w.IsAddButtonVisible())
	assert.Nil(t, w.StartAdd())
	assert.Empty(t, w.Actions(0))
	assert.False(t, w.DragStart(0))
	assert.NotContains(t, w.View(), "Add Item")
	assert.Nil(t, w.OnListDoubleClick(0))
	assert.False(t, w.Editing())
}

func TestListIndexErrors(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	newTestHelper(t, w).Run(w.SetValue(strItems("a")))

	_, err := w.EditSetting(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, w.SelectRow(-1), ErrIndexOutOfRange)
	assert.ErrorIs(t, w.SelectRow(3), ErrIndexOutOfRange)
	assert.True(t, w.EditKey().IsNone())
}

func TestListSettingKeyResetsCursors(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h := newTestHelper(t, w)
	h.Run(w.SetValue(strItems("a", "b"), WithSettingKey("files.exclude")))

	cmd, err := w.EditSetting(1)
	require.NoError(t, err)
	h.Run(cmd)
	h.Type("!")

	// same setting: the open editor and its text survive
	h.Run(w.SetValue(strItems("a", "b"), WithSettingKey("files.exclude")))
	require.True(t, w.Editing())
	assert.Equal(t, "b!", w.editor.Value().Value.Text())

	h.Run(w.SetValue(strItems("x"), WithSettingKey("search.exclude")))
	assert.False(t, w.Editing())
	assert.True(t, w.EditKey().IsNone())
	_, ok := w.Selected()
	assert.False(t, ok)
}

func TestListDoubleClickEdits(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	cfg := testConfig()
	cfg.Now = clock.Now
	w := NewListSettingWidget(cfg)
	h, _ := hostedList(t, w, "a", "b")

	line := h.LineOf("b")
	h.Press(line)
	h.Send(PointerMsg{Line: line, Action: PointerRelease})
	sel, ok := w.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, sel)
	assert.False(t, w.Editing())

	clock.Advance(time.Second)
	h.Press(line)
	assert.False(t, w.Editing(), "presses too far apart are two clicks")

	clock.Advance(100 * time.Millisecond)
	h.Press(line)
	require.True(t, w.Editing())
	idx, _ := w.EditKey().Index()
	assert.Equal(t, 1, idx)
}

func TestListStaleFocusIgnored(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h, _ := hostedList(t, w, "a", "b")

	first, err := w.EditSetting(0)
	require.NoError(t, err)
	second, err := w.EditSetting(1)
	require.NoError(t, err)

	h.Run(first)
	h.Type("z")
	assert.Equal(t, "b", w.editor.Value().Value.Text(), "stale focus must not focus the new editor")

	h.Run(second)
	h.Type("z")
	assert.Equal(t, "bz", w.editor.Value().Value.Text())
}

func TestListEnumSuggester(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h := newTestHelper(t, w)
	var events []listEvent
	w.OnDidChangeList(func(ev listEvent) { events = append(events, ev) })
	opts := []state.EnumOption{{Value: "red"}, {Value: "green"}, {Value: "blue"}}
	suggest := func(existing []string, idx int) (state.Value, bool) {
		return state.EnumValue{Options: opts}, true
	}
	h.Run(w.SetValue(strItems("blue"), WithArraySuggester(suggest)))

	h.Run(w.StartAdd())
	h.SendKey(tea.KeyEnter)
	require.Len(t, events, 1)
	assert.Equal(t, state.EnumValue{Data: "red", Options: opts}, events[0].NewItem.Value)

	cmd, err := w.EditSetting(0)
	require.NoError(t, err)
	h.Run(cmd)
	h.SendKey(tea.KeyRight)
	h.SendKey(tea.KeyEnter)
	require.Len(t, events, 2)
	assert.Equal(t, "red", events[1].NewItem.Value.Text(), "existing value keeps its choice and cycles from there")
}

func TestListHoverLifecycle(t *testing.T) {
	tips := NewTooltips()
	cfg := testConfig()
	cfg.Hover = tips
	w := NewListSettingWidget(cfg)
	h := newTestHelper(t, w)

	h.Run(w.SetValue(strItems("a", "b")))
	assert.Equal(t, 2, tips.Len())
	c, ok := tips.Content(w.RowTarget(1))
	require.True(t, ok)
	assert.Equal(t, "List item `b`", c)

	h.Run(w.SetValue(strItems("a")))
	assert.Equal(t, 1, tips.Len())

	w.Dispose()
	assert.Equal(t, 0, tips.Len())
}

func TestListRowLabels(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h := newTestHelper(t, w)
	h.Run(w.SetValue([]state.ListItem{
		{Value: state.StringValue{Data: "a"}},
		{Value: state.StringValue{Data: "b"}, Source: "Git"},
	}))
	assert.Equal(t, "List item `a`", w.RowLabel(0))
	assert.Equal(t, "List item `b`. Default value provided by `Git`", w.RowLabel(1))
	assert.Empty(t, w.RowLabel(7))
}

func TestListAddButtonHidden(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h := newTestHelper(t, w)
	h.Run(w.SetValue(strItems("a"), WithShowAddButton(false)))
	assert.False(t, w.IsAddButtonVisible())
	assert.Nil(t, w.StartAdd())
	assert.True(t, w.EditKey().IsNone())
}

func TestListOptionsPersistAcrossSetValue(t *testing.T) {
	w := NewListSettingWidget(testConfig())
	h := newTestHelper(t, w)
	suggest := func(existing []string, idx int) (state.Value, bool) { return nil, false }
	h.Run(w.SetValue(strItems("a"), WithShowAddButton(false), WithReadOnly(false), WithArraySuggester(suggest)))

	h.Run(w.SetValue(strItems("a", "b")))
	assert.False(t, w.IsAddButtonVisible(), "add button policy kept")
	assert.NotNil(t, w.suggester)
	assert.True(t, w.DragStart(0))
	w.DragEnd()

	h.Run(w.SetValue(strItems("a", "b"), WithShowAddButton(true), WithReadOnly(true)))
	h.Run(w.SetValue(strItems("a")))
	assert.False(t, w.IsAddButtonVisible(), "still read-only")
	assert.False(t, w.DragStart(0))
}
