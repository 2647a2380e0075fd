// Package collection implements the editable collection widgets of the
// settings editor: scalar lists, include/exclude pattern lists, object
// dropdown editors and boolean object checkboxes.
//
// Every widget shares one controller. It owns a state.ListModel, renders
// rows in display or edit mode, translates keys and pointer input into
// model transitions, and publishes confirmed edits as state.ChangeEvent
// values. Widgets never apply an edit themselves; the host folds the event
// into the setting and pushes the new snapshot back through SetValue.
package collection

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"settings-tui/internal/tui/state"
)

var (
	ErrIndexOutOfRange = errors.New("row index out of range")
	ErrReadOnly        = errors.New("collection is read-only")
)

type editResult int

const (
	editContinue editResult = iota
	editCommit
	editCancel
)

// rowEditor is the form shown in place of a row while it is edited.
type rowEditor[T any] interface {
	Focus() tea.Cmd
	Update(tea.Msg) (editResult, tea.Cmd)
	Value() T
	View(width int) string
	SetError(msg string)
}

// renderer is implemented by each widget flavour.
type renderer[T any] interface {
	isItemNew(item T) bool
	isAddButtonVisible() bool
	isReadOnly() bool
	labels() Labels
	actionsForItem(item T, idx int) []Action
	header(width int) string
	renderItem(it state.RenderItem[T], idx, width int) string
	// renderEdit returns nil when the flavour has no edit form.
	renderEdit(item T, idx int) rowEditor[T]
	tooltip(item T) (label, hover string)
	handleKey(msg tea.KeyMsg) (bool, tea.Cmd)
	onRender(rows []state.RenderItem[T])
}

// dragger is implemented by flavours that support reordering.
type dragger interface {
	Dragging() bool
	DragStart(idx int) bool
	DragOver(idx int) bool
	Drop(idx int)
	DragEnd()
}

// activator is implemented by flavours whose rows react to a single press.
type activator interface {
	activate(idx int) tea.Cmd
}

// PointerAction is the phase of a pointer gesture.
type PointerAction int

const (
	PointerPress PointerAction = iota
	PointerMotion
	PointerRelease
)

// PointerMsg is a pointer event addressed to a line of the widget's last
// View output, counted from zero.
type PointerMsg struct {
	Line   int
	Action PointerAction
}

type focusMsg struct {
	id  string
	gen int
}

const doubleClickInterval = 400 * time.Millisecond

const (
	targetNone = -1
	targetAdd  = -2
)

type base[T any] struct {
	id      string
	r       renderer[T]
	model   *state.ListModel[T]
	changes Emitter[state.ChangeEvent[T]]

	toolkit Toolkit
	hover   HoverService
	keys    KeyMap
	now     func() time.Time
	width   int

	settingKey string
	validator  func(T) string

	gen       int
	rows      []state.RenderItem[T]
	editor    rowEditor[T]
	editIdx   int
	rowScope  disposables
	rowLabels []string
	rowHovers []string
	rowErrors map[int]string

	lineTargets  []int
	lastClick    time.Time
	lastClickRow int
	pressRow     int
}

func newBase[T any](r renderer[T], empty T, cfg Config) *base[T] {
	cfg = cfg.withDefaults()
	return &base[T]{
		id:           uuid.NewString(),
		r:            r,
		model:        state.NewListModel(empty),
		toolkit:      cfg.Toolkit,
		hover:        cfg.Hover,
		keys:         cfg.Keys,
		now:          cfg.Now,
		width:        cfg.Width,
		editIdx:      -1,
		rowErrors:    map[int]string{},
		lastClickRow: -1,
		pressRow:     -1,
	}
}

// ID identifies the widget instance; hover targets are prefixed with it.
func (b *base[T]) ID() string { return b.id }

// OnDidChangeList subscribes to confirmed edits.
func (b *base[T]) OnDidChangeList(fn func(state.ChangeEvent[T])) (unsubscribe func()) {
	return b.changes.Subscribe(fn)
}

func (b *base[T]) setValue(items []T, o options) tea.Cmd {
	preserve := b.editor != nil
	if o.settingKey != nil && *o.settingKey != b.settingKey {
		b.settingKey = *o.settingKey
		b.model.SetEditKey(state.EditNone)
		b.model.Select(-1)
		preserve = false
	}
	if fn, ok := o.validator.(func(T) string); ok {
		b.validator = fn
	}
	b.model.SetValue(items)
	if sel, ok := b.model.Selected(); ok && sel >= len(items) {
		b.model.Select(len(items) - 1)
	}
	if idx, ok := b.model.EditKey().Index(); ok && idx >= len(items) {
		b.model.SetEditKey(state.EditNone)
	}
	return b.renderList(preserve)
}

// renderList rebuilds the row views from the model. Resources tied to the
// previous rows are released first. With preserve set, an open editor for
// the same edit row survives the rebuild.
func (b *base[T]) renderList(preserve bool) tea.Cmd {
	b.gen++
	b.rowScope.clear()
	prev := b.editor
	b.editor, b.editIdx = nil, -1
	b.rows = b.model.Items()
	b.rowLabels = make([]string, len(b.rows))
	b.rowHovers = make([]string, len(b.rows))
	b.rowErrors = map[int]string{}

	for i, it := range b.rows {
		label, hover := b.r.tooltip(it.Item)
		b.rowLabels[i] = label
		if it.Editing {
			b.editIdx = i
			continue
		}
		b.rowHovers[i] = hover
		b.rowScope.add(b.hover.SetupDelayedHover(b.RowTarget(i), hover))
		if b.validator != nil {
			if msg := b.validator(it.Item); msg != "" {
				b.rowErrors[i] = msg
			}
		}
	}
	b.r.onRender(b.rows)

	if b.editIdx < 0 {
		return nil
	}
	if preserve && prev != nil {
		b.editor = prev
		return b.deferFocus()
	}
	b.editor = b.r.renderEdit(b.rows[b.editIdx].Item, b.editIdx)
	if b.editor == nil {
		b.model.SetEditKey(state.EditNone)
		b.rows = b.model.Items()
		b.editIdx = -1
		return nil
	}
	return b.deferFocus()
}

// deferFocus focuses the editor on the next update, after the rebuilt rows
// have been laid out. A later rebuild makes the pending focus stale.
func (b *base[T]) deferFocus() tea.Cmd {
	id, gen := b.id, b.gen
	return func() tea.Msg { return focusMsg{id: id, gen: gen} }
}

func (b *base[T]) fire(ev state.ChangeEvent[T]) {
	b.changes.Fire(ev)
}

// handleItemChange validates a committed row and publishes it. The edit
// cursor is cleared before listeners run.
func (b *base[T]) handleItemChange(original, changed T, idx int) tea.Cmd {
	if b.validator != nil {
		if msg := b.validator(changed); msg != "" {
			if b.editor != nil && idx == b.editIdx {
				b.editor.SetError(msg)
			} else {
				b.rowErrors[idx] = msg
			}
			return nil
		}
	}
	creating := b.model.EditKey().IsCreate()
	b.model.SetEditKey(state.EditNone)
	if creating {
		b.fire(state.AddEvent(changed, idx))
	} else {
		b.fire(state.ChangeItemEvent(original, changed, idx))
	}
	return b.renderList(false)
}

func (b *base[T]) commitEdit() tea.Cmd {
	if b.editor == nil || b.editIdx < 0 {
		return nil
	}
	return b.handleItemChange(b.rows[b.editIdx].Item, b.editor.Value(), b.editIdx)
}

// EditSetting puts the existing row at idx into edit mode.
func (b *base[T]) EditSetting(idx int) (tea.Cmd, error) {
	if b.r.isReadOnly() {
		return nil, ErrReadOnly
	}
	if idx < 0 || idx >= b.model.Len() {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, idx)
	}
	b.model.SetEditKey(state.EditIndex(idx))
	b.model.Select(idx)
	return b.renderList(false), nil
}

// StartAdd opens the synthetic create row.
func (b *base[T]) StartAdd() tea.Cmd {
	if !b.IsAddButtonVisible() {
		return nil
	}
	b.model.SetEditKey(state.EditCreate)
	return b.renderList(false)
}

// CancelEdit leaves edit mode without publishing anything.
func (b *base[T]) CancelEdit() {
	if b.model.EditKey().IsNone() && b.editor == nil {
		return
	}
	b.model.SetEditKey(state.EditNone)
	b.renderList(false)
}

// SelectRow moves the selection to the existing row at idx.
func (b *base[T]) SelectRow(idx int) error {
	if idx < 0 || idx >= b.model.Len() {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, idx)
	}
	b.model.Select(idx)
	b.refreshFlags()
	return nil
}

func (b *base[T]) SelectNextRow() {
	if b.model.Len() == 0 {
		return
	}
	b.model.SelectNext()
	b.refreshFlags()
}

func (b *base[T]) SelectPreviousRow() {
	if b.model.Len() == 0 {
		return
	}
	b.model.SelectPrevious()
	b.refreshFlags()
}

// refreshFlags recomputes the row flags without rebuilding editors.
func (b *base[T]) refreshFlags() {
	b.rows = b.model.Items()
}

// OnListClick selects the clicked row.
func (b *base[T]) OnListClick(idx int) {
	if sel, ok := b.model.Selected(); ok && sel == idx {
		return
	}
	_ = b.SelectRow(idx)
}

// OnListDoubleClick starts editing the clicked row.
func (b *base[T]) OnListDoubleClick(idx int) tea.Cmd {
	if b.r.isReadOnly() || idx < 0 || idx >= b.model.Len() {
		return nil
	}
	cmd, _ := b.EditSetting(idx)
	return cmd
}

// IsAddButtonVisible reports whether the add affordance is offered. It is
// hidden while a new row is being edited.
func (b *base[T]) IsAddButtonVisible() bool {
	if b.r.isReadOnly() || !b.r.isAddButtonVisible() {
		return false
	}
	for _, it := range b.rows {
		if it.Editing && b.r.isItemNew(it.Item) {
			return false
		}
	}
	return true
}

func (b *base[T]) Items() []state.RenderItem[T] { return b.model.Items() }
func (b *base[T]) Data() []T                    { return b.model.Data() }
func (b *base[T]) Len() int                     { return b.model.Len() }
func (b *base[T]) Editing() bool                { return b.editor != nil }
func (b *base[T]) EditKey() state.EditKey       { return b.model.EditKey() }
func (b *base[T]) Selected() (int, bool)        { return b.model.Selected() }
func (b *base[T]) SettingKey() string           { return b.settingKey }
func (b *base[T]) Labels() Labels               { return b.r.labels() }
func (b *base[T]) KeyMap() KeyMap               { return b.keys }
func (b *base[T]) SetWidth(w int)               { b.width = w }

// RowTarget is the hover target name of the row at idx.
func (b *base[T]) RowTarget(idx int) string {
	return fmt.Sprintf("%s/row/%d", b.id, idx)
}

// RowLabel is the accessible label of the row at idx.
func (b *base[T]) RowLabel(idx int) string {
	if idx < 0 || idx >= len(b.rowLabels) {
		return ""
	}
	return b.rowLabels[idx]
}

// RowError is the validation message shown under the row at idx.
func (b *base[T]) RowError(idx int) string {
	return b.rowErrors[idx]
}

// Actions lists the row actions available for the existing row at idx.
func (b *base[T]) Actions(idx int) []Action {
	if b.r.isReadOnly() || idx < 0 || idx >= b.model.Len() {
		return nil
	}
	return b.r.actionsForItem(b.model.Data()[idx], idx)
}

// RunAction performs the row action id on the existing row at idx.
func (b *base[T]) RunAction(id string, idx int) tea.Cmd {
	found := false
	for _, a := range b.Actions(idx) {
		if a.ID == id {
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	item := b.model.Data()[idx]
	switch id {
	case actionEdit:
		cmd, _ := b.EditSetting(idx)
		return cmd
	case actionRemove:
		b.fire(state.RemoveEvent(item, idx))
	case actionReset:
		b.fire(state.ResetEvent(item, idx))
	}
	return nil
}

// Dispose releases row resources and drops every subscriber.
func (b *base[T]) Dispose() {
	b.gen++
	b.rowScope.clear()
	b.changes.Clear()
	b.editor = nil
}

// Update routes a message to the open editor or the row key bindings.
func (b *base[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case focusMsg:
		if msg.id != b.id || msg.gen != b.gen || b.editor == nil {
			return nil
		}
		return b.editor.Focus()
	case PointerMsg:
		return b.handlePointer(msg)
	case tea.KeyMsg:
		return b.handleKey(msg)
	}
	if b.editor != nil {
		_, cmd := b.editor.Update(msg)
		return cmd
	}
	return nil
}

func (b *base[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	if b.editor != nil {
		res, cmd := b.editor.Update(msg)
		switch res {
		case editCommit:
			return tea.Batch(cmd, b.commitEdit())
		case editCancel:
			b.CancelEdit()
		}
		return cmd
	}
	if handled, cmd := b.r.handleKey(msg); handled {
		return cmd
	}
	sel, hasSel := b.model.Selected()
	hasSel = hasSel && sel < b.model.Len()
	switch {
	case key.Matches(msg, b.keys.Up):
		b.SelectPreviousRow()
	case key.Matches(msg, b.keys.Down):
		b.SelectNextRow()
	case key.Matches(msg, b.keys.Add):
		return b.StartAdd()
	case !hasSel:
		return nil
	case key.Matches(msg, b.keys.Edit):
		return b.RunAction(actionEdit, sel)
	case key.Matches(msg, b.keys.Remove):
		return b.RunAction(actionRemove, sel)
	case key.Matches(msg, b.keys.Reset):
		return b.RunAction(actionReset, sel)
	}
	return nil
}

func (b *base[T]) targetAt(line int) int {
	if line < 0 || line >= len(b.lineTargets) {
		return targetNone
	}
	return b.lineTargets[line]
}

func (b *base[T]) handlePointer(msg PointerMsg) tea.Cmd {
	target := b.targetAt(msg.Line)
	d, canDrag := b.r.(dragger)
	switch msg.Action {
	case PointerPress:
		if target == targetAdd {
			return b.StartAdd()
		}
		if target < 0 || target >= b.model.Len() {
			return nil
		}
		if b.editor != nil && target == b.editIdx {
			return nil
		}
		if a, ok := b.r.(activator); ok {
			_ = b.SelectRow(target)
			return a.activate(target)
		}
		now := b.now()
		double := target == b.lastClickRow && now.Sub(b.lastClick) <= doubleClickInterval
		b.lastClick, b.lastClickRow = now, target
		if b.editor == nil {
			b.pressRow = target
		}
		if double {
			b.lastClickRow = -1
			return b.OnListDoubleClick(target)
		}
		b.OnListClick(target)
	case PointerMotion:
		if !canDrag || b.pressRow < 0 || target < 0 {
			return nil
		}
		if !d.Dragging() && target != b.pressRow {
			d.DragStart(b.pressRow)
		}
		if d.Dragging() {
			d.DragOver(target)
		}
	case PointerRelease:
		if canDrag && d.Dragging() {
			if target >= 0 {
				d.Drop(target)
			}
			d.DragEnd()
		}
		b.pressRow = -1
	}
	return nil
}

// View renders the rows, the add button and the selected row's tooltip.
func (b *base[T]) View() string {
	var sb strings.Builder
	b.lineTargets = b.lineTargets[:0]
	emit := func(s string, target int) {
		for _, l := range strings.Split(s, "\n") {
			sb.WriteString(l)
			sb.WriteByte('\n')
			b.lineTargets = append(b.lineTargets, target)
		}
	}
	content := max(b.width-2, 8)
	if h := b.r.header(content); h != "" && len(b.rows) > 0 {
		emit("  "+headerStyle.Render(h), targetNone)
	}
	for i, it := range b.rows {
		if it.Editing && b.editor != nil && i == b.editIdx {
			emit(b.editor.View(b.width), i)
			continue
		}
		actions := ""
		if it.Selected {
			actions = b.actionStrip(i)
		}
		text := b.r.renderItem(it, i, content-lipgloss.Width(actions))
		if it.Selected {
			emit(selectedRowStyle.Render("› "+text)+actions, i)
		} else {
			emit("  "+text, i)
		}
		if msg := b.rowErrors[i]; msg != "" {
			emit(errorStyle.Render("    ✗ "+msg), i)
		}
	}
	if len(b.rows) == 0 {
		emit(mutedStyle.Render("  (empty)"), targetNone)
	}
	if b.IsAddButtonVisible() {
		emit(buttonStyle.Render("  [ + "+b.r.labels().AddButton+" ]"), targetAdd)
	}
	if sel, ok := b.model.Selected(); ok && b.editor == nil && sel < len(b.rowHovers) {
		if h := b.rowHovers[sel]; h != "" {
			emit(mutedStyle.Render("  "+fit(h, content)), targetNone)
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (b *base[T]) actionStrip(idx int) string {
	acts := b.Actions(idx)
	if len(acts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(acts))
	for _, a := range acts {
		parts = append(parts, a.Label+" "+a.Key)
	}
	return mutedStyle.Render("  " + strings.Join(parts, "  "))
}
