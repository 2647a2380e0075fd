package collection

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"settings-tui/internal/tui/state"
)

type listFlavor int

const (
	flavorList listFlavor = iota
	flavorExclude
	flavorInclude
)

// ListSettingWidget edits an ordered list of scalar values. Rows can be
// reordered by dragging while nothing is being edited.
type ListSettingWidget struct {
	*base[state.ListItem]

	flavor        listFlavor
	editable      bool
	showAddButton bool
	suggester     ArraySuggester
	drag          *dragDetails
}

type dragDetails struct {
	item  state.ListItem
	index int
	over  int
	rows  int
}

func NewListSettingWidget(cfg Config) *ListSettingWidget {
	return newListWidget(cfg, flavorList)
}

func newListWidget(cfg Config, flavor listFlavor) *ListSettingWidget {
	w := &ListSettingWidget{flavor: flavor, editable: true, showAddButton: true}
	w.base = newBase[state.ListItem](w, state.ListItem{Value: state.StringValue{}}, cfg)
	return w
}

// SetValue replaces the rows. Read-only lists offer no add button, edit or
// remove actions, or drag.
func (w *ListSettingWidget) SetValue(items []state.ListItem, opts ...Option) tea.Cmd {
	o := collect(opts)
	if o.readOnly != nil {
		w.editable = !*o.readOnly
	}
	if o.showAddButton != nil {
		w.showAddButton = *o.showAddButton
	}
	if o.arraySuggester != nil {
		w.suggester = o.arraySuggester
	}
	w.drag = nil
	return w.setValue(items, o)
}

func (w *ListSettingWidget) isItemNew(item state.ListItem) bool {
	return item.Value == nil || state.IsBlank(item.Value)
}

func (w *ListSettingWidget) isAddButtonVisible() bool { return w.showAddButton }
func (w *ListSettingWidget) isReadOnly() bool         { return !w.editable }

func (w *ListSettingWidget) labels() Labels {
	switch w.flavor {
	case flavorExclude:
		return excludeLabels
	case flavorInclude:
		return includeLabels
	default:
		return listLabels
	}
}

func (w *ListSettingWidget) actionsForItem(state.ListItem, int) []Action {
	if !w.editable {
		return nil
	}
	l := w.labels()
	return []Action{editAction(l), removeAction(l)}
}

func (w *ListSettingWidget) header(int) string { return "" }

func (w *ListSettingWidget) renderItem(it state.RenderItem[state.ListItem], idx, width int) string {
	text := valueText(it.Item.Value)
	if it.Item.Sibling != "" {
		text += mutedStyle.Render("  when: " + it.Item.Sibling)
	}
	text = fit(text, width)
	if w.drag != nil && w.drag.over == idx && w.drag.index != idx {
		return dragTargetStyle.Render(text)
	}
	return text
}

func (w *ListSettingWidget) tooltip(item state.ListItem) (string, string) {
	v := valueText(item.Value)
	var label string
	switch w.flavor {
	case flavorExclude:
		if item.Sibling != "" {
			label = fmt.Sprintf("Exclude files matching `%s`, only when a file matching `%s` is present", v, item.Sibling)
		} else {
			label = fmt.Sprintf("Exclude files matching `%s`", v)
		}
	case flavorInclude:
		if item.Sibling != "" {
			label = fmt.Sprintf("Include files matching `%s`, only when a file matching `%s` is present", v, item.Sibling)
		} else {
			label = fmt.Sprintf("Include files matching `%s`", v)
		}
	default:
		label = fmt.Sprintf("List item `%s`", v)
	}
	label += sourceSuffix(item.Source)
	return label, label
}

func (w *ListSettingWidget) onRender([]state.RenderItem[state.ListItem]) {}

func (w *ListSettingWidget) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	sel, ok := w.model.Selected()
	if !ok || sel >= w.model.Len() {
		return false, nil
	}
	switch {
	case key.Matches(msg, w.keys.MoveUp):
		w.moveSelected(sel, sel-1)
		return true, nil
	case key.Matches(msg, w.keys.MoveDown):
		w.moveSelected(sel, sel+1)
		return true, nil
	}
	return false, nil
}

// moveSelected is the keyboard form of a drag from one row onto another.
func (w *ListSettingWidget) moveSelected(from, to int) {
	if to < 0 || to >= w.model.Len() || !w.DragStart(from) {
		return
	}
	w.DragOver(to)
	w.Drop(to)
	w.DragEnd()
	w.model.Select(to)
	w.refreshFlags()
}

func (w *ListSettingWidget) draggable() bool {
	return w.flavor == flavorList && w.editable && !w.model.Editing()
}

func (w *ListSettingWidget) Dragging() bool { return w.drag != nil }

// DragStart picks up the row at idx. It fails while any row is edited.
func (w *ListSettingWidget) DragStart(idx int) bool {
	if !w.draggable() || idx < 0 || idx >= w.model.Len() {
		return false
	}
	w.drag = &dragDetails{
		item:  w.model.Data()[idx],
		index: idx,
		over:  idx,
		rows:  w.model.Len(),
	}
	return true
}

// DragOver marks the row at idx as the drop target.
func (w *ListSettingWidget) DragOver(idx int) bool {
	if w.drag == nil || idx < 0 || idx >= w.drag.rows {
		return false
	}
	w.drag.over = idx
	return true
}

// Drop publishes a Move when the dragged row lands on a different row.
// The drag state is cleared either way.
func (w *ListSettingWidget) Drop(idx int) {
	d := w.drag
	w.drag = nil
	if d == nil || idx < 0 || idx >= d.rows || idx >= w.model.Len() || idx == d.index {
		return
	}
	w.fire(state.MoveEvent(d.item, d.index, w.model.Data()[idx], idx))
}

func (w *ListSettingWidget) DragEnd() { w.drag = nil }

func (w *ListSettingWidget) renderEdit(item state.ListItem, idx int) rowEditor[state.ListItem] {
	creating := w.model.EditKey().IsCreate()
	if w.suggester != nil {
		existing := make([]string, 0, len(w.rows))
		for _, r := range w.rows {
			existing = append(existing, valueText(r.Item.Value))
		}
		if v, ok := w.suggester(existing, idx); ok {
			if e, ok := v.(state.EnumValue); ok {
				item.Value = state.EnumValue{Data: valueText(item.Value), Options: e.Options}
			}
		}
	}
	l := w.labels()
	e := &listEditor{keys: w.keys, labels: l, original: item}
	switch v := item.Value.(type) {
	case state.EnumValue:
		display := v.Data
		if len(v.Options) > 0 && (creating || w.isItemNew(item)) {
			display = v.Options[0].Value
		}
		e.enum = v
		e.enum.Data = display
		e.sel = w.toolkit.NewSelectBox(v.Options, optionIndex(v.Options, display))
		e.sel.OnDidSelect(func(_ int, value string) { e.enum.Data = value })
		e.fields = append(e.fields, e.sel)
	default:
		e.input = w.toolkit.NewInputBox(l.InputPlaceholder)
		e.input.SetValue(valueText(item.Value))
		e.fields = append(e.fields, e.input)
	}
	if w.flavor != flavorList {
		e.sibling = w.toolkit.NewInputBox(l.SiblingPlaceholder)
		e.sibling.SetValue(item.Sibling)
		e.fields = append(e.fields, e.sibling)
	}
	return e
}

// focusable is the part of a field the edit row drives.
type focusable interface {
	Focus() tea.Cmd
	Blur()
	Update(tea.Msg) tea.Cmd
	View() string
}

// listEditor edits one list row: a value field, an optional sibling field
// and OK/Cancel buttons, cycled with tab.
type listEditor struct {
	keys     KeyMap
	labels   Labels
	original state.ListItem
	input    InputBox
	sel      SelectBox
	enum     state.EnumValue
	sibling  InputBox
	fields   []focusable
	focus    int
	err      string
}

func (e *listEditor) Focus() tea.Cmd {
	e.focus = 0
	return e.fields[0].Focus()
}

func (e *listEditor) SetError(msg string) { e.err = msg }

// buttons follow the fields in the focus ring
func (e *listEditor) ring() int { return len(e.fields) + 2 }

func (e *listEditor) moveFocus(delta int) tea.Cmd {
	if e.focus < len(e.fields) {
		e.fields[e.focus].Blur()
	}
	e.focus = (e.focus + delta + e.ring()) % e.ring()
	if e.focus < len(e.fields) {
		return e.fields[e.focus].Focus()
	}
	return nil
}

func (e *listEditor) Update(msg tea.Msg) (editResult, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if e.focus < len(e.fields) {
			return editContinue, e.fields[e.focus].Update(msg)
		}
		return editContinue, nil
	}
	switch {
	case key.Matches(km, e.keys.Cancel):
		return editCancel, nil
	case key.Matches(km, e.keys.NextField):
		return editContinue, e.moveFocus(1)
	case key.Matches(km, e.keys.PrevField):
		return editContinue, e.moveFocus(-1)
	case key.Matches(km, e.keys.Commit):
		if e.focus == len(e.fields)+1 {
			return editCancel, nil
		}
		return editCommit, nil
	}
	if e.focus >= len(e.fields) {
		if km.String() == " " {
			if e.focus == len(e.fields) {
				return editCommit, nil
			}
			return editCancel, nil
		}
		return editContinue, nil
	}
	e.err = ""
	return editContinue, e.fields[e.focus].Update(km)
}

func (e *listEditor) Value() state.ListItem {
	item := e.original
	if e.sel != nil {
		item.Value = e.enum
	} else {
		item.Value = state.StringValue{Data: e.input.Value()}
	}
	item.Sibling = ""
	if e.sibling != nil {
		item.Sibling = strings.TrimSpace(e.sibling.Value())
	}
	return item
}

func (e *listEditor) View(width int) string {
	parts := make([]string, 0, len(e.fields)+2)
	for _, f := range e.fields {
		parts = append(parts, f.View())
	}
	parts = append(parts,
		button(e.labels.OK, e.focus == len(e.fields)),
		button(e.labels.Cancel, e.focus == len(e.fields)+1))
	out := "› " + strings.Join(parts, " ")
	if d := selectDescription(e.sel); d != "" {
		out += "\n    " + mutedStyle.Render(fit(d, width-4))
	}
	if e.err != "" {
		out += "\n    " + errorStyle.Render("✗ "+e.err)
	}
	return out
}

func button(label string, focused bool) string {
	s := "[" + label + "]"
	if focused {
		return focusedFieldStyle.Render(s)
	}
	return buttonStyle.Render(s)
}

func selectDescription(s SelectBox) string {
	if sb, ok := s.(*selectBox); ok && sb.focused {
		return sb.description()
	}
	return ""
}

func optionIndex(opts []state.EnumOption, value string) int {
	for i, o := range opts {
		if o.Value == value {
			return i
		}
	}
	return -1
}

func valueText(v state.Value) string {
	if v == nil {
		return ""
	}
	return v.Text()
}
