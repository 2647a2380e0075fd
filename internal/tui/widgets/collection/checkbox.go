package collection

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"settings-tui/internal/tui/state"
)

// ObjectSettingCheckboxWidget shows an object of boolean properties as a
// column of checkboxes. Toggling a row publishes a Change right away; rows
// cannot be added or removed.
type ObjectSettingCheckboxWidget struct {
	*base[state.ObjectItem]

	editable bool
	toggles  []Toggle
}

func NewObjectSettingCheckboxWidget(cfg Config) *ObjectSettingCheckboxWidget {
	w := &ObjectSettingCheckboxWidget{editable: true}
	empty := state.ObjectItem{Key: state.StringValue{}, Value: state.BoolValue{}}
	w.base = newBase[state.ObjectItem](w, empty, cfg)
	return w
}

func (w *ObjectSettingCheckboxWidget) SetValue(items []state.ObjectItem, opts ...Option) tea.Cmd {
	o := collect(opts)
	if o.readOnly != nil {
		w.editable = !*o.readOnly
	}
	return w.setValue(items, o)
}

// Rows come from the schema's properties, so none is ever new.
func (w *ObjectSettingCheckboxWidget) isItemNew(state.ObjectItem) bool { return false }

func (w *ObjectSettingCheckboxWidget) isAddButtonVisible() bool { return false }
func (w *ObjectSettingCheckboxWidget) isReadOnly() bool         { return !w.editable }
func (w *ObjectSettingCheckboxWidget) labels() Labels           { return objectLabels }
func (w *ObjectSettingCheckboxWidget) header(int) string        { return "" }

func (w *ObjectSettingCheckboxWidget) actionsForItem(item state.ObjectItem, _ int) []Action {
	if !w.editable || !item.Resetable {
		return nil
	}
	return []Action{resetAction(objectLabels)}
}

func (w *ObjectSettingCheckboxWidget) onRender(rows []state.RenderItem[state.ObjectItem]) {
	w.toggles = make([]Toggle, len(rows))
	for i, r := range rows {
		checked, _ := state.Data(r.Item.Value).(bool)
		w.toggles[i] = w.toolkit.NewToggle(checked, valueText(r.Item.Key))
	}
}

func (w *ObjectSettingCheckboxWidget) renderItem(it state.RenderItem[state.ObjectItem], idx, width int) string {
	box := "[ ]"
	if idx < len(w.toggles) {
		box = w.toggles[idx].View()
	}
	text := it.Item.KeyDescription
	if text == "" {
		text = valueText(it.Item.Key)
	} else {
		text = fmt.Sprintf("%s (%s)", text, valueText(it.Item.Key))
	}
	return box + " " + fit(text, width-4)
}

func (w *ObjectSettingCheckboxWidget) tooltip(item state.ObjectItem) (string, string) {
	label := objectRowLabel(item)
	if item.KeyDescription != "" {
		return label, item.KeyDescription
	}
	return label, label
}

// renderEdit returns nil: rows are always shown as checkboxes.
func (w *ObjectSettingCheckboxWidget) renderEdit(state.ObjectItem, int) rowEditor[state.ObjectItem] {
	return nil
}

func (w *ObjectSettingCheckboxWidget) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !key.Matches(msg, w.keys.Toggle) {
		return false, nil
	}
	sel, ok := w.model.Selected()
	if !ok || sel >= w.model.Len() {
		return true, nil
	}
	return true, w.Toggle(sel)
}

func (w *ObjectSettingCheckboxWidget) activate(idx int) tea.Cmd {
	return w.Toggle(idx)
}

// Toggle publishes a Change flipping the row at idx. The checkbox follows
// once the host pushes the new snapshot.
func (w *ObjectSettingCheckboxWidget) Toggle(idx int) tea.Cmd {
	if !w.editable || idx < 0 || idx >= w.model.Len() {
		return nil
	}
	item := w.model.Data()[idx]
	checked, _ := state.Data(item.Value).(bool)
	changed := item
	changed.Value = state.BoolValue{Data: !checked}
	return w.handleItemChange(item, changed, idx)
}
