package collection

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"settings-tui/internal/tui/state"
)

var boolOptions = []state.EnumOption{{Value: "true"}, {Value: "false"}}

// ObjectSettingDropdownWidget edits the key/value pairs of an object
// setting. Keys and values are text fields or select boxes depending on
// their kind, and suggesters may fill in a key for a new row and a value
// for a typed key.
type ObjectSettingDropdownWidget struct {
	*base[state.ObjectItem]

	editable       bool
	showAddButton  bool
	keySuggester   KeySuggester
	valueSuggester ValueSuggester
}

func NewObjectSettingDropdownWidget(cfg Config) *ObjectSettingDropdownWidget {
	w := &ObjectSettingDropdownWidget{editable: true, showAddButton: true}
	empty := state.ObjectItem{
		Key:       state.StringValue{},
		Value:     state.StringValue{},
		Removable: true,
	}
	w.base = newBase[state.ObjectItem](w, empty, cfg)
	return w
}

// SetValue replaces the rows.
func (w *ObjectSettingDropdownWidget) SetValue(items []state.ObjectItem, opts ...Option) tea.Cmd {
	o := collect(opts)
	if o.showAddButton != nil {
		w.showAddButton = *o.showAddButton
	}
	if o.readOnly != nil {
		w.editable = !*o.readOnly
	}
	if o.keySuggester != nil {
		w.keySuggester = o.keySuggester
	}
	if o.valueSuggester != nil {
		w.valueSuggester = o.valueSuggester
	}
	return w.setValue(items, o)
}

func (w *ObjectSettingDropdownWidget) isItemNew(item state.ObjectItem) bool {
	return state.IsBlank(item.Key) && state.IsBlank(item.Value)
}

func (w *ObjectSettingDropdownWidget) isAddButtonVisible() bool { return w.showAddButton }
func (w *ObjectSettingDropdownWidget) isReadOnly() bool         { return !w.editable }
func (w *ObjectSettingDropdownWidget) labels() Labels           { return objectLabels }

func (w *ObjectSettingDropdownWidget) actionsForItem(item state.ObjectItem, _ int) []Action {
	if !w.editable {
		return nil
	}
	l := objectLabels
	acts := []Action{editAction(l)}
	if item.Resetable {
		acts = append(acts, resetAction(l))
	}
	if item.Removable {
		acts = append(acts, removeAction(l))
	}
	return acts
}

func keyColumn(width int) int { return max(width*2/5, 6) }

func (w *ObjectSettingDropdownWidget) header(width int) string {
	return pad(objectLabels.KeyHeader, keyColumn(width)) + " " + objectLabels.ValueHeader
}

func (w *ObjectSettingDropdownWidget) renderItem(it state.RenderItem[state.ObjectItem], _ int, width int) string {
	kw := keyColumn(width)
	return pad(valueText(it.Item.Key), kw) + " " + fit(valueText(it.Item.Value), width-kw-1)
}

func (w *ObjectSettingDropdownWidget) tooltip(item state.ObjectItem) (string, string) {
	label := objectRowLabel(item)
	hover := item.KeyDescription
	if hover == "" {
		hover = optionDescription(item.Key)
	}
	if hover == "" {
		hover = label
	}
	return label, hover
}

func objectRowLabel(item state.ObjectItem) string {
	if item.Source != "" {
		return fmt.Sprintf("The property `%s` is set to `%s` by `%s`.", valueText(item.Key), valueText(item.Value), item.Source)
	}
	return fmt.Sprintf("The property `%s` is set to `%s`.", valueText(item.Key), valueText(item.Value))
}

func optionDescription(v state.Value) string {
	e, ok := v.(state.EnumValue)
	if !ok {
		return ""
	}
	if i := optionIndex(e.Options, e.Data); i >= 0 {
		return e.Options[i].Description
	}
	return ""
}

func (w *ObjectSettingDropdownWidget) handleKey(tea.KeyMsg) (bool, tea.Cmd) { return false, nil }
func (w *ObjectSettingDropdownWidget) onRender([]state.RenderItem[state.ObjectItem]) {}

func (w *ObjectSettingDropdownWidget) renderEdit(item state.ObjectItem, _ int) rowEditor[state.ObjectItem] {
	e := &objectEditor{w: w, original: item, changed: item}
	if w.showAddButton && w.isItemNew(item) && w.keySuggester != nil {
		if k, ok := w.keySuggester(w.existingKeys()); ok {
			e.changed.Key = k
			if w.valueSuggester != nil {
				if v, ok := w.valueSuggester(k.Text()); ok {
					e.changed.Value = v
				}
			}
		}
	}
	if w.showAddButton {
		e.keyField = e.newField(e.changed.Key, "Key", e.onKeyChange)
	}
	e.renderValue()
	return e
}

func (w *ObjectSettingDropdownWidget) existingKeys() []string {
	keys := make([]string, 0, len(w.rows))
	for _, r := range w.rows {
		keys = append(keys, valueText(r.Item.Key))
	}
	return keys
}

// objectEditor edits one key/value row. The value field is rebuilt
// whenever a key change makes a suggested value replace the current one.
type objectEditor struct {
	w          *ObjectSettingDropdownWidget
	original   state.ObjectItem
	changed    state.ObjectItem
	keyField   focusable
	valueField focusable
	focus      int
	err        string
}

func (e *objectEditor) newField(v state.Value, placeholder string, onChange func(state.Value)) focusable {
	tk := e.w.toolkit
	switch v := v.(type) {
	case state.EnumValue:
		opts := v.Options
		idx := optionIndex(opts, v.Data)
		sel := tk.NewSelectBox(opts, idx)
		sel.OnDidSelect(func(_ int, value string) {
			onChange(state.EnumValue{Data: value, Options: opts})
		})
		// data outside the options falls back to the first option
		if idx < 0 && len(opts) > 0 {
			sel.Select(0)
		}
		return sel
	case state.BoolValue:
		sel := tk.NewSelectBox(boolOptions, optionIndex(boolOptions, v.Text()))
		sel.OnDidSelect(func(_ int, value string) {
			onChange(state.BoolValue{Data: value == "true"})
		})
		return sel
	default:
		in := tk.NewInputBox(placeholder)
		in.SetValue(valueText(v))
		in.OnDidChange(func(s string) { onChange(state.StringValue{Data: s}) })
		return in
	}
}

func (e *objectEditor) onKeyChange(k state.Value) {
	e.changed.Key = k
	var suggested state.Value
	if e.w.valueSuggester != nil {
		if v, ok := e.w.valueSuggester(k.Text()); ok {
			suggested = v
		}
	}
	if suggested == nil {
		suggested = e.original.Value
	}
	if ShouldUseSuggestion(e.original.Value, e.changed.Value, suggested) {
		e.changed.Value = suggested
		e.renderValue()
	}
}

func (e *objectEditor) renderValue() {
	e.valueField = e.newField(e.changed.Value, objectLabels.InputPlaceholder, func(v state.Value) {
		e.changed.Value = v
	})
}

func (e *objectEditor) fields() []focusable {
	if e.keyField != nil {
		return []focusable{e.keyField, e.valueField}
	}
	return []focusable{e.valueField}
}

func (e *objectEditor) okEnabled() bool {
	return e.changed.Key != nil && e.changed.Key.Text() != ""
}

func (e *objectEditor) Focus() tea.Cmd {
	e.focus = 0
	return e.fields()[0].Focus()
}

func (e *objectEditor) SetError(msg string) { e.err = msg }

func (e *objectEditor) moveFocus(delta int) tea.Cmd {
	fs := e.fields()
	ring := len(fs) + 2
	if e.focus < len(fs) {
		fs[e.focus].Blur()
	}
	e.focus = (e.focus + delta + ring) % ring
	if e.focus < len(fs) {
		return fs[e.focus].Focus()
	}
	return nil
}

func (e *objectEditor) commit() (editResult, tea.Cmd) {
	if !e.okEnabled() {
		return editContinue, nil
	}
	return editCommit, nil
}

func (e *objectEditor) Update(msg tea.Msg) (editResult, tea.Cmd) {
	fs := e.fields()
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if e.focus < len(fs) {
			return editContinue, fs[e.focus].Update(msg)
		}
		return editContinue, nil
	}
	keys := e.w.keys
	switch {
	case key.Matches(km, keys.Cancel):
		return editCancel, nil
	case key.Matches(km, keys.NextField):
		return editContinue, e.moveFocus(1)
	case key.Matches(km, keys.PrevField):
		return editContinue, e.moveFocus(-1)
	case key.Matches(km, keys.Commit):
		if e.focus == len(fs)+1 {
			return editCancel, nil
		}
		return e.commit()
	}
	if e.focus >= len(fs) {
		if km.String() == " " {
			if e.focus == len(fs) {
				return e.commit()
			}
			return editCancel, nil
		}
		return editContinue, nil
	}
	e.err = ""
	return editContinue, fs[e.focus].Update(km)
}

func (e *objectEditor) Value() state.ObjectItem { return e.changed }

func (e *objectEditor) View(width int) string {
	fs := e.fields()
	kw := keyColumn(max(width-2, 8))
	var parts []string
	if e.keyField != nil {
		parts = append(parts, e.keyField.View())
	} else {
		parts = append(parts, pad(valueText(e.changed.Key), kw))
	}
	parts = append(parts, e.valueField.View())
	ok := button(objectLabels.OK, e.focus == len(fs))
	if !e.okEnabled() {
		ok = mutedStyle.Render("[" + objectLabels.OK + "]")
	}
	parts = append(parts, ok, button(objectLabels.Cancel, e.focus == len(fs)+1))
	out := "› " + strings.Join(parts, " ")
	if e.focus < len(fs) {
		if sel, ok := fs[e.focus].(SelectBox); ok {
			if d := selectDescription(sel); d != "" {
				out += "\n    " + mutedStyle.Render(fit(d, width-4))
			}
		}
	}
	if e.err != "" {
		out += "\n    " + errorStyle.Render("✗ "+e.err)
	}
	return out
}
