package collection

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings a collection widget reacts to. Row bindings
// apply while no row is being edited; Commit, Cancel and the field
// bindings apply inside an edit row.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Edit      key.Binding
	Add       key.Binding
	Remove    key.Binding
	Reset     key.Binding
	Toggle    key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Commit    key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous row")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next row")),
		Edit:      key.NewBinding(key.WithKeys("enter", "e", "f2"), key.WithHelp("enter/e", "edit row")),
		Add:       key.NewBinding(key.WithKeys("a", "+", "insert"), key.WithHelp("a", "add row")),
		Remove:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d/del", "remove row")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset row")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		MoveUp:    key.NewBinding(key.WithKeys("alt+up", "K"), key.WithHelp("alt+↑", "move row up")),
		MoveDown:  key.NewBinding(key.WithKeys("alt+down", "J"), key.WithHelp("alt+↓", "move row down")),
		Commit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Add, k.Remove, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Edit, k.Add, k.Remove, k.Reset, k.Toggle},
		{k.Commit, k.Cancel, k.NextField, k.PrevField},
	}
}
