package state

import "fmt"

type editKind int

const (
	editNone editKind = iota
	editCreate
	editIndex
)

// EditKey says which row, if any, renders in edit mode: none, the synthetic
// "create" row, or an existing row by index.
type EditKey struct {
	kind  editKind
	index int
}

var (
	EditNone   = EditKey{kind: editNone}
	EditCreate = EditKey{kind: editCreate}
)

// EditIndex returns the key for editing the existing row at idx.
func EditIndex(idx int) EditKey { return EditKey{kind: editIndex, index: idx} }

func (k EditKey) IsNone() bool   { return k.kind == editNone }
func (k EditKey) IsCreate() bool { return k.kind == editCreate }

// Index returns the edited row index when the key targets an existing row.
func (k EditKey) Index() (int, bool) {
	if k.kind != editIndex {
		return 0, false
	}
	return k.index, true
}

func (k EditKey) String() string {
	switch k.kind {
	case editCreate:
		return "create"
	case editIndex:
		return fmt.Sprintf("%d", k.index)
	default:
		return "none"
	}
}

// RenderItem is an item with the flags derived from the model's cursors.
type RenderItem[T any] struct {
	Item     T
	Editing  bool
	Selected bool
}

// ListModel owns the ordered rows of one collection widget together with
// its edit and selection cursors.
type ListModel[T any] struct {
	data     []T
	editKey  EditKey
	selected int // -1 when nothing is selected
	newItem  T
}

// NewListModel returns an empty model; newItem seeds the create row.
func NewListModel[T any](newItem T) *ListModel[T] {
	return &ListModel[T]{selected: -1, newItem: newItem}
}

// SetValue replaces the rows. Cursors are left alone.
func (m *ListModel[T]) SetValue(items []T) {
	m.data = append([]T(nil), items...)
}

// Data returns a copy of the raw rows.
func (m *ListModel[T]) Data() []T {
	return append([]T(nil), m.data...)
}

func (m *ListModel[T]) Len() int { return len(m.data) }

// SetEditKey sets the single row that renders in edit mode.
func (m *ListModel[T]) SetEditKey(key EditKey) {
	m.editKey = key
}

func (m *ListModel[T]) EditKey() EditKey { return m.editKey }

// Select moves the selection cursor; a negative index clears it.
func (m *ListModel[T]) Select(idx int) {
	if idx < 0 {
		idx = -1
	}
	m.selected = idx
}

// Selected returns the selection cursor.
func (m *ListModel[T]) Selected() (int, bool) {
	return m.selected, m.selected >= 0
}

// SelectNext advances the selection, clamping at the last row. Without a
// prior selection it selects the first row.
func (m *ListModel[T]) SelectNext() {
	if m.selected >= 0 {
		m.selected = min(m.selected+1, len(m.data)-1)
		return
	}
	m.selected = 0
}

// SelectPrevious moves the selection back, clamping at the first row.
// Without a prior selection it selects the first row.
func (m *ListModel[T]) SelectPrevious() {
	if m.selected >= 0 {
		m.selected = max(m.selected-1, 0)
		return
	}
	m.selected = 0
}

// Items overlays the edit and selection flags onto the rows. When the edit
// key is "create" a trailing synthetic row built from the empty item is
// appended.
func (m *ListModel[T]) Items() []RenderItem[T] {
	out := make([]RenderItem[T], 0, len(m.data)+1)
	editIdx, editingExisting := m.editKey.Index()
	for i, it := range m.data {
		editing := editingExisting && editIdx == i
		out = append(out, RenderItem[T]{
			Item:     it,
			Editing:  editing,
			Selected: i == m.selected || editing,
		})
	}
	if m.editKey.IsCreate() {
		out = append(out, RenderItem[T]{Item: m.newItem, Editing: true, Selected: true})
	}
	return out
}

// Editing reports whether any row is in edit mode.
func (m *ListModel[T]) Editing() bool {
	for _, it := range m.Items() {
		if it.Editing {
			return true
		}
	}
	return false
}
