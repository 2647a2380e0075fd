package state

import "testing"

func newStringModel(values ...string) *ListModel[ListItem] {
	m := NewListModel(ListItem{Value: StringValue{}})
	items := make([]ListItem, 0, len(values))
	for _, v := range values {
		items = append(items, ListItem{Value: StringValue{Data: v}})
	}
	m.SetValue(items)
	return m
}

func editingCount(items []RenderItem[ListItem]) int {
	n := 0
	for _, it := range items {
		if it.Editing {
			n++
		}
	}
	return n
}

func TestItemsOverlayFlags(t *testing.T) {
	m := newStringModel("a", "b", "c")
	m.Select(0)
	m.SetEditKey(EditIndex(2))
	items := m.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if !items[0].Selected || items[0].Editing {
		t.Fatalf("row 0 should be selected only: %+v", items[0])
	}
	if items[1].Selected || items[1].Editing {
		t.Fatalf("row 1 should be plain: %+v", items[1])
	}
	if !items[2].Selected || !items[2].Editing {
		t.Fatalf("editing row must also be selected: %+v", items[2])
	}
}

func TestCreateAppendsSyntheticRow(t *testing.T) {
	m := newStringModel("a")
	m.SetEditKey(EditCreate)
	items := m.Items()
	if len(items) != 2 {
		t.Fatalf("expected synthetic row, got %d items", len(items))
	}
	last := items[1]
	if !last.Editing || !last.Selected || last.Item.Value.Text() != "" {
		t.Fatalf("unexpected create row: %+v", last)
	}
	if m.Len() != 1 {
		t.Fatalf("synthetic row must not be stored")
	}
}

func TestSingleEditingRow(t *testing.T) {
	m := newStringModel("a", "b", "c")
	for _, k := range []EditKey{EditIndex(0), EditCreate, EditIndex(2), EditNone, EditIndex(1)} {
		m.SetEditKey(k)
		if n := editingCount(m.Items()); n > 1 {
			t.Fatalf("edit key %v produced %d editing rows", k, n)
		}
	}
}

func TestSelectNextPreviousClamp(t *testing.T) {
	m := newStringModel("a", "b")
	m.SelectNext()
	if i, ok := m.Selected(); !ok || i != 0 {
		t.Fatalf("first SelectNext should select 0, got %d %v", i, ok)
	}
	m.SelectNext()
	m.SelectNext()
	if i, _ := m.Selected(); i != 1 {
		t.Fatalf("expected clamp at 1, got %d", i)
	}
	m.SelectPrevious()
	m.SelectPrevious()
	if i, _ := m.Selected(); i != 0 {
		t.Fatalf("expected clamp at 0, got %d", i)
	}
	m.Select(-1)
	m.SelectPrevious()
	if i, _ := m.Selected(); i != 0 {
		t.Fatalf("SelectPrevious without selection should select 0, got %d", i)
	}
}

func TestSetValueKeepsCursors(t *testing.T) {
	m := newStringModel("a", "b")
	m.Select(1)
	m.SetEditKey(EditIndex(0))
	m.SetValue([]ListItem{{Value: StringValue{Data: "x"}}, {Value: StringValue{Data: "y"}}})
	if i, _ := m.Selected(); i != 1 {
		t.Fatalf("selection changed by SetValue")
	}
	if i, ok := m.EditKey().Index(); !ok || i != 0 {
		t.Fatalf("edit key changed by SetValue")
	}
}

func TestSameDataAndOptions(t *testing.T) {
	if !SameData(StringValue{Data: "x"}, StringValue{Data: "x"}) {
		t.Fatalf("equal strings should match")
	}
	if SameData(StringValue{Data: "true"}, BoolValue{Data: true}) {
		t.Fatalf("different kinds must not match")
	}
	a := []EnumOption{{Value: "1"}, {Value: "2"}}
	b := []EnumOption{{Value: "2"}, {Value: "1"}, {Value: "3"}}
	if !SameOptions(a, b) {
		t.Fatalf("a is covered by b")
	}
	if SameOptions(b, a) {
		t.Fatalf("b has an option a lacks")
	}
}

func TestWithDataKeepsVariant(t *testing.T) {
	v := WithData(EnumValue{Data: "a", Options: []EnumOption{{Value: "a"}, {Value: "b"}}}, "b")
	ev, ok := v.(EnumValue)
	if !ok || ev.Data != "b" || len(ev.Options) != 2 {
		t.Fatalf("unexpected %#v", v)
	}
	if b := WithData(BoolValue{}, true); b != (BoolValue{Data: true}) {
		t.Fatalf("unexpected %#v", b)
	}
	if s := WithData(StringValue{}, 3.0); s != (StringValue{Data: "3"}) {
		t.Fatalf("unexpected %#v", s)
	}
}
