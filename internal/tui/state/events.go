package state

// EventType discriminates ChangeEvent variants.
type EventType int

const (
	EventAdd EventType = iota
	EventChange
	EventRemove
	EventReset
	EventMove
)

func (t EventType) String() string {
	switch t {
	case EventAdd:
		return "add"
	case EventChange:
		return "change"
	case EventRemove:
		return "remove"
	case EventReset:
		return "reset"
	case EventMove:
		return "move"
	default:
		return "unknown"
	}
}

// ChangeEvent is the single normalized description of a confirmed edit.
//
//	Add:    NewItem, TargetIndex
//	Change: OriginalItem, NewItem, TargetIndex
//	Remove: OriginalItem, TargetIndex
//	Reset:  OriginalItem, TargetIndex
//	Move:   OriginalItem, SourceIndex, NewItem (the row dropped onto), TargetIndex
type ChangeEvent[T any] struct {
	Type         EventType
	OriginalItem T
	NewItem      T
	SourceIndex  int
	TargetIndex  int
}

func AddEvent[T any](newItem T, target int) ChangeEvent[T] {
	return ChangeEvent[T]{Type: EventAdd, NewItem: newItem, TargetIndex: target}
}

func ChangeItemEvent[T any](original, newItem T, target int) ChangeEvent[T] {
	return ChangeEvent[T]{Type: EventChange, OriginalItem: original, NewItem: newItem, TargetIndex: target}
}

func RemoveEvent[T any](original T, target int) ChangeEvent[T] {
	return ChangeEvent[T]{Type: EventRemove, OriginalItem: original, TargetIndex: target}
}

func ResetEvent[T any](original T, target int) ChangeEvent[T] {
	return ChangeEvent[T]{Type: EventReset, OriginalItem: original, TargetIndex: target}
}

func MoveEvent[T any](original T, source int, newItem T, target int) ChangeEvent[T] {
	return ChangeEvent[T]{Type: EventMove, OriginalItem: original, SourceIndex: source, NewItem: newItem, TargetIndex: target}
}

// HasOriginal reports whether the variant carries OriginalItem.
func (e ChangeEvent[T]) HasOriginal() bool { return e.Type != EventAdd }

// HasNew reports whether the variant carries NewItem.
func (e ChangeEvent[T]) HasNew() bool {
	return e.Type == EventAdd || e.Type == EventChange || e.Type == EventMove
}
