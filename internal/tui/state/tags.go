package state

// TagKind enumerates the indicator chips shown next to a setting.
type TagKind int

const (
	// Stable ordering for display: Modified, Invalid, Read-only, Default, Source, Rows
	MODIFIED TagKind = iota
	INVALID
	READ_ONLY
	DEFAULT
	SOURCE
	ROWS
)

// Tag represents a single indicator chip. Value is used for counters (ROWS),
// Text for labels (SOURCE). Other tags leave both zero.
type Tag struct {
	Kind  TagKind
	Value int
	Text  string
}
