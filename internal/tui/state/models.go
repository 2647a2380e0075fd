package state

// EditorMode represents whether the focused collection is being edited.
type EditorMode int

const (
	VIEW EditorMode = iota
	EDIT
)

// UIState holds page-wide UI state used by the status bar and help overlay.
type UIState struct {
	// Mode & focus
	Mode    EditorMode
	Setting string // key of the focused setting
	Row     int    // selected row of the focused widget, -1 for none
	Rows    int

	// Layout
	Width int

	// Session counters
	Changed int // settings whose override differs from the loaded one
	Invalid int // settings failing whole-value validation

	// Debug colours the status bar and enables verbose notices
	Debug bool

	// Notices and ephemeral messages
	Notice string
}
