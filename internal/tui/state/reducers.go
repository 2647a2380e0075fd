package state

import "fmt"

// SetEditing switches between VIEW and EDIT and sets a brief notice when the
// mode actually changes.
func SetEditing(s UIState, editing bool) UIState {
	switch {
	case editing && s.Mode == VIEW:
		s.Mode = EDIT
		s.Notice = "[EDIT]"
	case !editing && s.Mode == EDIT:
		s.Mode = VIEW
		s.Notice = "[VIEW]"
	}
	return s
}

// Focus records the focused setting and its selection cursor.
func Focus(s UIState, setting string, row, rows int) UIState {
	if s.Setting != setting {
		s.Notice = ""
	}
	s.Setting = setting
	s.Row = row
	s.Rows = rows
	return s
}

// Resize updates the terminal width.
func Resize(s UIState, width int) UIState {
	s.Width = width
	return s
}

// ToggleDebug flips debug mode.
func ToggleDebug(s UIState) UIState {
	s.Debug = !s.Debug
	if s.Debug {
		s.Notice = "Debug on"
	} else {
		s.Notice = "Debug off"
	}
	return s
}

// Committed records a fired change event for setting.
func Committed(s UIState, setting string, ev EventType, changed, invalid int) UIState {
	s.Changed = changed
	s.Invalid = invalid
	s.Notice = fmt.Sprintf("%s: %s", setting, ev)
	return s
}

// ClearNotice drops the ephemeral notice.
func ClearNotice(s UIState) UIState {
	s.Notice = ""
	return s
}
