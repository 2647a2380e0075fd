package collection

import "fmt"

// Labels are the user-visible strings of a widget flavour.
type Labels struct {
	AddButton          string
	EditAction         string
	RemoveAction       string
	ResetAction        string
	InputPlaceholder   string
	SiblingPlaceholder string
	KeyHeader          string
	ValueHeader        string
	OK                 string
	Cancel             string
}

var (
	listLabels = Labels{
		AddButton:        "Add Item",
		EditAction:       "Edit Item",
		RemoveAction:     "Remove Item",
		ResetAction:      "Reset Item",
		InputPlaceholder: "Item...",
		OK:               "OK",
		Cancel:           "Cancel",
	}
	excludeLabels = Labels{
		AddButton:          "Add Pattern",
		EditAction:         "Edit Exclude Item",
		RemoveAction:       "Remove Exclude Item",
		ResetAction:        "Reset Item",
		InputPlaceholder:   "Exclude Pattern...",
		SiblingPlaceholder: "When Pattern Is Present...",
		OK:                 "OK",
		Cancel:             "Cancel",
	}
	includeLabels = Labels{
		AddButton:          "Add Pattern",
		EditAction:         "Edit Include Item",
		RemoveAction:       "Remove Include Item",
		ResetAction:        "Reset Item",
		InputPlaceholder:   "Include Pattern...",
		SiblingPlaceholder: "When Pattern Is Present...",
		OK:                 "OK",
		Cancel:             "Cancel",
	}
	objectLabels = Labels{
		AddButton:        "Add Item",
		EditAction:       "Edit Item",
		RemoveAction:     "Remove Item",
		ResetAction:      "Reset Item",
		InputPlaceholder: "Value",
		KeyHeader:        "Item",
		ValueHeader:      "Value",
		OK:               "OK",
		Cancel:           "Cancel",
	}
)

// Action is a per-row command shown next to the selected row.
type Action struct {
	ID      string
	Label   string
	Tooltip string
	Key     string
}

const (
	actionEdit   = "edit"
	actionRemove = "remove"
	actionReset  = "reset"
)

func editAction(l Labels) Action {
	return Action{ID: actionEdit, Label: "✎", Tooltip: l.EditAction, Key: "e"}
}

func removeAction(l Labels) Action {
	return Action{ID: actionRemove, Label: "✕", Tooltip: l.RemoveAction, Key: "d"}
}

func resetAction(l Labels) Action {
	return Action{ID: actionReset, Label: "↺", Tooltip: l.ResetAction, Key: "r"}
}

func sourceSuffix(source string) string {
	if source == "" {
		return ""
	}
	return fmt.Sprintf(". Default value provided by `%s`", source)
}
