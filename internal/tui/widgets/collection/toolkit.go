package collection

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"settings-tui/internal/tui/state"
)

// InputBox is a single-line text field. SetValue does not notify
// OnDidChange listeners; edits made through Update do.
type InputBox interface {
	Value() string
	SetValue(string)
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Update(tea.Msg) tea.Cmd
	View() string
	OnDidChange(func(string))
}

// SelectBox picks one of a fixed list of options.
type SelectBox interface {
	Options() []state.EnumOption
	Selected() int
	Value() string
	Select(idx int)
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Update(tea.Msg) tea.Cmd
	View() string
	OnDidSelect(func(idx int, value string))
}

// Toggle is a checkbox.
type Toggle interface {
	Checked() bool
	SetChecked(bool)
	View() string
}

// Toolkit creates the primitives rows are built from.
type Toolkit interface {
	NewInputBox(placeholder string) InputBox
	NewSelectBox(options []state.EnumOption, selected int) SelectBox
	NewToggle(checked bool, title string) Toggle
}

// TermToolkit is the terminal Toolkit backed by bubbles components.
type TermToolkit struct {
	InputWidth int
	CharLimit  int
	// StaticCursor disables cursor blinking in text fields.
	StaticCursor bool
}

func (t TermToolkit) NewInputBox(placeholder string) InputBox {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = t.CharLimit
	if ti.CharLimit == 0 {
		ti.CharLimit = 256
	}
	ti.Width = t.InputWidth
	if ti.Width == 0 {
		ti.Width = 24
	}
	if t.StaticCursor {
		ti.Cursor.SetMode(cursor.CursorStatic)
	}
	return &textInputBox{ti: ti}
}

func (t TermToolkit) NewSelectBox(options []state.EnumOption, selected int) SelectBox {
	sb := &selectBox{options: options, selected: -1}
	if selected >= 0 && selected < len(options) {
		sb.selected = selected
	}
	return sb
}

func (t TermToolkit) NewToggle(checked bool, title string) Toggle {
	return &checkbox{checked: checked, title: title}
}

type textInputBox struct {
	ti        textinput.Model
	listeners []func(string)
}

func (b *textInputBox) Value() string     { return b.ti.Value() }
func (b *textInputBox) SetValue(v string) { b.ti.SetValue(v); b.ti.CursorEnd() }
func (b *textInputBox) Focus() tea.Cmd    { return b.ti.Focus() }
func (b *textInputBox) Blur()             { b.ti.Blur() }
func (b *textInputBox) Focused() bool     { return b.ti.Focused() }
func (b *textInputBox) View() string      { return "[" + b.ti.View() + "]" }

func (b *textInputBox) OnDidChange(fn func(string)) {
	b.listeners = append(b.listeners, fn)
}

func (b *textInputBox) Update(msg tea.Msg) tea.Cmd {
	before := b.ti.Value()
	var cmd tea.Cmd
	b.ti, cmd = b.ti.Update(msg)
	if after := b.ti.Value(); after != before {
		for _, fn := range b.listeners {
			fn(after)
		}
	}
	return cmd
}

var (
	selectPrev = key.NewBinding(key.WithKeys("left", "h", "up"))
	selectNext = key.NewBinding(key.WithKeys("right", "l", "down", " "))
)

type selectBox struct {
	options   []state.EnumOption
	selected  int
	focused   bool
	listeners []func(int, string)
}

func (s *selectBox) Options() []state.EnumOption { return s.options }
func (s *selectBox) Selected() int               { return s.selected }
func (s *selectBox) Focus() tea.Cmd              { s.focused = true; return nil }
func (s *selectBox) Blur()                       { s.focused = false }
func (s *selectBox) Focused() bool               { return s.focused }

func (s *selectBox) Value() string {
	if s.selected < 0 || s.selected >= len(s.options) {
		return ""
	}
	return s.options[s.selected].Value
}

// Select moves the choice and notifies listeners.
func (s *selectBox) Select(idx int) {
	if idx < 0 || idx >= len(s.options) || idx == s.selected {
		return
	}
	s.selected = idx
	for _, fn := range s.listeners {
		fn(idx, s.options[idx].Value)
	}
}

func (s *selectBox) OnDidSelect(fn func(int, string)) {
	s.listeners = append(s.listeners, fn)
}

func (s *selectBox) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok || !s.focused || len(s.options) == 0 {
		return nil
	}
	switch {
	case key.Matches(km, selectPrev):
		s.Select((s.selected - 1 + len(s.options)) % len(s.options))
	case key.Matches(km, selectNext):
		s.Select((s.selected + 1) % len(s.options))
	}
	return nil
}

func (s *selectBox) View() string {
	v := s.Value()
	if v == "" {
		v = " "
	}
	if s.focused {
		return focusedFieldStyle.Render(fmt.Sprintf("‹ %s ›", v))
	}
	return fmt.Sprintf("‹ %s ›", v)
}

// description returns the description of the chosen option, if any.
func (s *selectBox) description() string {
	if s.selected < 0 || s.selected >= len(s.options) {
		return ""
	}
	return strings.TrimSpace(s.options[s.selected].Description)
}

type checkbox struct {
	checked bool
	title   string
}

func (c *checkbox) Checked() bool     { return c.checked }
func (c *checkbox) SetChecked(v bool) { c.checked = v }

func (c *checkbox) View() string {
	if c.checked {
		return "[x]"
	}
	return "[ ]"
}
