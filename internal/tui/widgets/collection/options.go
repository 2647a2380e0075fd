package collection

import (
	"time"

	"settings-tui/internal/tui/state"
)

// ArraySuggester offers a replacement value for the list row at idx given
// the data of every current row. A suggested enum turns the row editor into
// a select box.
type ArraySuggester func(existing []string, idx int) (state.Value, bool)

// KeySuggester offers a key for a new object row given the keys in use.
type KeySuggester func(existing []string) (state.Value, bool)

// ValueSuggester offers a value for an object row with the given key.
type ValueSuggester func(key string) (state.Value, bool)

// Option adjusts a widget on SetValue. A setting stays as it was on every
// later SetValue that omits its option, so a host may pass only what
// changed. Options a widget does not support are ignored.
type Option func(*options)

type options struct {
	showAddButton  *bool
	readOnly       *bool
	settingKey     *string
	arraySuggester ArraySuggester
	keySuggester   KeySuggester
	valueSuggester ValueSuggester
	validator      any
}

func collect(opts []Option) options {
	var o options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func WithShowAddButton(show bool) Option {
	return func(o *options) { o.showAddButton = &show }
}

func WithReadOnly(readOnly bool) Option {
	return func(o *options) { o.readOnly = &readOnly }
}

// WithSettingKey names the setting being edited. When it differs from the
// previous key the edit and selection cursors are reset.
func WithSettingKey(key string) Option {
	return func(o *options) { o.settingKey = &key }
}

func WithArraySuggester(fn ArraySuggester) Option {
	return func(o *options) { o.arraySuggester = fn }
}

func WithKeySuggester(fn KeySuggester) Option {
	return func(o *options) { o.keySuggester = fn }
}

func WithValueSuggester(fn ValueSuggester) Option {
	return func(o *options) { o.valueSuggester = fn }
}

// WithValidator installs a row validator. It returns a non-empty message
// when the row must not be committed. T must match the widget's row type.
func WithValidator[T any](fn func(T) string) Option {
	return func(o *options) { o.validator = fn }
}

// Config carries the services a widget is built with. Zero fields fall
// back to the terminal defaults.
type Config struct {
	Toolkit Toolkit
	Hover   HoverService
	Keys    KeyMap
	Width   int
	// Now is the clock used for double-click detection.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Toolkit == nil {
		c.Toolkit = TermToolkit{}
	}
	if c.Hover == nil {
		c.Hover = NewTooltips()
	}
	if len(c.Keys.Up.Keys()) == 0 {
		c.Keys = DefaultKeyMap()
	}
	if c.Width <= 0 {
		c.Width = 80
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}
