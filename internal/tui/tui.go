package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"settings-tui/internal/config"
	"settings-tui/internal/logger"
	"settings-tui/internal/merger"
	"settings-tui/internal/settings"
	"settings-tui/internal/tui/state"
	"settings-tui/internal/tui/util"
	"settings-tui/internal/tui/widgets/collection"
	"settings-tui/internal/tui/widgets/helpoverlay"
	"settings-tui/internal/tui/widgets/statusbar"
	"settings-tui/internal/tui/widgets/tagchips"
)

// Options configures the settings page.
type Options struct {
	NoColor bool
	Debug   bool
	// Width of the widgets in cells; 0 follows the terminal.
	Width      int
	InputWidth int
}

// Result is what the page hands back when it exits.
type Result struct {
	// Document carries the edited values; schemas are shared with the input.
	Document *config.Document
	Before   map[string]any
	Values   map[string]any
	// Changed lists the keys whose override differs from the loaded one, in
	// document order.
	Changed []string
	// Saved is false when the user discarded the session.
	Saved bool
}

// Run shows the settings page for doc. The document passed in is not
// modified; the edited copy is returned in the result.
func Run(doc *config.Document, opts Options) (*Result, error) {
	m := newModel(doc, opts)
	defer m.dispose()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return m.result(), nil
}

// ===== Model =====

// widget is the part of every collection widget the page drives.
type widget interface {
	ID() string
	Update(tea.Msg) tea.Cmd
	View() string
	Editing() bool
	Selected() (int, bool)
	Len() int
	SetWidth(int)
	Dispose()
}

type entry struct {
	setting *config.Setting
	kind    settings.Kind
	w       widget
	// push rebuilds the widget's rows from the stored value.
	push    func(settings.Element) tea.Cmd
	unsub   func()
	problem string
	sources []string
}

type hostKeyMap struct {
	NextSetting key.Binding
	PrevSetting key.Binding
	Help        key.Binding
	Debug       key.Binding
	Save        key.Binding
	Quit        key.Binding
	Discard     key.Binding
}

func defaultHostKeys() hostKeyMap {
	return hostKeyMap{
		NextSetting: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next setting")),
		PrevSetting: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous setting")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Debug:       key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "toggle debug")),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "keep changes and exit")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "keep changes and exit")),
		Discard:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "discard and exit")),
	}
}

type model struct {
	doc    *config.Document
	before map[string]any
	opts   Options

	entries []*entry
	cursor  int
	keys    hostKeyMap
	rowKeys collection.KeyMap

	ui       state.UIState
	status   statusbar.StatusBar
	help     helpoverlay.HelpOverlay
	showHelp bool

	width  int
	height int
	top    int
	// blocks[i] is the [start, end) body line range of entry i; widgetAt[i]
	// is the first line of its widget.
	blocks   [][2]int
	widgetAt []int
	pressed  int

	pending []tea.Cmd
	saved   bool
}

func newModel(doc *config.Document, opts Options) *model {
	work := config.Clone(doc)
	m := &model{
		doc:     work,
		before:  config.Clone(doc).Values,
		opts:    opts,
		keys:    defaultHostKeys(),
		rowKeys: collection.DefaultKeyMap(),
		status:  statusbar.NewStatusBar(opts.NoColor),
		pressed: -1,
	}
	m.ui.Debug = opts.Debug
	m.help = helpoverlay.NewHelpOverlay(m.helpSections()...)

	cfg := collection.Config{
		Toolkit: collection.TermToolkit{InputWidth: opts.InputWidth},
		Keys:    m.rowKeys,
		Width:   opts.Width,
	}
	for i := range work.Settings {
		en := m.newEntry(&work.Settings[i], cfg)
		m.entries = append(m.entries, en)
		m.push(en)
	}
	m.pending = nil
	m.syncUI()
	m.ui.Changed, m.ui.Invalid = m.counts()
	return m
}

func (m *model) newEntry(s *config.Setting, cfg collection.Config) *entry {
	en := &entry{setting: s}
	el := settings.NewElement(s, m.doc.Values)
	en.kind = el.Kind()
	keyOpt := collection.WithSettingKey(s.Key)
	readOnly := collection.WithReadOnly(s.ReadOnly)

	switch en.kind {
	case settings.KindList:
		w := collection.NewListSettingWidget(cfg)
		en.w = w
		en.push = func(el settings.Element) tea.Cmd {
			items := settings.ListItems(el)
			en.sources = listSources(items)
			return w.SetValue(items, keyOpt, readOnly,
				collection.WithShowAddButton(settings.ShowAddButtonList(el, items)),
				collection.WithArraySuggester(settings.ArraySuggester(el)),
				collection.WithValidator(settings.ListRowValidator(el)),
			)
		}
		en.unsub = w.OnDidChangeList(func(ev state.ChangeEvent[state.ListItem]) { m.onListChange(en, ev) })
	case settings.KindExclude, settings.KindInclude:
		var w interface {
			widget
			SetValue([]state.ListItem, ...collection.Option) tea.Cmd
			OnDidChangeList(func(state.ChangeEvent[state.ListItem])) func()
		}
		if en.kind == settings.KindExclude {
			w = collection.NewExcludeSettingWidget(cfg)
		} else {
			w = collection.NewIncludeSettingWidget(cfg)
		}
		en.w = w
		en.push = func(el settings.Element) tea.Cmd {
			items := settings.PatternItems(el)
			en.sources = listSources(items)
			return w.SetValue(items, keyOpt, readOnly)
		}
		en.unsub = w.OnDidChangeList(func(ev state.ChangeEvent[state.ListItem]) { m.onListChange(en, ev) })
	case settings.KindBoolObject:
		w := collection.NewObjectSettingCheckboxWidget(cfg)
		en.w = w
		en.push = func(el settings.Element) tea.Cmd {
			items := settings.BoolObjectItems(el)
			en.sources = objectSources(items)
			return w.SetValue(items, keyOpt, readOnly)
		}
		en.unsub = w.OnDidChangeList(func(ev state.ChangeEvent[state.ObjectItem]) { m.onObjectChange(en, w.Data(), ev) })
	default:
		w := collection.NewObjectSettingDropdownWidget(cfg)
		en.w = w
		en.push = func(el settings.Element) tea.Cmd {
			items := settings.ObjectItems(el)
			en.sources = objectSources(items)
			return w.SetValue(items, keyOpt, readOnly,
				collection.WithShowAddButton(settings.ShowAddButtonObject(el, items)),
				collection.WithKeySuggester(settings.ObjectKeySuggester(el)),
				collection.WithValueSuggester(settings.ObjectValueSuggester(el)),
				collection.WithValidator(settings.ObjectRowValidator(el)),
			)
		}
		en.unsub = w.OnDidChangeList(func(ev state.ChangeEvent[state.ObjectItem]) { m.onObjectChange(en, w.Data(), ev) })
	}
	return en
}

func listSources(items []state.ListItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Source)
	}
	return out
}

func objectSources(items []state.ObjectItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Source)
	}
	return out
}

func (m *model) element(en *entry) settings.Element {
	return settings.NewElement(en.setting, m.doc.Values)
}

// push re-seeds the widget from the stored value and revalidates it.
func (m *model) push(en *entry) {
	el := m.element(en)
	if cmd := en.push(el); cmd != nil {
		m.pending = append(m.pending, cmd)
	}
	en.problem = settings.Validate(el)
}

func (m *model) store(name string, value any, ok bool) {
	if !ok {
		delete(m.doc.Values, name)
		return
	}
	m.doc.Values[name] = value
}

func (m *model) onListChange(en *entry, ev state.ChangeEvent[state.ListItem]) {
	name := en.setting.Key
	sc := merger.ScopeOf(m.element(en))
	switch en.kind {
	case settings.KindExclude, settings.KindInclude:
		obj := merger.ApplyPatternChange(sc, ev)
		m.store(name, obj, obj != nil)
	default:
		list := merger.ApplyListChange(sc, ev)
		if list != nil && settings.ValidateArray(en.setting, list) == "" {
			list = merger.ParseNumericList(en.setting.Items, list)
		}
		m.store(name, list, list != nil)
	}
	m.committed(en, ev.Type, ev.SourceIndex, ev.TargetIndex)
}

func (m *model) onObjectChange(en *entry, items []state.ObjectItem, ev state.ChangeEvent[state.ObjectItem]) {
	name := en.setting.Key
	sc := merger.ScopeOf(m.element(en))
	if en.kind == settings.KindBoolObject {
		value, err := merger.ApplyBoolObjectChange(sc, ev)
		if err != nil {
			logger.Warn("rejected change", "setting", name, "type", ev.Type.String(), "err", err)
			m.ui.Notice = fmt.Sprintf("%s: %v", name, err)
			return
		}
		m.store(name, value, value != nil)
	} else {
		value := merger.ApplyObjectChange(sc, items, ev)
		value = merger.ParseNumericObjectValues(en.setting, value)
		m.store(name, value, value != nil)
	}
	m.committed(en, ev.Type, ev.SourceIndex, ev.TargetIndex)
}

func (m *model) committed(en *entry, t state.EventType, source, target int) {
	logger.Debug("change", "setting", en.setting.Key, "type", t.String(), "source", source, "target", target)
	m.push(en)
	changed, invalid := m.counts()
	m.ui = state.Committed(m.ui, en.setting.Key, t, changed, invalid)
}

func (m *model) counts() (changed, invalid int) {
	for _, en := range m.entries {
		if m.modified(en.setting.Key) {
			changed++
		}
		if en.problem != "" {
			invalid++
		}
	}
	return changed, invalid
}

func (m *model) modified(name string) bool {
	bv, bok := m.before[name]
	av, aok := m.doc.Values[name]
	if bok != aok {
		return true
	}
	return !settings.Same(plain(bv), plain(av))
}

// plain unwraps ordered objects so they compare like decoded JSON.
func plain(v any) any {
	if o, ok := v.(settings.Object); ok {
		return o.Map()
	}
	return v
}

func (m *model) result() *Result {
	res := &Result{
		Document: m.doc,
		Before:   m.before,
		Values:   m.doc.Values,
		Saved:    m.saved,
	}
	for _, en := range m.entries {
		if m.modified(en.setting.Key) {
			res.Changed = append(res.Changed, en.setting.Key)
		}
	}
	return res
}

func (m *model) dispose() {
	for _, en := range m.entries {
		if en.unsub != nil {
			en.unsub()
		}
		en.w.Dispose()
	}
}

func (m *model) focused() *entry {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return nil
	}
	return m.entries[m.cursor]
}

func (m *model) focus(idx int) {
	if len(m.entries) == 0 {
		return
	}
	idx = (idx + len(m.entries)) % len(m.entries)
	m.cursor = idx
	m.syncUI()
}

func (m *model) syncUI() {
	en := m.focused()
	if en == nil {
		return
	}
	row, ok := en.w.Selected()
	if !ok {
		row = -1
	}
	m.ui = state.Focus(m.ui, en.setting.Key, row, en.w.Len())
	m.ui = state.SetEditing(m.ui, en.w.Editing())
}

func (m *model) helpSections() []helpoverlay.Section {
	k := m.rowKeys
	return []helpoverlay.Section{
		{Title: "Rows", Bindings: []key.Binding{k.Up, k.Down, k.MoveUp, k.MoveDown}},
		{Title: "Row actions", Bindings: []key.Binding{k.Edit, k.Add, k.Remove, k.Reset, k.Toggle}},
		{Title: "Editing", Bindings: []key.Binding{k.Commit, k.Cancel, k.NextField, k.PrevField}},
		{Title: "Page", Bindings: []key.Binding{
			m.keys.NextSetting, m.keys.PrevSetting, m.keys.Help, m.keys.Debug,
			m.keys.Save, m.keys.Quit, m.keys.Discard,
		}},
	}
}

func (m *model) takePending() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmd := tea.Batch(m.pending...)
	m.pending = nil
	return cmd
}

func (m *model) Init() tea.Cmd { return nil }

// Update routes keys to the page or the focused widget, mouse input to the
// widget under the pointer, and everything else to every widget.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ui = state.Resize(m.ui, msg.Width)
		w := m.opts.Width
		if w <= 0 {
			w = msg.Width - 2
		}
		for _, en := range m.entries {
			en.w.SetWidth(w)
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Discard):
			m.saved = false
			return m, tea.Quit
		case key.Matches(msg, m.keys.Save):
			m.saved = true
			return m, tea.Quit
		}
		en := m.focused()
		if en == nil {
			if key.Matches(msg, m.keys.Quit) {
				m.saved = true
				return m, tea.Quit
			}
			return m, nil
		}
		if !en.w.Editing() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.saved = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.NextSetting):
				m.focus(m.cursor + 1)
				return m, nil
			case key.Matches(msg, m.keys.PrevSetting):
				m.focus(m.cursor - 1)
				return m, nil
			case key.Matches(msg, m.keys.Help):
				m.showHelp = true
				return m, nil
			case key.Matches(msg, m.keys.Debug):
				m.ui = state.ToggleDebug(m.ui)
				return m, nil
			case key.Matches(msg, m.rowKeys.Cancel):
				m.ui = state.ClearNotice(m.ui)
			}
		}
		cmd = en.w.Update(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	default:
		cmds := make([]tea.Cmd, 0, len(m.entries))
		for _, en := range m.entries {
			cmds = append(cmds, en.w.Update(msg))
		}
		cmd = tea.Batch(cmds...)
	}
	m.syncUI()
	return m, tea.Batch(cmd, m.takePending())
}

// handleMouse translates a terminal mouse event into a pointer message for
// the widget under it. Motion and release go to the widget that saw the
// press so drags stay inside one collection.
func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	line := msg.Y + m.top
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		idx := m.entryAt(line)
		if idx < 0 {
			return nil
		}
		if idx != m.cursor {
			if m.focused() != nil && m.focused().w.Editing() {
				return nil
			}
			m.focus(idx)
		}
		m.pressed = idx
		return m.pointer(idx, line, collection.PointerPress)
	case tea.MouseActionMotion:
		if m.pressed < 0 {
			return nil
		}
		return m.pointer(m.pressed, line, collection.PointerMotion)
	case tea.MouseActionRelease:
		if m.pressed < 0 {
			return nil
		}
		idx := m.pressed
		m.pressed = -1
		return m.pointer(idx, line, collection.PointerRelease)
	}
	return nil
}

func (m *model) pointer(idx, line int, action collection.PointerAction) tea.Cmd {
	if idx >= len(m.widgetAt) {
		return nil
	}
	return m.entries[idx].w.Update(collection.PointerMsg{Line: line - m.widgetAt[idx], Action: action})
}

func (m *model) entryAt(line int) int {
	for i, b := range m.blocks {
		if line >= b[0] && line < b[1] {
			return i
		}
	}
	return -1
}

// ===== Views =====

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	selStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"}).Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(util.DefaultPalette().Danger)
)

func (m *model) style(s lipgloss.Style, text string) string {
	if m.opts.NoColor {
		return text
	}
	return s.Render(text)
}

func (m *model) View() string {
	body := m.body()
	footer := []string{
		m.status.View(m.ui),
		m.style(faintStyle, "tab: next setting   ?: help   ctrl+s/q: keep   ctrl+c: discard"),
	}

	if m.height > len(footer) && len(body) > m.height-len(footer) {
		body = m.window(body, m.height-len(footer))
	} else {
		m.top = 0
	}
	page := strings.Join(append(body, footer...), "\n")
	if m.showHelp {
		return m.help.WithState(m.ui).Over(page)
	}
	return page
}

// body renders every setting and records where each one starts.
func (m *model) body() []string {
	var lines []string
	m.blocks = m.blocks[:0]
	m.widgetAt = m.widgetAt[:0]

	lines = append(lines, m.style(titleStyle, fmt.Sprintf("Settings (%d)", len(m.entries))), "")
	if len(m.entries) == 0 {
		lines = append(lines, "No settings found.")
	}
	for i, en := range m.entries {
		start := len(lines)
		head := "  " + en.setting.Key
		if i == m.cursor {
			head = m.style(selStyle, "> "+en.setting.Key)
		}
		lines = append(lines, head+"  "+tagchips.View(m.tags(en), m.opts.NoColor))
		if d := en.setting.Description; d != "" {
			lines = append(lines, m.style(faintStyle, "  "+d))
		}
		m.widgetAt = append(m.widgetAt, len(lines))
		lines = append(lines, strings.Split(en.w.View(), "\n")...)
		if en.problem != "" {
			for _, p := range strings.Split(en.problem, "\n") {
				lines = append(lines, m.style(errStyle, "  ! "+p))
			}
		}
		m.blocks = append(m.blocks, [2]int{start, len(lines)})
		lines = append(lines, "")
	}
	return lines
}

// window keeps the focused setting in view and returns the visible lines.
func (m *model) window(lines []string, height int) []string {
	if m.cursor < len(m.blocks) {
		b := m.blocks[m.cursor]
		if b[0] < m.top {
			m.top = b[0]
		}
		if b[1] > m.top+height {
			m.top = min(b[0], b[1]-height)
		}
	}
	m.top = max(0, min(m.top, len(lines)-height))
	return lines[m.top : m.top+height]
}

func (m *model) tags(en *entry) []state.Tag {
	_, configured := m.doc.Values[en.setting.Key]
	return util.ComputeTags(util.Indicators{
		Modified:   m.modified(en.setting.Key),
		Invalid:    en.problem != "",
		ReadOnly:   en.setting.ReadOnly,
		Configured: configured,
		Sources:    en.sources,
		Rows:       en.w.Len(),
	})
}

// ValidationReport lists the whole-value problems of every setting in doc,
// each prefixed with its accessible label.
func ValidationReport(doc *config.Document) []string {
	var out []string
	for i := range doc.Settings {
		el := settings.NewElement(&doc.Settings[i], doc.Values)
		if msg := settings.Validate(el); msg != "" {
			out = append(out, settings.ValidationLabel(el.Setting.Key, msg))
		}
	}
	return out
}
