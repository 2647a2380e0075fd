package helpoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"settings-tui/internal/tui/state"
)

// Section is a titled group of key bindings.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// HelpOverlay lists key bindings grouped by section with the current mode
// indicated. It is a tea.Model so it can be composited over the page.
type HelpOverlay struct {
	help     help.Model
	sections []Section
	mode     state.EditorMode
}

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 2)

func NewHelpOverlay(sections ...Section) HelpOverlay {
	return HelpOverlay{help: help.New(), sections: sections}
}

// WithState returns a copy reflecting the page's mode.
func (h HelpOverlay) WithState(s state.UIState) HelpOverlay {
	h.mode = s.Mode
	return h
}

func (h HelpOverlay) Init() tea.Cmd                       { return nil }
func (h HelpOverlay) Update(tea.Msg) (tea.Model, tea.Cmd) { return h, nil }

func (h HelpOverlay) View() string {
	mode := "VIEW"
	if h.mode == state.EDIT {
		mode = "EDIT"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Mode: %s)\n", mode)
	for _, sec := range h.sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.Title)
		for _, kb := range sec.Bindings {
			if !kb.Enabled() {
				continue
			}
			hk := kb.Help()
			fmt.Fprintf(&b, "  %s  %s\n",
				h.help.Styles.FullKey.Render(hk.Key),
				h.help.Styles.FullDesc.Render(hk.Desc))
		}
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// Over draws the overlay centred on top of background. A background smaller
// than the overlay is padded first.
func (h HelpOverlay) Over(background string) string {
	fg := h.View()
	w := max(lipgloss.Width(background), lipgloss.Width(fg))
	ht := max(lipgloss.Height(background), lipgloss.Height(fg))
	bg := lipgloss.Place(w, ht, lipgloss.Left, lipgloss.Top, background)
	return overlay.New(h, page(bg), overlay.Center, overlay.Center, 0, 0).View()
}

type page string

func (p page) Init() tea.Cmd                       { return nil }
func (p page) Update(tea.Msg) (tea.Model, tea.Cmd) { return p, nil }
func (p page) View() string                        { return string(p) }
