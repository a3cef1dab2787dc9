// Package menu is the landing screen.
package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/styles"
)

// Item is one menu row. Selecting it, or pressing Shortcut, emits Msg;
// a nil Msg quits.
type Item struct {
	Label    string
	Shortcut key.Binding
	Msg      tea.Msg
}

// View lists the top-level actions.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	help     help.Model
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView builds the menu. Nil arguments take the defaults.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		help:   help.New(),
		items: []Item{
			{Label: "Analyze CV", Shortcut: km.Analyze, Msg: messages.ViewChanged{View: messages.ViewAnalyze}},
			{Label: "Browse Jobs", Shortcut: km.Jobs, Msg: messages.ViewChanged{View: messages.ViewJobs}},
			{Label: "Rebuild Index", Shortcut: km.Rebuild, Msg: messages.IngestionRequested{}},
			{Label: "Help", Shortcut: km.Help, Msg: messages.ViewChanged{View: messages.ViewHelp}},
			{Label: "Quit", Shortcut: km.Quit},
		},
		width:  80,
		height: 24,
	}
}

// Init implements the view contract.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and fires items.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Up):
			v.selected = max(v.selected-1, 0)
		case key.Matches(msg, v.keymap.Down):
			v.selected = min(v.selected+1, len(v.items)-1)
		case key.Matches(msg, v.keymap.Select):
			return v, fire(v.items[v.selected])
		default:
			for i, item := range v.items {
				if key.Matches(msg, item.Shortcut) {
					v.selected = i
					return v, fire(item)
				}
			}
		}
	}
	return v, nil
}

func fire(item Item) tea.Cmd {
	if item.Msg == nil {
		return tea.Quit
	}
	m := item.Msg
	return func() tea.Msg { return m }
}

// View renders the title, the rows and a key hint line.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("skillgap"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("CV skill gap analysis against the job market"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		hint := v.styles.Muted.Render(" (" + item.Shortcut.Help().Key + ")")
		if i == v.selected {
			b.WriteString("> " + v.styles.MenuCursor.Render(item.Label) + hint + "\n")
			continue
		}
		b.WriteString("  " + v.styles.MenuItem.Render(item.Label) + hint + "\n")
	}

	b.WriteString("\n")
	b.WriteString(v.help.ShortHelpView([]key.Binding{v.keymap.Up, v.keymap.Down, v.keymap.Select, v.keymap.Quit}))
	return b.String()
}

// SetDimensions records the terminal size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.help.Width = width
	v.ready = true
}

// Selected returns the cursor row.
func (v *View) Selected() int {
	return v.selected
}
