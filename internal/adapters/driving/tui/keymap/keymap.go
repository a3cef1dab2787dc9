// Package keymap defines the TUI key bindings and groups them per screen
// for the status bar and the help page.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// Screen selects which bindings are hinted.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenForm
	ScreenReport
	ScreenJobs
)

// KeyMap holds every binding the TUI reacts to.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	NextField key.Binding
	PrevField key.Binding

	// Report screen.
	Save key.Binding
	Raw  key.Binding

	// Jobs screen.
	NewSearch key.Binding

	// Menu shortcuts.
	Analyze key.Binding
	Jobs    key.Binding
	Rebuild key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns vim-flavoured defaults.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: bind("q", "quit", "q", "ctrl+c"),
		Help: bind("?", "help", "?"),
		Back: bind("esc", "back", "esc"),

		Up:     bind("↑/k", "up", "up", "k"),
		Down:   bind("↓/j", "down", "down", "j"),
		Select: bind("enter", "select", "enter"),

		NextField: bind("tab", "next field", "tab"),
		PrevField: bind("shift+tab", "previous field", "shift+tab"),

		Save: bind("s", "save", "s"),
		Raw:  bind("r", "raw markdown", "r"),

		NewSearch: bind("n", "new search", "n", "/"),

		Analyze: bind("a", "analyze CV", "a"),
		Jobs:    bind("b", "browse jobs", "b"),
		Rebuild: bind("i", "rebuild index", "i"),
	}
}

// For returns the hints shown in the status bar on screen.
func (k *KeyMap) For(screen Screen) []key.Binding {
	switch screen {
	case ScreenForm:
		return []key.Binding{k.NextField, k.Select, k.Back}
	case ScreenReport:
		return []key.Binding{k.Up, k.Down, k.Save, k.Raw, k.Back}
	case ScreenJobs:
		return []key.Binding{k.Up, k.Down, k.NewSearch, k.Back}
	default:
		return []key.Binding{k.Quit, k.Help}
	}
}

// Section is one titled block of the help page.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// Sections lays out the help page.
func (k *KeyMap) Sections() []Section {
	return []Section{
		{"Menu", []key.Binding{k.Up, k.Down, k.Select, k.Analyze, k.Jobs, k.Rebuild, k.Quit}},
		{"Analyze CV", []key.Binding{k.Up, k.Down, k.NextField, k.PrevField, k.Select}},
		{"Report", []key.Binding{k.Up, k.Down, k.Save, k.Raw}},
		{"Browse Jobs", []key.Binding{k.Select, k.Up, k.Down, k.NewSearch}},
		{"Anywhere", []key.Binding{k.Back, k.Help}},
	}
}

// ShortHelp implements help.KeyMap.
func (k *KeyMap) ShortHelp() []key.Binding {
	return k.For(ScreenMenu)
}

// FullHelp implements help.KeyMap.
func (k *KeyMap) FullHelp() [][]key.Binding {
	sections := k.Sections()
	out := make([][]key.Binding, len(sections))
	for i, s := range sections {
		out[i] = s.Bindings
	}
	return out
}
