package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ help.KeyMap = (*KeyMap)(nil)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"select", km.Select, []string{"enter"}},
		{"next field", km.NextField, []string{"tab"}},
		{"previous field", km.PrevField, []string{"shift+tab"}},
		{"save", km.Save, []string{"s"}},
		{"raw", km.Raw, []string{"r"}},
		{"new search", km.NewSearch, []string{"n", "/"}},
		{"analyze", km.Analyze, []string{"a"}},
		{"jobs", km.Jobs, []string{"b"}},
		{"rebuild", km.Rebuild, []string{"i"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestFor(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []key.Binding{km.Quit, km.Help}, km.For(ScreenMenu))
	assert.Len(t, km.For(ScreenForm), 3)
	assert.Contains(t, km.For(ScreenReport), km.Save)
	assert.Contains(t, km.For(ScreenJobs), km.NewSearch)
	assert.Equal(t, km.For(ScreenMenu), km.ShortHelp())
}

func TestSections(t *testing.T) {
	km := DefaultKeyMap()

	sections := km.Sections()
	require.Len(t, sections, 5)
	assert.Equal(t, "Menu", sections[0].Title)
	assert.Contains(t, sections[0].Bindings, km.Rebuild)

	full := km.FullHelp()
	require.Len(t, full, len(sections))
	assert.Contains(t, full[2], km.Save)
}

func TestBindingsMatchKeyMsgs(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, km.Up))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}, km.NewSearch))
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, km.Quit))
}
