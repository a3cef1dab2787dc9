// Package status renders the one-line bar under the jobs and report views.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/styles"
)

// State drives the left-hand text and which key hints are shown.
type State string

const (
	StateReady   State = "ready"
	StateWorking State = "working"
	StateError   State = "error"
	StateForm    State = "form"
	StateReport  State = "report"
	StateResults State = "results"
)

var screens = map[State]keymap.Screen{
	StateForm:    keymap.ScreenForm,
	StateReport:  keymap.ScreenReport,
	StateResults: keymap.ScreenJobs,
}

// Bar is passive: views set its state and render it.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	state       State
	message     string
	resultCount int
	width       int
}

// NewBar returns a bar in StateReady. Nil arguments take the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	h := help.New()
	h.ShortSeparator = " | "
	h.Styles.ShortKey = s.Muted
	h.Styles.ShortDesc = s.Muted
	h.Styles.ShortSeparator = s.Muted

	return &Bar{styles: s, keymap: km, help: h, state: StateReady, width: 80}
}

// Init implements the view contract.
func (s *Bar) Init() tea.Cmd { return nil }

// Update ignores messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) { return s, nil }

// View renders status on the left and key hints on the right.
func (s *Bar) View() string {
	left := s.status()
	right := s.help.ShortHelpView(s.keymap.For(screens[s.state]))

	gap := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) status() string {
	switch s.state {
	case StateWorking:
		return s.styles.Muted.Render(cmp(s.message, "Working") + "...")
	case StateError:
		if s.message == "" {
			return s.styles.Error.Render("Error")
		}
		return s.styles.Error.Render("Error: " + s.message)
	case StateResults:
		return s.styles.Normal.Render(fmt.Sprintf("%d job matches", s.resultCount))
	}
	if s.message != "" {
		return s.styles.Success.Render(s.message)
	}
	return s.styles.Muted.Render("Ready")
}

func cmp(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// SetState switches the state.
func (s *Bar) SetState(state State) { s.state = state }

// State returns the current state.
func (s *Bar) State() State { return s.state }

// SetMessage sets the status text.
func (s *Bar) SetMessage(message string) { s.message = message }

// Message returns the status text.
func (s *Bar) Message() string { return s.message }

// SetResultCount sets the number shown in StateResults.
func (s *Bar) SetResultCount(count int) { s.resultCount = count }

// ResultCount returns the match count.
func (s *Bar) ResultCount() int { return s.resultCount }

// SetWidth sets the render width.
func (s *Bar) SetWidth(width int) {
	s.width = width
	s.help.Width = width
}

// Width returns the render width.
func (s *Bar) Width() int { return s.width }

// Clear returns to StateReady with no message.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.resultCount = 0
}
