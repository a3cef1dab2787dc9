// Package analyze provides the role and CV form that starts a gap analysis.
package analyze

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// maxSuggestions caps how many role suggestions are drawn.
const maxSuggestions = 8

// field identifies the focused form field.
type field int

const (
	fieldRole field = iota
	fieldCV
	fieldCount
)

// View is the analysis form: a role with suggestions and a CV path.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	role      *input.Field
	cv        *input.Field
	statusbar *status.Bar

	// suggestions holds preset roles followed by indexed job titles.
	suggestions []string
	suggestion  int

	focus  field
	busy   bool
	err    error
	width  int
	height int
	ready  bool
}

// NewView creates the form with the given default CV path.
func NewView(s *styles.Styles, km *keymap.KeyMap, defaultCV string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:      s,
		keymap:      km,
		role:        input.NewField(s, "Target role", "e.g. Data Scientist"),
		cv:          input.NewField(s, "CV file", "path to a .txt or .pdf CV"),
		statusbar:   status.NewBar(s, km),
		suggestions: append([]string(nil), domain.RolePresets...),
		suggestion:  -1,
		width:       80,
		height:      24,
	}
	v.cv.SetValue(defaultCV)
	v.statusbar.SetState(status.StateForm)
	return v
}

// Init focuses the role field.
func (v *View) Init() tea.Cmd {
	return v.setFocus(fieldRole)
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.TitlesLoaded:
		v.SetTitles(msg.Titles)
		return v, nil

	case messages.ReportReady:
		v.busy = false
		v.statusbar.SetState(status.StateForm)
		if msg.Err != nil {
			v.setErr(msg.Err)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.busy = false
		v.setErr(msg.Err)
		return v, nil
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.busy {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case key.Matches(msg, v.keymap.NextField):
		return v, v.setFocus((v.focus + 1) % fieldCount)

	case key.Matches(msg, v.keymap.PrevField):
		return v, v.setFocus((v.focus + fieldCount - 1) % fieldCount)

	case msg.Type == tea.KeyEnter:
		return v, v.submit()
	}

	if v.focus == fieldRole {
		//nolint:exhaustive // only arrows cycle suggestions; j/k are typed
		switch msg.Type {
		case tea.KeyUp:
			v.cycleSuggestion(-1)
			return v, nil
		case tea.KeyDown:
			v.cycleSuggestion(1)
			return v, nil
		}
	}

	var cmd tea.Cmd
	if v.focus == fieldRole {
		v.role, cmd = v.role.Update(msg)
	} else {
		v.cv, cmd = v.cv.Update(msg)
	}
	return v, cmd
}

// submit validates the form and asks the app to run the analysis.
func (v *View) submit() tea.Cmd {
	role := strings.TrimSpace(v.role.Value())
	if role == "" {
		v.setErr(ErrRoleRequired)
		return nil
	}

	v.err = nil
	v.busy = true
	v.statusbar.SetState(status.StateWorking)
	v.statusbar.SetMessage("Analysing " + role)

	req := messages.AnalysisRequested{Role: role, CVPath: strings.TrimSpace(v.cv.Value())}
	return func() tea.Msg { return req }
}

func (v *View) cycleSuggestion(delta int) {
	n := min(len(v.suggestions), maxSuggestions)
	if n == 0 {
		return
	}
	v.suggestion = (v.suggestion + delta + n) % n
	v.role.SetValue(v.suggestions[v.suggestion])
}

func (v *View) setFocus(f field) tea.Cmd {
	v.focus = f
	if f == fieldRole {
		v.cv.Blur()
		return v.role.Focus()
	}
	v.role.Blur()
	return v.cv.Focus()
}

func (v *View) setErr(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// SetTitles merges indexed job titles into the suggestions after the presets.
func (v *View) SetTitles(titles []string) {
	seen := make(map[string]bool, len(domain.RolePresets)+len(titles))
	merged := make([]string, 0, len(domain.RolePresets)+len(titles))
	for _, list := range [][]string{domain.RolePresets, titles} {
		for _, t := range list {
			k := strings.ToLower(t)
			if seen[k] {
				continue
			}
			seen[k] = true
			merged = append(merged, t)
		}
	}
	v.suggestions = merged
	v.suggestion = -1
}

// View renders the form.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Analyze CV"),
		"",
		v.role.View(),
		v.renderSuggestions(),
		"",
		v.cv.View(),
		"",
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderSuggestions() string {
	n := min(len(v.suggestions), maxSuggestions)
	parts := make([]string, 0, n)
	for i := range n {
		if i == v.suggestion {
			parts = append(parts, v.styles.Selected.Render(v.suggestions[i]))
		} else {
			parts = append(parts, v.styles.Muted.Render(v.suggestions[i]))
		}
	}
	return v.styles.Muted.Render("↑/↓ ") + strings.Join(parts, v.styles.Muted.Render(" · "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.role.SetWidth(width)
	v.cv.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Reset clears the role and error while keeping the CV path.
func (v *View) Reset() {
	v.role.Reset()
	v.err = nil
	v.busy = false
	v.suggestion = -1
	v.statusbar.Clear()
	v.statusbar.SetState(status.StateForm)
}

// Role returns the current role text.
func (v *View) Role() string {
	return v.role.Value()
}

// CVPath returns the current CV path.
func (v *View) CVPath() string {
	return v.cv.Value()
}

// Suggestions returns the role suggestions.
func (v *View) Suggestions() []string {
	return v.suggestions
}

// Busy reports whether an analysis is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the last error shown on the form.
func (v *View) Err() error {
	return v.err
}
