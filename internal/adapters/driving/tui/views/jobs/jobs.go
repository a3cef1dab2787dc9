// Package jobs lists the job description chunks retrieved for a role.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driving"
)

// ErrNoAnalyzer indicates that no gap analyzer was provided.
var ErrNoAnalyzer = errors.New("gap analyzer is required")

// View has a role input above a list of matching job chunks.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	list      *list.JobList
	statusbar *status.Bar

	analyzer driving.GapAnalyzer
	ctx      context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
}

// NewView creates a new jobs view.
func NewView(s *styles.Styles, km *keymap.KeyMap, analyzer driving.GapAnalyzer) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewField(s, "Role", "e.g. Backend Developer"),
		list:       list.NewJobList(s),
		statusbar:  status.NewBar(s, km),
		analyzer:   analyzer,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the role input.
func (v *View) Init() tea.Cmd {
	return v.input.Focus()
}

// Update handles messages for the jobs view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.JobsLoaded:
		v.handleJobsLoaded(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if key.Matches(msg, v.keymap.Back) {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if key.Matches(msg, v.keymap.Select) {
			role := strings.TrimSpace(v.input.Value())
			if role == "" {
				return v, nil
			}
			v.statusbar.SetState(status.StateWorking)
			v.statusbar.SetMessage("Searching")
			v.focusInput = false
			v.input.Blur()
			return v, v.loadJobs(role)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case key.Matches(msg, v.keymap.Up):
		v.list.MoveUp()
	case key.Matches(msg, v.keymap.Down):
		v.list.MoveDown()
	case key.Matches(msg, v.keymap.NewSearch):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}
	return v, nil
}

// loadJobs retrieves job chunks for a role using the configured k.
func (v *View) loadJobs(role string) tea.Cmd {
	analyzer := v.analyzer
	ctx := v.ctx
	return func() tea.Msg {
		if analyzer == nil {
			return messages.ErrorOccurred{Err: ErrNoAnalyzer}
		}
		results, err := analyzer.GetRelevantJobs(ctx, role, 0)
		return messages.JobsLoaded{Role: role, Results: results, Err: err}
	}
}

func (v *View) handleJobsLoaded(msg messages.JobsLoaded) {
	if msg.Err != nil {
		v.err = msg.Err
		v.list.SetResults(nil)
		v.statusbar.SetState(status.StateError)
		if errors.Is(msg.Err, domain.ErrMissingVectorStore) {
			v.statusbar.SetMessage("no index yet, rebuild it from the menu")
		} else if hint := domain.Hint(msg.Err); hint != "" {
			v.statusbar.SetMessage(msg.Err.Error() + " (" + hint + ")")
		} else {
			v.statusbar.SetMessage(msg.Err.Error())
		}
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
}

// View renders the jobs view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Browse Jobs"),
		"",
		v.input.View(),
		"",
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, max(height-10, 4))
	v.statusbar.SetWidth(width)
}

// Reset returns the view to input mode with no results.
func (v *View) Reset() {
	v.input.Reset()
	v.list.SetResults(nil)
	v.statusbar.Clear()
	v.err = nil
	v.focusInput = true
}

// Results returns the current results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the selected result index.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// InputFocused reports whether keys go to the role input.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
