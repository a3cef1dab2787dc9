// Package report shows a generated gap report in a scrollable viewport.
package report

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/skillgap/internal/adapters/driving/render"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// chromeHeight is the rows taken by the title and status bar.
const chromeHeight = 4

// View displays a markdown gap report.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	viewport  viewport.Model
	statusbar *status.Bar

	outDir string
	role   string
	report string
	raw    bool

	width  int
	height int
	ready  bool
}

// NewView creates a report view that saves reports under outDir.
func NewView(s *styles.Styles, km *keymap.KeyMap, outDir string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if outDir == "" {
		outDir = "."
	}

	v := &View{
		styles:    s,
		keymap:    km,
		viewport:  viewport.New(80, 20),
		statusbar: status.NewBar(s, km),
		outDir:    outDir,
		width:     80,
		height:    24,
	}
	v.statusbar.SetState(status.StateReport)
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the report view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ReportSaved:
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.statusbar.SetState(status.StateReport)
		v.statusbar.SetMessage("Saved " + msg.Path)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewAnalyze}
			}
		case key.Matches(msg, v.keymap.Save):
			return v, v.save()
		case key.Matches(msg, v.keymap.Raw):
			v.raw = !v.raw
			v.refresh()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// save writes the raw markdown next to other reports.
func (v *View) save() tea.Cmd {
	if v.report == "" {
		return nil
	}
	path := filepath.Join(v.outDir, domain.ReportFilename(v.role))
	report := v.report

	return func() tea.Msg {
		err := os.WriteFile(path, []byte(report), 0o600)
		return messages.ReportSaved{Path: path, Err: err}
	}
}

// SetReport replaces the displayed report and scrolls to the top.
func (v *View) SetReport(role, report string) {
	v.role = role
	v.report = report
	v.raw = false
	v.statusbar.Clear()
	v.statusbar.SetState(status.StateReport)
	v.refresh()
	v.viewport.GotoTop()
}

func (v *View) refresh() {
	if v.raw {
		v.viewport.SetContent(v.report)
		return
	}
	v.viewport.SetContent(render.MarkdownOrPlain(v.report, v.viewport.Width))
}

// View renders the report.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	title := v.styles.Title.Render("Skill gap report: " + v.role)
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		v.viewport.View(),
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.viewport.Width = width
	v.viewport.Height = max(height-chromeHeight, 1)
	v.statusbar.SetWidth(width)
	if v.report != "" {
		v.refresh()
	}
}

// Role returns the role the report was generated for.
func (v *View) Role() string {
	return v.role
}

// Report returns the raw markdown.
func (v *View) Report() string {
	return v.report
}

// Raw reports whether markdown is shown unrendered.
func (v *View) Raw() bool {
	return v.raw
}
