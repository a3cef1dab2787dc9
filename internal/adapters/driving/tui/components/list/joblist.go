// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// linesPerResult is the rendered height of one job entry.
const linesPerResult = 2

// JobList displays retrieved job chunks in a navigable list.
type JobList struct {
	results  []domain.SearchResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewJobList creates a new job list component.
func NewJobList(s *styles.Styles) *JobList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &JobList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the job list.
func (l *JobList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *JobList) Update(msg tea.Msg) (*JobList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible window of results around the selection.
func (l *JobList) View() string {
	if len(l.results) == 0 {
		return l.styles.Muted.Render("No matching job descriptions")
	}

	lines := make([]string, 0, len(l.results)*linesPerResult+2)
	header := l.styles.Subtitle.Render(fmt.Sprintf("Job matches (%d)", len(l.results)))
	lines = append(lines, header, "")

	visible := (l.height - 2) / linesPerResult
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.results))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderResult(i, &l.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats one job chunk as a score/source line and a preview line.
func (l *JobList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	source := result.Chunk.SourceName()
	if source == "" {
		source = "(unknown source)"
	}
	maxSourceLen := max(l.width-14, 10)
	source = truncate(source, maxSourceLen)

	score := l.styles.Score(result.Score).Render(fmt.Sprintf("%.3f", result.Score))
	var head string
	if index == l.selected {
		head = l.styles.Selected.Render(indicator+source) + "  " + score
	} else {
		head = l.styles.Normal.Render(indicator) + l.styles.Source.Render(source) + "  " + score
	}

	preview := strings.Join(strings.Fields(result.Chunk.Content), " ")
	preview = truncate(preview, max(l.width-6, 20))

	return head + "\n" + l.styles.Muted.Render("    "+preview)
}

// truncate shortens s to n runes with a trailing ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// SetResults updates the list and resets the selection.
func (l *JobList) SetResults(results []domain.SearchResult) {
	l.results = results
	l.selected = 0
}

// Results returns the current results.
func (l *JobList) Results() []domain.SearchResult {
	return l.results
}

// Selected returns the index of the selected result.
func (l *JobList) Selected() int {
	return l.selected
}

// SelectedResult returns the currently selected result, or nil if none.
func (l *JobList) SelectedResult() *domain.SearchResult {
	if len(l.results) == 0 {
		return nil
	}
	return &l.results[l.selected]
}

// MoveUp moves selection up.
func (l *JobList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *JobList) MoveDown() {
	if l.selected < len(l.results)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *JobList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of results.
func (l *JobList) Count() int {
	return len(l.results)
}
