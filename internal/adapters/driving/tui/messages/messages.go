// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewAnalyze is the role and CV form.
	ViewAnalyze
	// ViewReport shows a generated gap report.
	ViewReport
	// ViewJobs lists job chunks relevant to a role.
	ViewJobs
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewAnalyze:
		return "analyze"
	case ViewReport:
		return "report"
	case ViewJobs:
		return "jobs"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// AnalysisRequested asks the app to run a gap analysis.
type AnalysisRequested struct {
	Role   string
	CVPath string
}

// ReportReady carries a finished gap report. Analysis failures arrive
// as report text; Err is set only when the CV could not be read.
type ReportReady struct {
	Role   string
	Report string
	Err    error
}

// ReportSaved signals the report was written to disk.
type ReportSaved struct {
	Path string
	Err  error
}

// JobsLoaded carries job chunks retrieved for a role.
type JobsLoaded struct {
	Role    string
	Results []domain.SearchResult
	Err     error
}

// TitlesLoaded carries the distinct job titles in the store.
type TitlesLoaded struct {
	Titles []string
}

// IngestionRequested asks the app to rebuild the vector store.
type IngestionRequested struct{}

// IngestionCompleted carries the result of a rebuild.
type IngestionCompleted struct {
	Summary *domain.IngestionSummary
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
