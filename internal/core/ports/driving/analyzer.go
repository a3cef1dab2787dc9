package driving

import (
	"context"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// GapAnalyzer compares a CV against retrieved job descriptions.
// One instance is constructed per process and shared by every front end.
type GapAnalyzer interface {
	// GetRelevantJobs returns up to k job chunks nearest to role.
	// A k of zero or less uses the configured default.
	GetRelevantJobs(ctx context.Context, role string, k int) ([]domain.SearchResult, error)

	// AnalyzeGap returns a markdown report. It never fails: missing data
	// and LLM errors are reported as renderable messages.
	AnalyzeGap(ctx context.Context, cvText, role string) string

	// JobTitles returns the sorted unique titles of indexed job descriptions.
	// Returns an empty slice when the store is missing or unreadable.
	JobTitles(ctx context.Context) []string
}
