package mcp

import (
	"context"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// mockAnalyzer is a mock implementation of driving.GapAnalyzer.
type mockAnalyzer struct {
	results []domain.SearchResult
	titles  []string
	report  string
	err     error

	lastRole string
	lastK    int
	lastCV   string
}

func (m *mockAnalyzer) GetRelevantJobs(_ context.Context, role string, k int) ([]domain.SearchResult, error) {
	m.lastRole = role
	m.lastK = k
	return m.results, m.err
}

func (m *mockAnalyzer) AnalyzeGap(_ context.Context, cvText, role string) string {
	m.lastRole = role
	m.lastCV = cvText
	return m.report
}

func (m *mockAnalyzer) JobTitles(_ context.Context) []string {
	if m.titles == nil {
		return []string{}
	}
	return m.titles
}

// mockIngestion is a mock implementation of driving.IngestionService.
type mockIngestion struct {
	summary *domain.IngestionSummary
	err     error
	calls   int
}

func (m *mockIngestion) RunIngestion(_ context.Context) (*domain.IngestionSummary, error) {
	m.calls++
	return m.summary, m.err
}

func jobResult(source, content string, score float64) domain.SearchResult {
	return domain.SearchResult{
		Chunk: domain.Chunk{
			Content: content,
			Metadata: map[string]any{
				domain.MetaDocType:    string(domain.DocTypeJob),
				domain.MetaSourceName: source,
			},
		},
		Score: score,
	}
}
