package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

func TestServer_handleAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("returns report", func(t *testing.T) {
		analyzer := &mockAnalyzer{report: "## Gap Report"}
		server, err := NewServer(&Ports{Analyzer: analyzer})
		require.NoError(t, err)

		_, output, err := server.handleAnalyze(ctx, nil, AnalyzeInput{
			Role:   "  Data Scientist ",
			CVText: "Python, SQL",
		})

		require.NoError(t, err)
		assert.Equal(t, "## Gap Report", output.Report)
		assert.Equal(t, "Data Scientist", analyzer.lastRole)
		assert.Equal(t, "Python, SQL", analyzer.lastCV)
	})

	t.Run("empty role is rejected", func(t *testing.T) {
		server, err := NewServer(&Ports{Analyzer: &mockAnalyzer{}})
		require.NoError(t, err)

		_, _, err = server.handleAnalyze(ctx, nil, AnalyzeInput{Role: "   ", CVText: "cv"})
		assert.ErrorIs(t, err, errEmptyRole)
	})
}

func TestServer_handleRelevantJobs(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked results", func(t *testing.T) {
		analyzer := &mockAnalyzer{
			results: []domain.SearchResult{
				jobResult("ds.txt", "JOB TITLE: Data Scientist", 0.91),
				jobResult("ml.txt", "JOB TITLE: ML Engineer", 0.72),
			},
		}
		server, err := NewServer(&Ports{Analyzer: analyzer})
		require.NoError(t, err)

		_, output, err := server.handleRelevantJobs(ctx, nil, JobsInput{Role: "Data Scientist", K: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		require.Len(t, output.Results, 2)
		assert.Equal(t, "ds.txt", output.Results[0].Source)
		assert.Equal(t, 0.91, output.Results[0].Score)
		assert.Equal(t, "JOB TITLE: ML Engineer", output.Results[1].Content)
		assert.Equal(t, 2, analyzer.lastK)
	})

	t.Run("zero k passes through for the default", func(t *testing.T) {
		analyzer := &mockAnalyzer{}
		server, err := NewServer(&Ports{Analyzer: analyzer})
		require.NoError(t, err)

		_, output, err := server.handleRelevantJobs(ctx, nil, JobsInput{Role: "Data Scientist"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Equal(t, 0, analyzer.lastK)
	})

	t.Run("returns error on retrieval failure", func(t *testing.T) {
		analyzer := &mockAnalyzer{err: domain.ErrMissingVectorStore}
		server, err := NewServer(&Ports{Analyzer: analyzer})
		require.NoError(t, err)

		_, _, err = server.handleRelevantJobs(ctx, nil, JobsInput{Role: "Data Scientist"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingVectorStore)
		assert.Contains(t, err.Error(), "retrieving jobs")
	})

	t.Run("empty role is rejected", func(t *testing.T) {
		server, err := NewServer(&Ports{Analyzer: &mockAnalyzer{}})
		require.NoError(t, err)

		_, _, err = server.handleRelevantJobs(ctx, nil, JobsInput{})
		assert.ErrorIs(t, err, errEmptyRole)
	})
}

func TestServer_handleJobTitles(t *testing.T) {
	server, err := NewServer(&Ports{Analyzer: &mockAnalyzer{titles: []string{"Data Analyst", "Data Scientist"}}})
	require.NoError(t, err)

	_, output, err := server.handleJobTitles(context.Background(), nil, TitlesInput{})

	require.NoError(t, err)
	assert.Equal(t, []string{"Data Analyst", "Data Scientist"}, output.Titles)
}

func TestServer_handleIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns summary", func(t *testing.T) {
		ingestion := &mockIngestion{summary: &domain.IngestionSummary{
			JobDocuments:  4,
			CVDocuments:   2,
			Chunks:        17,
			StoreLocation: "vector_store/skillgap.db#skill_gap_masr",
		}}
		server, err := NewServer(&Ports{Analyzer: &mockAnalyzer{}, Ingestion: ingestion})
		require.NoError(t, err)

		_, output, err := server.handleIngest(ctx, nil, IngestInput{})

		require.NoError(t, err)
		assert.Equal(t, 1, ingestion.calls)
		assert.Equal(t, 4, output.JobDocuments)
		assert.Equal(t, 2, output.CVDocuments)
		assert.Equal(t, 17, output.Chunks)
		assert.Equal(t, "vector_store/skillgap.db#skill_gap_masr", output.StoreLocation)
	})

	t.Run("ingestion error is returned", func(t *testing.T) {
		ingestion := &mockIngestion{err: errors.New("load job descriptions: not found")}
		server, err := NewServer(&Ports{Analyzer: &mockAnalyzer{}, Ingestion: ingestion})
		require.NoError(t, err)

		_, _, err = server.handleIngest(ctx, nil, IngestInput{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ingestion")
	})

	t.Run("without ingestion port", func(t *testing.T) {
		server, err := NewServer(&Ports{Analyzer: &mockAnalyzer{}})
		require.NoError(t, err)

		_, _, err = server.handleIngest(ctx, nil, IngestInput{})
		assert.ErrorIs(t, err, ErrIngestionDisabled)
	})
}
