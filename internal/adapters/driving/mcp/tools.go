package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AnalyzeInput is the input schema for the analyze_gap tool.
type AnalyzeInput struct {
	Role   string `json:"role" jsonschema:"the target job role, e.g. Data Scientist"`
	CVText string `json:"cv_text" jsonschema:"the full plain text of the student's CV"`
}

// AnalyzeOutput is the output schema for the analyze_gap tool.
type AnalyzeOutput struct {
	Report string `json:"report"`
}

// JobsInput is the input schema for the relevant_jobs tool.
type JobsInput struct {
	Role string `json:"role" jsonschema:"the target job role to search for"`
	K    int    `json:"k,omitempty" jsonschema:"number of job chunks to return (default from settings)"`
}

// JobsOutput is the output schema for the relevant_jobs tool.
type JobsOutput struct {
	Results []JobOutput `json:"results"`
	Count   int         `json:"count"`
}

// JobOutput is a single job description chunk.
type JobOutput struct {
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

// TitlesInput is the empty input of the job_titles tool.
type TitlesInput struct{}

// TitlesOutput is the output schema for the job_titles tool.
type TitlesOutput struct {
	Titles []string `json:"titles"`
}

// IngestInput is the empty input of the ingest tool.
type IngestInput struct{}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	JobDocuments  int    `json:"job_documents"`
	CVDocuments   int    `json:"cv_documents"`
	Chunks        int    `json:"chunks"`
	StoreLocation string `json:"store_location"`
}

var errEmptyRole = errors.New("role must not be empty")

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_gap",
		Description: "Compare a CV against job market requirements for a role and return a markdown skill gap report",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "relevant_jobs",
		Description: "Find the job description excerpts most relevant to a role",
	}, s.handleRelevantJobs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "job_titles",
		Description: "List the distinct job titles in the indexed job descriptions",
	}, s.handleJobTitles)

	if s.ports.Ingestion != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest",
			Description: "Rebuild the vector store from the job description and CV directories",
		}, s.handleIngest)
	}
}

// handleAnalyze handles the analyze_gap tool invocation.
// Analysis failures come back as report text, never as tool errors.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	role := strings.TrimSpace(input.Role)
	if role == "" {
		return nil, AnalyzeOutput{}, errEmptyRole
	}

	report := s.ports.Analyzer.AnalyzeGap(ctx, input.CVText, role)
	return nil, AnalyzeOutput{Report: report}, nil
}

// handleRelevantJobs handles the relevant_jobs tool invocation.
func (s *Server) handleRelevantJobs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input JobsInput,
) (*mcp.CallToolResult, JobsOutput, error) {
	role := strings.TrimSpace(input.Role)
	if role == "" {
		return nil, JobsOutput{}, errEmptyRole
	}

	results, err := s.ports.Analyzer.GetRelevantJobs(ctx, role, input.K)
	if err != nil {
		return nil, JobsOutput{}, fmt.Errorf("retrieving jobs: %w", err)
	}

	output := JobsOutput{
		Results: make([]JobOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = JobOutput{
			Source:  results[i].Chunk.SourceName(),
			Score:   results[i].Score,
			Content: results[i].Chunk.Content,
		}
	}

	return nil, output, nil
}

// handleJobTitles handles the job_titles tool invocation.
func (s *Server) handleJobTitles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ TitlesInput,
) (*mcp.CallToolResult, TitlesOutput, error) {
	return nil, TitlesOutput{Titles: s.ports.Analyzer.JobTitles(ctx)}, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if s.ports.Ingestion == nil {
		return nil, IngestOutput{}, ErrIngestionDisabled
	}

	summary, err := s.ports.Ingestion.RunIngestion(ctx)
	if err != nil {
		return nil, IngestOutput{}, fmt.Errorf("ingestion: %w", err)
	}

	return nil, IngestOutput{
		JobDocuments:  summary.JobDocuments,
		CVDocuments:   summary.CVDocuments,
		Chunks:        summary.Chunks,
		StoreLocation: summary.StoreLocation,
	}, nil
}
