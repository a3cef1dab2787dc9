package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/core/ports/driving"
	"github.com/custodia-labs/skillgap/internal/logger"
)

// Ensure GapAnalyzer implements the interface.
var _ driving.GapAnalyzer = (*GapAnalyzer)(nil)

// NoJobsMessage is returned instead of a report when retrieval finds nothing.
const NoJobsMessage = "⚠️ **No relevant job descriptions found!**\n\n" +
	"Please make sure you've run the ingestion pipeline:\n" +
	"```bash\nskillgap ingest\n```\n\n" +
	"And that you have job description files in `data/market_jobs/`"

// contextSeparator joins job chunks in the prompt context.
const contextSeparator = "\n\n---\n\n"

// unknownSource labels chunks without a source_name.
const unknownSource = "Unknown"

// AnalysisErrorMessage renders an external failure as a report.
func AnalysisErrorMessage(err error) string {
	return fmt.Sprintf("❌ **Error generating analysis:** %v\n\n"+
		"This might be a temporary API issue. Please try again.", err)
}

// AnalyzerConfig holds the tunables of a GapAnalyzer.
type AnalyzerConfig struct {
	// K is the default number of job chunks retrieved.
	K int

	// Temperature is passed to the LLM.
	Temperature float64

	// MaxTokens caps the report length. Zero uses the provider default.
	MaxTokens int
}

// GapAnalyzer retrieves job context and asks the LLM for a gap report.
// It holds no per-request state and is safe to share.
type GapAnalyzer struct {
	index   *VectorIndex
	llm     driven.LLMService
	prompts driven.PromptStore
	cfg     AnalyzerConfig
}

// NewGapAnalyzer creates a new gap analyzer.
func NewGapAnalyzer(
	index *VectorIndex,
	llm driven.LLMService,
	prompts driven.PromptStore,
	cfg AnalyzerConfig,
) *GapAnalyzer {
	if cfg.K <= 0 {
		cfg.K = domain.DefaultSettings().Retrieval.K
	}
	return &GapAnalyzer{
		index:   index,
		llm:     llm,
		prompts: prompts,
		cfg:     cfg,
	}
}

// GetRelevantJobs returns up to k job chunks nearest to role.
func (a *GapAnalyzer) GetRelevantJobs(ctx context.Context, role string, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		k = a.cfg.K
	}
	logger.Debug("Retrieving %d job chunk(s) for role %q", k, role)
	return a.index.Search(ctx, role, k, domain.JobsOnly())
}

// AnalyzeGap returns a markdown gap report for cvText against role.
func (a *GapAnalyzer) AnalyzeGap(ctx context.Context, cvText, role string) string {
	logger.Section("Gap Analysis")

	jobs, err := a.GetRelevantJobs(ctx, role, a.cfg.K)
	if err != nil {
		if errors.Is(err, domain.ErrMissingVectorStore) {
			logger.Debug("Vector store missing, no context to analyse")
			return NoJobsMessage
		}
		logger.Warn("Retrieval failed: %v", err)
		return AnalysisErrorMessage(err)
	}
	if len(jobs) == 0 {
		logger.Debug("No job chunks matched role %q", role)
		return NoJobsMessage
	}
	logger.Debug("Retrieved %d job chunk(s)", len(jobs))

	messages, err := a.buildMessages(role, BuildJobContext(jobs), cvText)
	if err != nil {
		return AnalysisErrorMessage(err)
	}

	if a.llm == nil {
		return AnalysisErrorMessage(domain.ErrLLMUnavailable)
	}

	logger.Info("Calling %s", a.llm.ModelName())
	report, err := a.llm.Chat(ctx, messages, driven.ChatOptions{
		Temperature: a.cfg.Temperature,
		MaxTokens:   a.cfg.MaxTokens,
	})
	if err != nil {
		logger.Warn("LLM call failed: %v", err)
		return AnalysisErrorMessage(err)
	}
	return report
}

// JobTitles returns the sorted unique titles of indexed job descriptions.
func (a *GapAnalyzer) JobTitles(ctx context.Context) []string {
	chunks, err := a.index.List(ctx, domain.JobsOnly())
	if err != nil {
		logger.Debug("Listing job chunks failed: %v", err)
		return []string{}
	}
	return domain.UniqueSortedTitles(chunks)
}

// buildMessages fills the prompt templates.
func (a *GapAnalyzer) buildMessages(role, jobContext, cvText string) ([]driven.ChatMessage, error) {
	system, err := a.prompts.Load(driven.PromptGapSystem)
	if err != nil {
		return nil, fmt.Errorf("load system prompt: %w", err)
	}
	human, err := a.prompts.Load(driven.PromptGapHuman)
	if err != nil {
		return nil, fmt.Errorf("load human prompt: %w", err)
	}

	return []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: system},
		{Role: driven.RoleUser, Content: FillTemplate(human, role, jobContext, cvText)},
	}, nil
}

// FillTemplate substitutes {role}, {job_context} and {cv_text} in one pass,
// so placeholder-like text inside a CV is left alone.
func FillTemplate(template, role, jobContext, cvText string) string {
	return strings.NewReplacer(
		"{role}", role,
		"{job_context}", jobContext,
		"{cv_text}", cvText,
	).Replace(template)
}

// BuildJobContext renders retrieved chunks as "**Source:** name" blocks.
// Chunk content is copied verbatim.
func BuildJobContext(results []domain.SearchResult) string {
	blocks := make([]string, 0, len(results))
	for i := range results {
		name := results[i].Chunk.SourceName()
		if name == "" {
			name = unknownSource
		}
		blocks = append(blocks, "**Source:** "+name+"\n\n"+results[i].Chunk.Content)
	}
	return strings.Join(blocks, contextSeparator)
}
