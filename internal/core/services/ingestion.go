package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/core/ports/driving"
	"github.com/custodia-labs/skillgap/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.IngestionService = (*IngestionService)(nil)

// IngestionService rebuilds the vector collection from the input directories.
type IngestionService struct {
	loader   driven.DocumentLoader
	pipeline driven.PostProcessorPipeline
	index    *VectorIndex
	paths    domain.PathSettings
}

// NewIngestionService creates a new ingestion service.
func NewIngestionService(
	loader driven.DocumentLoader,
	pipeline driven.PostProcessorPipeline,
	index *VectorIndex,
	paths domain.PathSettings,
) *IngestionService {
	return &IngestionService{
		loader:   loader,
		pipeline: pipeline,
		index:    index,
		paths:    paths,
	}
}

// RunIngestion performs a full rebuild.
func (s *IngestionService) RunIngestion(ctx context.Context) (*domain.IngestionSummary, error) {
	logger.Section("Ingestion")

	// 1. Load job descriptions
	jobs, err := s.loader.Load(ctx, s.paths.JobsDir, domain.DocTypeJob)
	if err != nil {
		return nil, fmt.Errorf("load job descriptions: %w", err)
	}
	logger.Info("Loaded %d job description(s) from %s", len(jobs), s.paths.JobsDir)

	// 2. Load CVs
	cvs, err := s.loader.Load(ctx, s.paths.CVsDir, domain.DocTypeCV)
	if err != nil {
		return nil, fmt.Errorf("load CVs: %w", err)
	}
	logger.Info("Loaded %d CV(s) from %s", len(cvs), s.paths.CVsDir)

	docs := make([]domain.Document, 0, len(jobs)+len(cvs))
	docs = append(docs, jobs...)
	docs = append(docs, cvs...)
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}

	// 3. Chunk
	chunks, err := s.pipeline.ProcessAll(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("chunk documents: %w", err)
	}
	logger.Info("Created %d chunk(s) from %d document(s)", len(chunks), len(docs))
	if logger.Enabled(logger.LevelDebug) {
		logChunkCounts(chunks)
	}

	// 4. Embed and replace the collection
	if err := s.index.Write(ctx, chunks); err != nil {
		return nil, err
	}
	logger.Info("Stored %d chunk(s) in %s", len(chunks), s.index.Location())

	return &domain.IngestionSummary{
		JobDocuments:  len(jobs),
		CVDocuments:   len(cvs),
		Chunks:        len(chunks),
		StoreLocation: s.index.Location(),
	}, nil
}

// logChunkCounts prints how many chunks each source file produced.
func logChunkCounts(chunks []domain.Chunk) {
	counts := make(map[string]int)
	var order []string
	for i := range chunks {
		name := chunks[i].SourceName()
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}
	for _, name := range order {
		logger.Debug("  %s: %d chunk(s)", name, counts[name])
	}
}
