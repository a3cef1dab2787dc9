package driven

import (
	"context"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// PostProcessor is one stage of chunk production. The first stage gets a
// nil chunks slice and creates chunks from doc; later stages rewrite them.
type PostProcessor interface {
	Name() string
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline runs the stages in registration order.
type PostProcessorPipeline interface {
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)

	// ProcessAll keeps chunks grouped by document, in document order.
	ProcessAll(ctx context.Context, docs []domain.Document) ([]domain.Chunk, error)
}
