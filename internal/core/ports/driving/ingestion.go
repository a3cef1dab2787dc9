package driving

import (
	"context"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// IngestionService rebuilds the vector collection from the input directories.
type IngestionService interface {
	// RunIngestion loads jobs and CVs, chunks and embeds them, and replaces
	// the stored collection. It fails without touching the store when a
	// directory is missing or no documents were found.
	RunIngestion(ctx context.Context) (*domain.IngestionSummary, error)
}
