package driven

import (
	"context"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// AIConfigValidator validates AI provider configurations by testing
// connectivity to the underlying services.
type AIConfigValidator interface {
	// ValidateEmbedding builds the embedding service and pings it.
	ValidateEmbedding(ctx context.Context, config domain.EmbeddingSettings) error

	// ValidateLLM builds the LLM service and pings it.
	ValidateLLM(ctx context.Context, config domain.LLMSettings) error
}
