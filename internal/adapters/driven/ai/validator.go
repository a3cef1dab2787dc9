package ai

import (
	"context"
	"fmt"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates AI provider configurations.
type ConfigValidator struct{}

// NewConfigValidator creates a new AI config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding builds the embedding service and pings it.
func (v *ConfigValidator) ValidateEmbedding(ctx context.Context, config domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(ctx, config)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := ping(ctx, svc); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	return nil
}

// ValidateLLM builds the LLM service and pings it.
func (v *ConfigValidator) ValidateLLM(ctx context.Context, config domain.LLMSettings) error {
	svc, err := CreateLLMService(ctx, config)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := ping(ctx, svc); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	return nil
}
