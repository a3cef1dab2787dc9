package driving

import "github.com/custodia-labs/skillgap/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns defaults overlaid with the config file and environment.
	Get() (*domain.Settings, error)

	// Set validates and persists a single dotted key such as "llm.model".
	Set(key, value string) error

	// Keys lists every key accepted by Set, sorted.
	Keys() []string

	// SetLLMProvider configures the LLM provider with its default model.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetEmbeddingProvider configures the embedding provider with its default model.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks that the merged settings can run an analysis.
	Validate() error
}
