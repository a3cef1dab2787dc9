// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	geminiembed "github.com/custodia-labs/skillgap/internal/adapters/driven/embedding/gemini"
	"github.com/custodia-labs/skillgap/internal/adapters/driven/embedding/normalized"
	ollamaembed "github.com/custodia-labs/skillgap/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/skillgap/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/skillgap/internal/adapters/driven/embedding/ratelimit"
	anthropicllm "github.com/custodia-labs/skillgap/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/skillgap/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/skillgap/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/skillgap/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the embedding service for settings,
// throttled when RequestsPerSecond is set and unit-normalised when
// Normalize is set.
func CreateEmbeddingService(ctx context.Context, settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if err := checkKey(settings.Provider, settings.APIKey); err != nil {
		return nil, err
	}

	var (
		svc driven.EmbeddingService
		err error
	)
	dimensions := domain.EmbeddingDimensions()[settings.Model]

	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: dimensions,
		})

	case domain.AIProviderOpenAI:
		svc, err = openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderGemini:
		svc, err = geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: dimensions,
		})

	case domain.AIProviderAnthropic, domain.AIProviderGroq:
		return nil, fmt.Errorf("%s does not offer embeddings, use ollama, openai or gemini: %w",
			settings.Provider, domain.ErrUnsupportedProvider)

	default:
		return nil, fmt.Errorf("embedding provider %q: %w", settings.Provider, domain.ErrUnsupportedProvider)
	}
	if err != nil {
		return nil, err
	}

	svc = ratelimit.Wrap(svc, ratelimit.Config{RequestsPerSecond: settings.RequestsPerSecond})
	if settings.Normalize {
		svc = normalized.Wrap(svc)
	}
	return svc, nil
}

// CreateLLMService creates the chat-completion service for settings.
func CreateLLMService(ctx context.Context, settings domain.LLMSettings) (driven.LLMService, error) {
	if err := checkKey(settings.Provider, settings.APIKey); err != nil {
		return nil, err
	}

	var (
		svc driven.LLMService
		err error
	)

	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOpenAI:
		svc, err = openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderGroq:
		svc, err = openaillm.NewGroqService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		svc, err = anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderGemini:
		svc, err = geminillm.NewLLMService(ctx, geminillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("LLM provider %q: %w", settings.Provider, domain.ErrUnsupportedProvider)
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// checkKey rejects hosted providers without an API key.
func checkKey(provider domain.AIProvider, apiKey string) error {
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("set %s in your environment or .env file: %w", provider.APIKeyEnv(), domain.ErrMissingAPIKey)
	}
	return nil
}

// ping validates connectivity with a bounded timeout.
func ping(ctx context.Context, p interface{ Ping(context.Context) error }) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return p.Ping(ctx)
}
