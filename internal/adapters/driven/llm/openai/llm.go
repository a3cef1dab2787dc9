// Package openai provides an LLM service adapter for OpenAI-compatible chat
// completion APIs, including Groq, built on the official OpenAI Go SDK.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultLLMModel = "gpt-4o-mini"

	// GroqBaseURL is Groq's OpenAI-compatible endpoint.
	GroqBaseURL = "https://api.groq.com/openai/v1/"
	// DefaultGroqModel is the model used for Groq when none is set.
	DefaultGroqModel = "llama-3.3-70b-versatile"
)

// LLMConfig holds configuration for the OpenAI LLM service.
type LLMConfig struct {
	// APIKey is the API key (required).
	APIKey string

	// BaseURL overrides the endpoint. Use GroqBaseURL for Groq.
	BaseURL string

	// Model is the LLM model to use (default: gpt-4o-mini).
	Model string

	// Timeout bounds each request. Zero leaves it to the caller's context.
	Timeout time.Duration

	// Name labels errors, e.g. "openai" or "groq".
	Name string
}

// LLMService provides LLM operations over the chat completions API.
type LLMService struct {
	client openai.Client
	model  string
	name   string
}

// NewLLMService creates a new OpenAI-compatible LLM service.
func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.Name == "" {
		cfg.Name = "openai"
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Name, domain.ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}

	// A failed completion is reported once, never replayed by the SDK.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &LLMService{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		name:   cfg.Name,
	}, nil
}

// NewGroqService creates an LLM service pointed at Groq.
func NewGroqService(cfg LLMConfig) (*LLMService, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = GroqBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGroqModel
	}
	cfg.Name = "groq"
	return NewLLMService(cfg)
}

// Generate produces text completion from a prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	messages := []driven.ChatMessage{
		{Role: driven.RoleUser, Content: prompt},
	}
	return s.Chat(ctx, messages, driven.ChatOptions(opts))
}

// Chat sends the conversation and returns the first choice.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(s.model),
		Messages:    toMessages(messages),
		Temperature: openai.Float(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", s.wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned: %w", s.name, domain.ErrLLMUnavailable)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// toMessages converts chat messages to SDK params.
func toMessages(messages []driven.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case driven.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case driven.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping lists models, which validates the key without running a completion.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.client.Models.List(ctx); err != nil {
		return fmt.Errorf("%s: ping failed: %w", s.name, s.wrapError(err))
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}

// wrapError maps SDK status errors onto domain errors.
func (s *LLMService) wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: %w: %w", s.name, domain.ErrAuthInvalid, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%s: %w: %w", s.name, domain.ErrRateLimited, err)
		}
	}
	return fmt.Errorf("%s: %w: %w", s.name, domain.ErrLLMUnavailable, err)
}
