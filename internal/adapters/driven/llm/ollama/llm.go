// Package ollama generates reports with a local Ollama model through
// /api/chat.
package ollama

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/skillgap/internal/adapters/driven/ollamaapi"
	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

const DefaultLLMModel = "llama3.2"

// LLMConfig configures the service. A zero Timeout means none: local
// models on a laptop can take minutes, and the caller's context decides.
type LLMConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMService is a non-streaming Ollama chat client.
type LLMService struct {
	api   *ollamaapi.Client
	model string
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Temperature is a pointer because zero is a real setting and
// omitempty would drop it.
type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  struct {
		NumPredict  int      `json:"num_predict,omitempty"`
		Temperature *float64 `json:"temperature,omitempty"`
	} `json:"options"`
}

type chatResponse struct {
	Message message `json:"message"`
	Error   string  `json:"error,omitempty"`
}

// NewLLMService returns a client for cfg.
func NewLLMService(cfg LLMConfig) *LLMService {
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	return &LLMService{
		api:   ollamaapi.New(cfg.BaseURL, cfg.Timeout),
		model: cfg.Model,
	}
}

// Generate sends prompt as a single user message.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	return s.Chat(ctx, []driven.ChatMessage{{Role: driven.RoleUser, Content: prompt}}, driven.ChatOptions(opts))
}

// Chat returns the assistant reply, trimmed.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	req := chatRequest{Model: s.model, Messages: make([]message, len(messages))}
	for i, m := range messages {
		req.Messages[i] = message{Role: m.Role, Content: m.Content}
	}
	temperature := opts.Temperature
	req.Options.Temperature = &temperature
	req.Options.NumPredict = opts.MaxTokens

	var resp chatResponse
	if err := s.api.Post(ctx, "/api/chat", req, &resp); err != nil {
		return "", fmt.Errorf("ollama %s: %w: %w", s.model, domain.ErrLLMUnavailable, err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("ollama %s: %s: %w", s.model, resp.Error, domain.ErrLLMUnavailable)
	}
	return strings.TrimSpace(resp.Message.Content), nil
}

// ModelName returns the chat model.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping checks that the server is up and the model is pulled.
func (s *LLMService) Ping(ctx context.Context) error {
	if err := s.api.HasModel(ctx, s.model); err != nil {
		return fmt.Errorf("ollama: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *LLMService) Close() error {
	return nil
}
