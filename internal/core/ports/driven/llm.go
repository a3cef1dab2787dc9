package driven

import "context"

// LLMService writes the gap report. OpenAI, Groq, Anthropic, Gemini and
// Ollama adapters implement it.
type LLMService interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Chat sends the whole conversation and returns the reply text.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	ModelName() string
	Ping(ctx context.Context) error
	Close() error
}

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// GenerateOptions tunes a single-prompt call. Zero MaxTokens leaves the
// provider default in place.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
}

// ChatMessage is one turn; Role is a Role* constant.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatOptions mirrors GenerateOptions for Chat.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}

// SplitSystem separates system messages from the conversation.
// Providers with a dedicated system field (Anthropic, Gemini) use it.
func SplitSystem(messages []ChatMessage) (string, []ChatMessage) {
	var system string
	rest := make([]ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
