package domain

import "strings"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGroq is Groq's OpenAI-compatible cloud API.
	AIProviderGroq AIProvider = "groq"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google's Gemini API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderGroq, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p.IsValid() && !p.IsLocal()
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// APIKeyEnv returns the environment variable holding this provider's key.
func (p AIProvider) APIKeyEnv() string {
	switch p {
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderGroq:
		return "GROQ_API_KEY"
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case AIProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderGroq:
		return "Groq (cloud, free tier)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// VectorBackend selects where embedding records are persisted.
type VectorBackend string

// Available vector backends.
const (
	// VectorBackendSQLite persists the collection in a local SQLite file.
	VectorBackendSQLite VectorBackend = "sqlite"

	// VectorBackendRedis stores the collection in a RediSearch index.
	VectorBackendRedis VectorBackend = "redis"

	// VectorBackendMemory keeps the collection in process memory only.
	VectorBackendMemory VectorBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b VectorBackend) IsValid() bool {
	switch b {
	case VectorBackendSQLite, VectorBackendRedis, VectorBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b VectorBackend) String() string {
	return string(b)
}

// PathSettings holds the filesystem layout.
type PathSettings struct {
	// JobsDir holds job description files.
	JobsDir string

	// CVsDir holds student CV files.
	CVsDir string

	// StoreDir holds the persisted vector collection.
	StoreDir string

	// DefaultCV is used by analyze when no CV file is given.
	DefaultCV string
}

// ChunkingSettings controls the recursive splitter.
type ChunkingSettings struct {
	// Size is the maximum chunk length in characters.
	Size int

	// Overlap is the number of characters shared by adjacent chunks.
	Overlap int
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint override.
	BaseURL string

	// APIKey is the API key for hosted providers.
	APIKey string

	// Normalize rescales every vector to unit length.
	Normalize bool

	// RequestsPerSecond throttles hosted embedding calls. Zero disables throttling.
	RequestsPerSecond float64
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || e.Provider == AIProviderAnthropic || e.Provider == AIProviderGroq {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint override.
	BaseURL string

	// APIKey is the API key for hosted providers.
	APIKey string

	// Temperature is the sampling temperature.
	Temperature float64

	// MaxTokens caps the report length. Zero uses the provider default.
	MaxTokens int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// RetrievalSettings controls nearest-neighbour lookups.
type RetrievalSettings struct {
	// K is the number of job chunks fed to the prompt.
	K int
}

// IngestionSettings controls which files the loader accepts.
type IngestionSettings struct {
	// Extensions lists accepted file extensions including the dot.
	Extensions []string
}

// HasExtension reports whether ext is accepted, ignoring case.
func (s IngestionSettings) HasExtension(ext string) bool {
	for _, e := range s.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// VectorStoreSettings holds vector backend configuration.
type VectorStoreSettings struct {
	// Backend selects the persistence layer.
	Backend VectorBackend

	// Collection names the record set. Rebuilds replace it wholesale.
	Collection string

	// RedisAddr is the host:port of the Redis server.
	RedisAddr string

	// RedisPassword authenticates to Redis.
	RedisPassword string

	// RedisDB selects the Redis logical database.
	RedisDB int
}

// Settings holds all application settings.
type Settings struct {
	Paths       PathSettings
	Chunking    ChunkingSettings
	Embedding   EmbeddingSettings
	LLM         LLMSettings
	Retrieval   RetrievalSettings
	Ingestion   IngestionSettings
	VectorStore VectorStoreSettings
}

// DefaultSettings returns settings with the shipped defaults.
func DefaultSettings() Settings {
	return Settings{
		Paths: PathSettings{
			JobsDir:   "data/market_jobs",
			CVsDir:    "data/student_cvs",
			StoreDir:  "vector_store",
			DefaultCV: "data/student_cvs/my_cv.txt",
		},
		Chunking: ChunkingSettings{
			Size:    500,
			Overlap: 50,
		},
		Embedding: EmbeddingSettings{
			Provider:  AIProviderOllama,
			Model:     "all-minilm",
			Normalize: true,
		},
		LLM: LLMSettings{
			Provider:    AIProviderGroq,
			Model:       "llama-3.3-70b-versatile",
			Temperature: 0.3,
		},
		Retrieval: RetrievalSettings{
			K: 5,
		},
		Ingestion: IngestionSettings{
			Extensions: []string{".txt", ".pdf"},
		},
		VectorStore: VectorStoreSettings{
			Backend:    VectorBackendSQLite,
			Collection: "skill_gap_masr",
			RedisAddr:  "localhost:6379",
		},
	}
}

// AllLLMProviders returns providers that support chat completion.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderGroq,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderGemini,
		AIProviderOllama,
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderGemini,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "all-minilm",
		AIProviderOpenAI: "text-embedding-3-small",
		AIProviderGemini: "text-embedding-004",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGroq:      "llama-3.3-70b-versatile",
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderGemini:    "gemini-2.0-flash",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"all-minilm":        384,
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		// Gemini models
		"text-embedding-004": 768,
	}
}
