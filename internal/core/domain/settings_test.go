package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, 500, s.Chunking.Size)
	assert.Equal(t, 50, s.Chunking.Overlap)
	assert.Equal(t, 5, s.Retrieval.K)
	assert.InDelta(t, 0.3, s.LLM.Temperature, 1e-9)
	assert.Equal(t, []string{".txt", ".pdf"}, s.Ingestion.Extensions)
	assert.Equal(t, AIProviderGroq, s.LLM.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", s.LLM.Model)
	assert.Equal(t, AIProviderOllama, s.Embedding.Provider)
	assert.True(t, s.Embedding.Normalize)
	assert.Equal(t, VectorBackendSQLite, s.VectorStore.Backend)
	assert.Equal(t, "data/market_jobs", s.Paths.JobsDir)
	assert.Equal(t, "data/student_cvs", s.Paths.CVsDir)
}

func TestAIProvider(t *testing.T) {
	assert.True(t, AIProviderGroq.IsValid())
	assert.False(t, AIProvider("cohere").IsValid())

	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderGroq.RequiresAPIKey())
	assert.True(t, AIProviderGemini.RequiresAPIKey())
	assert.False(t, AIProvider("cohere").RequiresAPIKey())

	assert.Equal(t, "GROQ_API_KEY", AIProviderGroq.APIKeyEnv())
	assert.Equal(t, "", AIProviderOllama.APIKeyEnv())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	assert.True(t, LLMSettings{Provider: AIProviderOllama}.IsConfigured())
	assert.False(t, LLMSettings{Provider: AIProviderGroq}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderGroq, APIKey: "gsk"}.IsConfigured())
	assert.False(t, LLMSettings{}.IsConfigured())
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	assert.True(t, EmbeddingSettings{Provider: AIProviderOllama}.IsConfigured())
	assert.False(t, EmbeddingSettings{Provider: AIProviderAnthropic, APIKey: "k"}.IsConfigured())
	assert.False(t, EmbeddingSettings{Provider: AIProviderOpenAI}.IsConfigured())
	assert.True(t, EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "k"}.IsConfigured())
}

func TestIngestionSettings_HasExtension(t *testing.T) {
	s := IngestionSettings{Extensions: []string{".txt", ".pdf"}}
	assert.True(t, s.HasExtension(".PDF"))
	assert.False(t, s.HasExtension(".docx"))
}

func TestVectorBackend_IsValid(t *testing.T) {
	assert.True(t, VectorBackendRedis.IsValid())
	assert.False(t, VectorBackend("chroma").IsValid())
}
