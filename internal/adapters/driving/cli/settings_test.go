package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSettingsCmd_Show(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, nil, "settings")

	require.NoError(t, err)
	for _, section := range []string{"[Paths]", "[Chunking]", "[Embedding]", "[LLM]", "[Retrieval]", "[Vector Store]"} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "Size: 500")
	assert.Contains(t, out, "Overlap: 50")
	assert.Contains(t, out, "Collection: skill_gap_masr")
}

func TestSettingsCmd_SetThenShow(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, nil, "settings", "set", "chunking.size", "800")
	require.NoError(t, err)
	assert.Equal(t, "chunking.size = 800\n", out)

	out, err = execute(t, nil, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Size: 800")
}

func TestSettingsCmd_SetMasksSecrets(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, nil, "settings", "set", "llm.api_key", "gsk_1234567890abcdef")

	require.NoError(t, err)
	assert.NotContains(t, out, "gsk_1234567890abcdef")
}

func TestSettingsCmd_SetRejectsBadValues(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, nil, "settings", "set", "retrieval.k", "many")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, nil, "settings", "set", "no.such.key", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_Keys(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, nil, "settings", "keys")

	require.NoError(t, err)
	assert.Contains(t, out, "chunking.overlap")
	assert.Contains(t, out, "vector_store.backend")
}

func TestSettingsCmd_ConfigAlias(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, nil, "config", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "retrieval.k")
}

func TestSettingsCmd_Check(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, nil, "settings", "check")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "OK"))

	configValidator = &stubValidator{llmErr: errStub}
	out, err = execute(t, nil, "settings", "check")
	require.Error(t, err)
	assert.Contains(t, out, "FAILED: stub failure")
}

func TestSettingsCmd_ConfigureLocalLLM(t *testing.T) {
	setupTestServices(t)

	// Ollama is the last provider and needs no API key; keep the default model.
	var choice string
	for i, p := range domain.AllLLMProviders() {
		if p == domain.AIProviderOllama {
			choice = string(rune('1'+i)) + "\n\n"
		}
	}

	out, err := execute(t, strings.NewReader(choice), "settings", "llm")

	require.NoError(t, err)
	assert.Contains(t, out, "Validating configuration... OK")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
}

func TestSettingsCmd_ConfigureEmbeddingValidationFails(t *testing.T) {
	setupTestServices(t)
	configValidator = &stubValidator{embeddingErr: errStub}

	var choice string
	for i, p := range domain.AllEmbeddingProviders() {
		if p == domain.AIProviderOllama {
			choice = string(rune('1'+i)) + "\nnomic-embed-text\n"
		}
	}

	out, err := execute(t, strings.NewReader(choice), "settings", "embedding")

	require.Error(t, err)
	assert.ErrorIs(t, err, errStub)
	assert.Contains(t, out, "Select embedding provider")
	assert.Contains(t, out, "FAILED: stub failure")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model, "the choice is stored before the check")
}
