package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.model", "llama-3.3-70b-versatile"))

	val, ok := store.Get("llm.model")
	assert.True(t, ok)
	assert.Equal(t, "llama-3.3-70b-versatile", val)
	assert.Equal(t, "llama-3.3-70b-versatile", store.GetString("llm.model"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("chunking.size", 500))
	require.NoError(t, store.Set("llm.temperature", 0.3))
	require.NoError(t, store.Set("embedding.normalize", true))
	require.NoError(t, store.Set("ingestion.extensions", []string{".txt", ".pdf"}))

	assert.Equal(t, 500, store.GetInt("chunking.size"))
	assert.InDelta(t, 0.3, store.GetFloat("llm.temperature"), 1e-9)
	assert.InDelta(t, 500.0, store.GetFloat("chunking.size"), 1e-9)
	assert.True(t, store.GetBool("embedding.normalize"))
	assert.Equal(t, []string{".txt", ".pdf"}, store.GetStringSlice("ingestion.extensions"))

	// Wrong types and missing keys yield zero values
	assert.Equal(t, 0, store.GetInt("llm.temperature"))
	assert.Equal(t, "", store.GetString("chunking.size"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.provider", "anthropic"))
	require.NoError(t, store.Set("chunking.size", 800))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[llm]")
	assert.Contains(t, string(data), "[chunking]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", reloaded.GetString("llm.provider"))
	assert.Equal(t, 800, reloaded.GetInt("chunking.size"))
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[retrieval]
k = 3

[llm]
temperature = 1

[ingestion]
extensions = [".txt", ".pdf", ".docx"]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 3, store.GetInt("retrieval.k"))
	assert.InDelta(t, 1.0, store.GetFloat("llm.temperature"), 1e-9)
	assert.Equal(t, []string{".txt", ".pdf", ".docx"}, store.GetStringSlice("ingestion.extensions"))
}

func TestConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_LoadPicksUpExternalEdits(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("retrieval.k", 5))

	require.NoError(t, os.WriteFile(store.Path(), []byte("[llm]\nprovider = \"gemini\"\n"), 0600))
	require.NoError(t, store.Load())

	assert.Equal(t, "gemini", store.GetString("llm.provider"))
	_, ok := store.Get("retrieval.k")
	assert.False(t, ok, "keys missing from the file are dropped")

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, store.Load())
	assert.Equal(t, 0, store.Len())
}
