package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"llm.provider": "ollama"},
		map[string]any{"retrieval.k": 3, "llm.provider": "groq"},
	)

	assert.Equal(t, "groq", store.GetString("llm.provider"))
	assert.Equal(t, 3, store.GetInt("retrieval.k"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("llm.model", "gpt-4o-mini"))

	val, ok := store.Get("llm.model")
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("chunking.size", 500)
	_ = store.Set("llm.temperature", 0.3)
	_ = store.Set("retrieval.k", int64(7))
	_ = store.Set("embedding.normalize", true)
	_ = store.Set("ingestion.extensions", []any{".txt", 1, ".pdf"})

	assert.Equal(t, 500, store.GetInt("chunking.size"))
	assert.Equal(t, 7, store.GetInt("retrieval.k"))
	assert.InDelta(t, 0.3, store.GetFloat("llm.temperature"), 1e-9)
	assert.InDelta(t, 500.0, store.GetFloat("chunking.size"), 1e-9)
	assert.True(t, store.GetBool("embedding.normalize"))
	assert.Equal(t, []string{".txt", ".pdf"}, store.GetStringSlice("ingestion.extensions"))

	assert.Equal(t, "", store.GetString("chunking.size"))
	assert.Equal(t, 0.0, store.GetFloat("embedding.normalize"))
	assert.Nil(t, store.GetStringSlice("llm.temperature"))
}

func TestConfigStore_SaveAndLoadAreNoOps(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("retrieval.k", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("retrieval.k")
		}()
	}
	wg.Wait()
}
