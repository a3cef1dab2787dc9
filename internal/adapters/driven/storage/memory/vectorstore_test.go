package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillgap/internal/adapters/driven/storage/storetest"
	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
)

func TestVectorStore_Contract(t *testing.T) {
	storetest.Run(t, func(_ *testing.T) driven.VectorStore {
		return NewVectorStore()
	})
}

func TestVectorStore_WriteCopiesInput(t *testing.T) {
	ctx := context.Background()
	store := NewVectorStore()

	chunk := storetest.Record("a", domain.DocTypeJob, "a.txt", "text", 1, 0)
	require.NoError(t, store.Write(ctx, []domain.Chunk{chunk}))

	// Mutating the caller's slice must not leak into the store
	chunk.Metadata[domain.MetaSourceName] = "changed.txt"
	chunk.Embedding[0] = 0

	results, err := store.Search(ctx, []float32{1, 0}, 1, domain.SearchFilter{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a.txt", results[0].Chunk.SourceName())
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Nil(t, results[0].Chunk.Embedding)
}

func TestVectorStore_Location(t *testing.T) {
	assert.Equal(t, ":memory:", NewVectorStore().Location())
}
