package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/logger"
)

// embedBatchSize bounds the number of texts sent per embedding request.
const embedBatchSize = 64

// VectorIndex pairs an embedding service with a vector store so that
// records are written and queried through one model.
type VectorIndex struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewVectorIndex creates a vector index over the given embedder and store.
func NewVectorIndex(embedder driven.EmbeddingService, store driven.VectorStore) *VectorIndex {
	return &VectorIndex{
		embedder: embedder,
		store:    store,
	}
}

// Write embeds every chunk and replaces the stored collection.
func (v *VectorIndex) Write(ctx context.Context, chunks []domain.Chunk) error {
	if v.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	records := make([]domain.Chunk, len(chunks))
	copy(records, chunks)

	for start := 0; start < len(records); start += embedBatchSize {
		end := min(start+embedBatchSize, len(records))

		texts := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			texts = append(texts, records[i].Content)
		}

		logger.Debug("Embedding chunks %d-%d of %d", start+1, end, len(records))
		vectors, err := v.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed chunks: %w", err)
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("embed chunks: got %d vectors for %d texts: %w",
				len(vectors), len(texts), domain.ErrEmbeddingUnavailable)
		}
		for i, vec := range vectors {
			records[start+i].Embedding = vec
		}
	}

	if err := v.store.Write(ctx, records); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	return nil
}

// Search embeds the query text and returns the k nearest records matching filter.
func (v *VectorIndex) Search(
	ctx context.Context, query string, k int, filter domain.SearchFilter,
) ([]domain.SearchResult, error) {
	if v.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	// Check the collection first so an unbuilt store does not cost an embedding call.
	exists, err := v.store.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check collection: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("search %s: %w: %w", v.store.Location(), domain.ErrMissingVectorStore, domain.ErrNotFound)
	}

	vec, err := v.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return v.store.Search(ctx, vec, k, filter)
}

// List returns every stored record matching filter in insertion order.
func (v *VectorIndex) List(ctx context.Context, filter domain.SearchFilter) ([]domain.Chunk, error) {
	return v.store.List(ctx, filter)
}

// Location describes where the collection lives.
func (v *VectorIndex) Location() string {
	return v.store.Location()
}
