package driven

import (
	"context"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// VectorStore persists embedding records as a single named collection.
//
// Implementations include SQLite (default, on disk), Redis (RediSearch)
// and an in-memory store.
type VectorStore interface {
	// Write replaces the whole collection with the given chunks.
	// Every chunk must carry an Embedding of the same length.
	// Insertion order is the slice order and is used to break score ties.
	Write(ctx context.Context, chunks []domain.Chunk) error

	// Search returns up to k records matching filter, ordered by
	// descending cosine similarity, ties broken by insertion order.
	// Returns an error wrapping domain.ErrMissingVectorStore (and
	// domain.ErrNotFound) when no collection has been written yet.
	Search(ctx context.Context, query []float32, k int, filter domain.SearchFilter) ([]domain.SearchResult, error)

	// List returns every record matching filter in insertion order.
	List(ctx context.Context, filter domain.SearchFilter) ([]domain.Chunk, error)

	// Count returns the number of records in the collection.
	Count(ctx context.Context) (int, error)

	// Exists reports whether a collection has been written.
	Exists(ctx context.Context) (bool, error)

	// Location describes where the collection lives, for user messages.
	Location() string

	// Close releases resources.
	Close() error
}
