// Package storage holds helpers shared by the vector store backends.
// Each backend lives in its own subpackage (sqlite, redis, memory).
package storage

import (
	"fmt"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// ValidateRecords checks a batch before it replaces a collection.
// Every record needs a known doc_type and an embedding of one common length.
// Returns that length, or 0 for an empty batch.
func ValidateRecords(chunks []domain.Chunk) (int, error) {
	dim := 0
	for i := range chunks {
		c := &chunks[i]
		if !c.DocType().IsValid() {
			return 0, fmt.Errorf("record %d has doc_type %q: %w", i, c.DocType(), domain.ErrInvalidInput)
		}
		if len(c.Embedding) == 0 {
			return 0, fmt.Errorf("record %d has no embedding: %w", i, domain.ErrInvalidInput)
		}
		if dim == 0 {
			dim = len(c.Embedding)
		} else if len(c.Embedding) != dim {
			return 0, fmt.Errorf("record %d has %d dimensions, want %d: %w",
				i, len(c.Embedding), dim, domain.ErrDimensionMismatch)
		}
	}
	return dim, nil
}

// CheckQuery rejects a query vector that cannot be compared with a collection.
func CheckQuery(query []float32, dim int) error {
	if dim != 0 && len(query) != dim {
		return fmt.Errorf("query has %d dimensions, collection has %d: %w",
			len(query), dim, domain.ErrDimensionMismatch)
	}
	return nil
}

// MissingCollection builds the error returned when searching an unbuilt store.
func MissingCollection(location string) error {
	return fmt.Errorf("%s: %w: %w", location, domain.ErrMissingVectorStore, domain.ErrNotFound)
}
