package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/skillgap/internal/adapters/driven/storage"
	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/vecmath"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-memory implementation of driven.VectorStore.
// The collection lives only as long as the process.
type VectorStore struct {
	mu      sync.RWMutex
	records []domain.Chunk
	dim     int
	written bool
}

// NewVectorStore creates a new, unbuilt in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{}
}

// Write replaces the collection.
func (s *VectorStore) Write(_ context.Context, chunks []domain.Chunk) error {
	dim, err := storage.ValidateRecords(chunks)
	if err != nil {
		return err
	}

	records := make([]domain.Chunk, len(chunks))
	for i, c := range chunks {
		c.Metadata = domain.CopyMetadata(c.Metadata)
		c.Embedding = append([]float32(nil), c.Embedding...)
		records[i] = c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.dim = dim
	s.written = true
	return nil
}

// Search returns the k nearest records matching filter.
func (s *VectorStore) Search(
	_ context.Context, query []float32, k int, filter domain.SearchFilter,
) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.written {
		return nil, storage.MissingCollection(s.Location())
	}
	if err := storage.CheckQuery(query, s.dim); err != nil {
		return nil, err
	}
	if k <= 0 {
		return []domain.SearchResult{}, nil
	}

	cands := make([]vecmath.Candidate, 0, len(s.records))
	for i := range s.records {
		if !filter.Matches(s.records[i].Metadata) {
			continue
		}
		cands = append(cands, vecmath.Candidate{
			Seq:   int64(i),
			Score: vecmath.Cosine(query, s.records[i].Embedding),
		})
	}

	top := vecmath.TopK(cands, k)
	results := make([]domain.SearchResult, 0, len(top))
	for _, c := range top {
		chunk := s.records[c.Seq]
		chunk.Embedding = nil
		chunk.Metadata = domain.CopyMetadata(chunk.Metadata)
		results = append(results, domain.SearchResult{Chunk: chunk, Score: c.Score})
	}
	return results, nil
}

// List returns every record matching filter in insertion order.
func (s *VectorStore) List(_ context.Context, filter domain.SearchFilter) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.written {
		return nil, storage.MissingCollection(s.Location())
	}

	out := make([]domain.Chunk, 0)
	for _, c := range s.records {
		if filter.Matches(c.Metadata) {
			c.Embedding = nil
			c.Metadata = domain.CopyMetadata(c.Metadata)
			out = append(out, c)
		}
	}
	return out, nil
}

// Count returns the number of records.
func (s *VectorStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Exists reports whether Write has been called.
func (s *VectorStore) Exists(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.written, nil
}

// Location describes the store.
func (s *VectorStore) Location() string {
	return ":memory:"
}

// Close is a no-op.
func (s *VectorStore) Close() error {
	return nil
}
