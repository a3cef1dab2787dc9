// Package normalized rescales embeddings to unit length so that cosine
// similarity and dot product agree regardless of the provider.
package normalized

import (
	"context"

	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/vecmath"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// EmbeddingService wraps another embedder and normalises every vector it returns.
type EmbeddingService struct {
	driven.EmbeddingService
}

// Wrap returns inner with unit-normalised output.
func Wrap(inner driven.EmbeddingService) *EmbeddingService {
	return &EmbeddingService{EmbeddingService: inner}
}

// Embed returns the unit-length embedding of text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := s.EmbeddingService.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	return vecmath.Normalize(vec), nil
}

// EmbedBatch returns unit-length embeddings in input order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := s.EmbeddingService.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	out := make([][]float32, len(vectors))
	for i, v := range vectors {
		out[i] = vecmath.Normalize(v)
	}
	return out, nil
}
