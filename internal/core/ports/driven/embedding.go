package driven

import "context"

// EmbeddingService turns text into vectors. Ingestion and search must use
// the same model or scores between them mean nothing; VectorStore checks
// Dimensions to catch the common case.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	Dimensions() int
	ModelName() string

	// Ping makes the cheapest call that proves the model is usable.
	Ping(ctx context.Context) error
	Close() error
}
