package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/postprocessors/chunker"
	"github.com/custodia-labs/skillgap/internal/postprocessors/provenance"
)

// DefaultPipeline lists the processors every ingestion runs, in order.
var DefaultPipeline = []string{"chunker", "provenance"}

// RegisterDefaults adds the built-in stages to r.
func RegisterDefaults(r *Registry) error {
	if err := r.Register("chunker", buildChunker); err != nil {
		return err
	}
	return r.Register("provenance", func(map[string]any) (driven.PostProcessor, error) {
		return provenance.New(), nil
	})
}

// NewDefaultPipeline builds the ingestion pipeline from chunking settings.
func NewDefaultPipeline(cfg domain.ChunkingSettings) (*Pipeline, error) {
	r := NewRegistry()
	if err := RegisterDefaults(r); err != nil {
		return nil, err
	}
	return r.BuildPipeline(DefaultPipeline, map[string]any{
		"size":    cfg.Size,
		"overlap": cfg.Overlap,
	})
}

// buildChunker reads "size" and "overlap"; absent keys keep the chunker
// defaults.
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if size, ok := getIntFromConfig(cfg, "size"); ok {
		if size <= 0 {
			return nil, fmt.Errorf("chunk size %d: %w", size, domain.ErrInvalidInput)
		}
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if overlap, ok := getIntFromConfig(cfg, "overlap"); ok {
		if overlap < 0 {
			return nil, fmt.Errorf("chunk overlap %d: %w", overlap, domain.ErrInvalidInput)
		}
		opts = append(opts, chunker.WithOverlap(overlap))
	}

	return chunker.New(opts...), nil
}

// getIntFromConfig accepts the integer shapes TOML and JSON decoding
// produce.
func getIntFromConfig(cfg map[string]any, key string) (int, bool) {
	val, ok := cfg[key]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
