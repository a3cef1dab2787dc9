package driven

import (
	"context"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// Normaliser turns the bytes of one file format into a Document.
type Normaliser interface {
	// SupportedExtensions are lower-case with the leading dot.
	SupportedExtensions() []string

	// Priority breaks ties between normalisers claiming one extension.
	// Format parsers sit in 50-89 and catch-alls in 1-9.
	Priority() int

	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult wraps the extracted Document. Splitting it is left to
// the PostProcessor pipeline.
type NormaliseResult struct {
	Document domain.Document
}
