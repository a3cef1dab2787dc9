package driven

import (
	"context"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a file.
// It keeps normalisers ordered by priority and dispatches on extension.
type NormaliserRegistry interface {
	// Normalise transforms a raw file using the best matching normaliser.
	// Returns domain.ErrUnsupportedFile when no normaliser handles the extension.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedExtensions returns all extensions that can be normalised.
	SupportedExtensions() []string
}
