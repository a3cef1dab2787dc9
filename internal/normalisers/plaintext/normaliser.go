// Package plaintext reads .txt files. It is the lowest-priority normaliser
// and the format the job and CV directories use by default.
package plaintext

import (
	"context"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/normalisers/normalise"
)

var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser passes text through after decoding. Titles come from the
// filename since job postings rarely start with a usable heading.
type Normaliser struct{}

// New returns the normaliser.
func New() *Normaliser { return &Normaliser{} }

// SupportedExtensions implements driven.Normaliser.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

// Priority implements driven.Normaliser.
func (n *Normaliser) Priority() int { return 5 }

// Normalise implements driven.Normaliser. Empty files are allowed; the
// ingestion service decides what to do with them.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	return normalise.Result(raw, "", normalise.Decode(raw.Content), "txt"), nil
}
