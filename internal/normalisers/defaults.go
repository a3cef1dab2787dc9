package normalisers

import (
	"github.com/custodia-labs/skillgap/internal/normalisers/docx"
	"github.com/custodia-labs/skillgap/internal/normalisers/html"
	"github.com/custodia-labs/skillgap/internal/normalisers/markdown"
	"github.com/custodia-labs/skillgap/internal/normalisers/pdf"
	"github.com/custodia-labs/skillgap/internal/normalisers/plaintext"
)

// RegisterDefaults registers all built-in normalisers with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	r.Register(html.New())
}

// NewDefaultRegistry returns a registry with every built-in normaliser.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
