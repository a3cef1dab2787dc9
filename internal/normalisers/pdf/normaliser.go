// Package pdf extracts text from PDF files using ledongthuc/pdf,
// a pure Go reader with no external tools.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/normalisers/normalise"
)

// pageSeparator joins the text of consecutive pages.
const pageSeparator = "\n\n"

var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions implements driven.Normaliser.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Priority implements driven.Normaliser.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts the text of every page into a single document.
// A file that cannot be parsed or yields no text is reported as corrupt.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	pages, err := extractPages(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", raw.URI, domain.ErrCorruptFile, err)
	}

	content := strings.Join(pages, pageSeparator)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%s: no extractable text: %w", raw.URI, domain.ErrCorruptFile)
	}

	res := normalise.Result(raw, extractTitle(content, raw.URI), content, "pdf")
	res.Document.Metadata["pages"] = len(pages)
	return res, nil
}

// extractPages returns the plain text of each non-empty page.
// The reader panics on some malformed inputs, so panics become errors.
func extractPages(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("reading pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return pages, nil
}

// extractTitle uses the first short non-empty line, else the filename.
func extractTitle(content, uri string) string {
	if line := normalise.FirstLine(content, 200); line != "" {
		return line
	}
	return normalise.FileTitle(uri)
}
