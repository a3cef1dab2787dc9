// Package docx extracts text from Word documents using nguyenthenguyen/docx.
package docx

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/normalisers/normalise"
)

var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser reads the main document part of .docx files. Headers,
// footers and text boxes are ignored.
type Normaliser struct{}

// New returns the normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions implements driven.Normaliser.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".docx"}
}

// Priority implements driven.Normaliser.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise implements driven.Normaliser. A file with no text is
// reported as corrupt.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	file, err := docx.ReadDocxFromMemory(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", raw.URI, domain.ErrCorruptFile, err)
	}
	defer file.Close()

	content := parseDocumentXML(file.Editable().GetContent())
	if content == "" {
		return nil, fmt.Errorf("%s: no extractable text: %w", raw.URI, domain.ErrCorruptFile)
	}

	return normalise.Result(raw, "", content, "docx"), nil
}

// parseDocumentXML walks word/document.xml and returns one line per
// paragraph. A table row becomes a single line with its cells joined by
// " | ", which keeps skills matrices readable. Malformed XML yields "".
func parseDocumentXML(content string) string {
	dec := xml.NewDecoder(strings.NewReader(content))

	var (
		lines  []string
		para   strings.Builder
		inText bool
		rows   int
		cells  []string
		cell   []string
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ""
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				para.WriteByte('\t')
			case "br":
				para.WriteByte('\n')
			case "tr":
				rows++
				cells = cells[:0]
			case "tc":
				cell = cell[:0]
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				text := strings.TrimSpace(para.String())
				para.Reset()
				if rows > 0 {
					if text != "" {
						cell = append(cell, text)
					}
				} else {
					lines = append(lines, text)
				}
			case "tc":
				if len(cell) > 0 {
					cells = append(cells, strings.Join(cell, " "))
				}
			case "tr":
				rows--
				if len(cells) > 0 {
					lines = append(lines, strings.Join(cells, " | "))
				}
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
