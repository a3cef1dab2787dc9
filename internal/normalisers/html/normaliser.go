package html

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/normalisers/normalise"
)

// removedElements never carry readable content.
const removedElements = "script, style, noscript, svg, iframe, head"

var multiNewlines = regexp.MustCompile(`\n{3,}`)

var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct {
	converter *md.Converter
}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{
		converter: md.NewConverter("", true, nil),
	}
}

// SupportedExtensions implements driven.Normaliser.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".html", ".htm"}
}

// Priority implements driven.Normaliser.
func (n *Normaliser) Priority() int {
	return 50 // Higher than plaintext
}

// Normalise converts an HTML document to Markdown text.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	page, err := goquery.NewDocumentFromReader(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", raw.URI, domain.ErrCorruptFile, err)
	}

	title := extractTitle(page, raw.URI)
	content := n.bodyText(page)
	if content == "" {
		return nil, fmt.Errorf("%s: no readable text: %w", raw.URI, domain.ErrCorruptFile)
	}

	return normalise.Result(raw, title, content, "html"), nil
}

// bodyText renders the page body as Markdown, falling back to plain text.
func (n *Normaliser) bodyText(page *goquery.Document) string {
	page.Find(removedElements).Remove()

	body := page.Find("body")
	bodyHTML, err := body.Html()
	if err == nil {
		if markdown, err := n.converter.ConvertString(bodyHTML); err == nil {
			return cleanup(markdown)
		}
	}
	return cleanup(body.Text())
}

// cleanup trims lines and collapses runs of blank lines.
func cleanup(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")
	text = multiNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// extractTitle reads <title>, or falls back to the filename.
func extractTitle(page *goquery.Document, uri string) string {
	if title := strings.TrimSpace(page.Find("title").First().Text()); title != "" {
		return title
	}

	return normalise.FileTitle(uri)
}
