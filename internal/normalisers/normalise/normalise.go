// Package normalise has the pieces every file normaliser shares: text
// decoding, filename titles and building the result document.
package normalise

import (
	"bytes"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode turns file bytes into text with a leading BOM dropped, invalid
// UTF-8 replaced by U+FFFD, and CRLF line endings folded to LF.
func Decode(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	text := string(data)
	if !utf8.Valid(data) {
		text = strings.ToValidUTF8(text, "�")
	}
	return strings.ReplaceAll(text, "\r\n", "\n")
}

var titleSpaces = strings.NewReplacer("_", " ", "-", " ")

// FileTitle derives a title from a path: "data_scientist-v2.pdf" becomes
// "data scientist v2".
func FileTitle(uri string) string {
	name := filepath.Base(uri)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return titleSpaces.Replace(name)
}

// FirstLine returns the first non-blank line shorter than maxLen bytes,
// trimmed, or "" when there is none.
func FirstLine(text string, maxLen int) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && len(line) < maxLen {
			return line
		}
	}
	return ""
}

// Result wraps content in a new document carrying a copy of raw's
// metadata plus the format tag. An empty title falls back to FileTitle.
func Result(raw *domain.RawDocument, title, content, format string) *driven.NormaliseResult {
	if title == "" {
		title = FileTitle(raw.URI)
	}
	doc := domain.Document{
		ID:        uuid.New().String(),
		URI:       raw.URI,
		Title:     title,
		Content:   content,
		Metadata:  domain.CopyMetadata(raw.Metadata),
		CreatedAt: time.Now(),
	}
	doc.Metadata[domain.MetaFormat] = format
	return &driven.NormaliseResult{Document: doc}
}
