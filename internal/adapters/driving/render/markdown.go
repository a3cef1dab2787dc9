// Package render turns gap reports into styled terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultStyle is the glamour theme used for reports.
const DefaultStyle = "dark"

// Markdown renders md for a terminal of the given width. A width of zero
// disables wrapping.
func Markdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(DefaultStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// MarkdownOrPlain renders md, falling back to the raw text on error.
func MarkdownOrPlain(md string, width int) string {
	out, err := Markdown(md, width)
	if err != nil {
		return md
	}
	return out
}
