package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Loader reads supported files from a directory tree and normalises them.
type Loader struct {
	registry   driven.NormaliserRegistry
	extensions []string
}

// Option configures a Loader.
type Option func(*Loader)

// WithExtensions sets the file extensions to load (e.g. ".txt", ".pdf").
func WithExtensions(exts ...string) Option {
	return func(l *Loader) {
		if n := normaliseExtensions(exts); len(n) > 0 {
			l.extensions = n
		}
	}
}

// NewLoader creates a loader that dispatches files through registry.
// Defaults to .txt and .pdf files.
func NewLoader(registry driven.NormaliserRegistry, opts ...Option) *Loader {
	l := &Loader{
		registry:   registry,
		extensions: []string{".pdf", ".txt"},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Extensions returns the extensions the loader reads.
func (l *Loader) Extensions() []string {
	return append([]string(nil), l.extensions...)
}

// Load returns one document per readable file under dir.
// Hidden files and directories are skipped. Files that fail to read or
// normalise are skipped with a warning.
func (l *Loader) Load(ctx context.Context, dir string, docType domain.DocType) ([]domain.Document, error) {
	if !docType.IsValid() {
		return nil, fmt.Errorf("doc type %q: %w", docType, domain.ErrInvalidInput)
	}

	dir = ResolvePath(dir)
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, fmt.Errorf("%s: %w: %w", dir, domain.ErrMissingDirectory, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), l.pattern())
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(matches)

	logger.Debug("found %d candidate %s files in %s", len(matches), docType, dir)

	docs := make([]domain.Document, 0, len(matches))
	for _, rel := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isHidden(rel) {
			continue
		}

		path := filepath.Join(dir, filepath.FromSlash(rel))
		doc, err := l.loadFile(ctx, path, docType)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			continue
		}
		if doc == nil {
			continue
		}
		logger.Debug("loaded %s (%d chars)", path, len(doc.Content))
		docs = append(docs, *doc)
	}

	return docs, nil
}

// LoadFile reads and normalises a single file, such as an uploaded CV.
// Unlike Load, failures are returned rather than skipped.
func (l *Loader) LoadFile(ctx context.Context, path string, docType domain.DocType) (*domain.Document, error) {
	if !docType.IsValid() {
		return nil, fmt.Errorf("doc type %q: %w", docType, domain.ErrInvalidInput)
	}

	path = ResolvePath(path)
	doc, err := l.loadFile(ctx, path, docType)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%s is a directory: %w", path, domain.ErrInvalidInput)
	}
	return doc, nil
}

// loadFile reads and normalises one file. Returns nil, nil for directories.
func (l *Loader) loadFile(ctx context.Context, path string, docType domain.DocType) (*domain.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	raw := &domain.RawDocument{
		URI:       path,
		Extension: strings.ToLower(filepath.Ext(path)),
		Content:   content,
		Metadata: map[string]any{
			domain.MetaDocType:    string(docType),
			domain.MetaSourceName: name,
			domain.MetaSource:     path,
		},
	}

	result, err := l.registry.Normalise(ctx, raw)
	if err != nil {
		return nil, err
	}

	doc := result.Document
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata[domain.MetaDocType] = string(docType)
	doc.Metadata[domain.MetaSourceName] = name
	doc.Metadata[domain.MetaSource] = path
	return &doc, nil
}

// pattern builds a recursive glob over the configured extensions. Each
// letter becomes a two-case class, so "CV.Pdf" matches ".pdf" the same way
// hasExtension does.
func (l *Loader) pattern() string {
	alts := make([]string, 0, len(l.extensions))
	for _, ext := range l.extensions {
		var b strings.Builder
		for _, r := range strings.TrimPrefix(ext, ".") {
			lower, upper := unicode.ToLower(r), unicode.ToUpper(r)
			if lower == upper {
				b.WriteRune(r)
				continue
			}
			b.WriteByte('[')
			b.WriteRune(lower)
			b.WriteRune(upper)
			b.WriteByte(']')
		}
		alts = append(alts, b.String())
	}
	return "**/*.{" + strings.Join(alts, ",") + "}"
}

// hasExtension reports whether path has one of the configured extensions.
func (l *Loader) hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range l.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// normaliseExtensions lower-cases, dot-prefixes, sorts and dedupes exts.
func normaliseExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	sort.Strings(out)
	return out
}
