package driven

import (
	"context"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// DocumentLoader reads every supported file under a directory.
type DocumentLoader interface {
	// Load returns one document per readable file, tagged with docType
	// and its basename as source_name. A missing directory yields an
	// error wrapping domain.ErrMissingDirectory and domain.ErrNotFound.
	// Unreadable or unsupported files are skipped with a warning.
	Load(ctx context.Context, dir string, docType domain.DocType) ([]domain.Document, error)

	// LoadFile reads one file. A missing file yields domain.ErrNotFound;
	// parse failures are returned instead of skipped.
	LoadFile(ctx context.Context, path string, docType domain.DocType) (*domain.Document, error)
}

// DirectoryWatcher reports file changes under a set of directories.
type DirectoryWatcher interface {
	// Watch starts watching and returns a channel of changes.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, dirs ...string) (<-chan domain.FileChange, error)

	// Close stops watching.
	Close() error
}
