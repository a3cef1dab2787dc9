package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DirectoryWatcher = (*Watcher)(nil)

// Watcher reports changes to loadable files under a set of directories.
type Watcher struct {
	loader *Loader

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher that reports files loader would read.
func NewWatcher(loader *Loader) *Watcher {
	return &Watcher{loader: loader}
}

// Watch starts watching dirs and their non-hidden subdirectories.
// The returned channel is closed when ctx is cancelled or Close is called.
// Calling Watch again replaces the previous watch and closes its channel.
func (w *Watcher) Watch(ctx context.Context, dirs ...string) (<-chan domain.FileChange, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := addTree(fw, ResolvePath(dir)); err != nil {
			fw.Close()
			return nil, err
		}
	}

	w.mu.Lock()
	prev := w.watcher
	w.watcher = fw
	w.mu.Unlock()
	if prev != nil {
		if err := prev.Close(); err != nil {
			logger.Warn("closing previous watcher: %v", err)
		}
	}

	changes := make(chan domain.FileChange)
	go w.run(ctx, fw, changes)
	return changes, nil
}

// run forwards relevant events until ctx is done or the watcher closes.
func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, changes chan<- domain.FileChange) {
	defer close(changes)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !isHidden(event.Name) {
					if err := addTree(fw, event.Name); err != nil {
						logger.Warn("not watching %s: %v", event.Name, err)
					}
				}
			}
			change := w.handleFsEvent(event)
			if change == nil {
				continue
			}
			select {
			case changes <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// handleFsEvent converts an fsnotify event to a change, or nil when the
// event does not concern a loadable file.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *domain.FileChange {
	if isHidden(filepath.Base(event.Name)) || !w.loader.hasExtension(event.Name) {
		return nil
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.FileChange{Type: domain.ChangeDeleted, Path: event.Name}
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return nil
		}
		changeType := domain.ChangeUpdated
		if event.Has(fsnotify.Create) {
			changeType = domain.ChangeCreated
		}
		return &domain.FileChange{Type: changeType, Path: event.Name}
	default:
		return nil
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

// addTree watches root and every non-hidden directory below it.
func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// Debounce groups changes that arrive within quiet of each other and emits
// each group once the input has been idle for quiet. The output channel is
// closed after in closes (flushing any pending group) or ctx is done.
func Debounce(ctx context.Context, in <-chan domain.FileChange, quiet time.Duration) <-chan []domain.FileChange {
	out := make(chan []domain.FileChange)

	go func() {
		defer close(out)

		var (
			pending []domain.FileChange
			timer   *time.Timer
			fire    <-chan time.Time
		)
		flush := func() bool {
			if len(pending) == 0 {
				return true
			}
			select {
			case out <- pending:
				pending = nil
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case change, ok := <-in:
				if !ok {
					flush()
					return
				}
				pending = append(pending, change)
				if timer == nil {
					timer = time.NewTimer(quiet)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(quiet)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				if !flush() {
					return
				}
			}
		}
	}()

	return out
}
