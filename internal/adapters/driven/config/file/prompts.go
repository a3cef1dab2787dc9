package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/logger"
)

var _ driven.PromptStore = (*PromptStore)(nil)

// requiredPlaceholders lists what an edited template must still contain.
// An edited gap_human.txt that drops one is ignored in favour of the
// built-in template.
var requiredPlaceholders = map[string][]string{
	driven.PromptGapHuman: {"{role}", "{job_context}", "{cv_text}"},
}

// PromptStore serves prompt templates from <dir>/<name>.txt. The directory
// is seeded with the built-in templates on first use, so users have a file
// to edit. Empty, unreadable or incomplete files fall back to the
// built-in text.
type PromptStore struct {
	dir string

	seed    sync.Once
	seedErr error

	mu    sync.RWMutex
	cache map[string]string
}

// NewPromptStore returns a store rooted at dir, or ~/.skillgap/prompts
// when dir is empty. Nothing is written until the first Load.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		base, err := DefaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(base, "prompts")
	}
	return &PromptStore{dir: dir, cache: make(map[string]string)}, nil
}

// Load returns the template called name.
func (s *PromptStore) Load(name string) (string, error) {
	s.seed.Do(func() { s.seedErr = s.seedDir() })
	builtin, known := defaultPrompts[name]

	if s.seedErr != nil {
		if known {
			return builtin, nil
		}
		return "", fmt.Errorf("prompt directory: %w", s.seedErr)
	}

	s.mu.RLock()
	cached, hit := s.cache[name]
	s.mu.RUnlock()
	if hit {
		return cached, nil
	}

	text, err := s.readFile(name)
	switch {
	case err == nil:
	case known:
		logger.Debug("prompt %s: %v, using built-in", name, err)
		text = builtin
	default:
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, hit := s.cache[name]; hit {
		text = cached
	} else {
		s.cache[name] = text
	}
	s.mu.Unlock()
	return text, nil
}

// Reload drops cached templates so edits on disk are picked up.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory.
func (s *PromptStore) Dir() string {
	return s.dir
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.dir, name+".txt")
}

// readFile returns the trimmed file contents, or an error when the file
// is missing, blank or lacks a required placeholder.
func (s *PromptStore) readFile(name string) (string, error) {
	raw, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", errors.New("file is empty")
	}
	for _, p := range requiredPlaceholders[name] {
		if !strings.Contains(text, p) {
			return "", fmt.Errorf("missing placeholder %s", p)
		}
	}
	return text, nil
}

// seedDir creates the directory, writes any built-in template that has
// no file yet, and drops a README next to them.
func (s *PromptStore) seedDir() error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	for name, text := range defaultPrompts {
		if err := writeIfAbsent(s.path(name), text); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}
	return writeIfAbsent(filepath.Join(s.dir, "README.md"), promptReadme)
}

func writeIfAbsent(path, content string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o600)
}

const promptReadme = "# skillgap prompts\n\n" +
	"These files are sent to the LLM when a skill gap report is generated.\n\n" +
	"- `gap_system.txt`: the career advisor persona\n" +
	"- `gap_human.txt`: the user message\n\n" +
	"`gap_human.txt` must keep `{role}`, `{job_context}` and `{cv_text}`.\n" +
	"Job context arrives as blocks headed `**Source:** <file>`.\n" +
	"A file that is empty or drops a placeholder is ignored.\n" +
	"Delete a file to get the built-in version back on the next run.\n"
