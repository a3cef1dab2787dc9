package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/skillgap/internal/adapters/driven/config"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

const fileName = "config.toml"

// ConfigStore persists settings to a TOML file. Dotted keys are written
// as nested tables, so "llm.model" lands under [llm].
type ConfigStore struct {
	*config.Values

	// writeMu serialises file writes; Values guards the map itself.
	writeMu  sync.Mutex
	filePath string
}

// DefaultConfigDir returns ~/.skillgap.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".skillgap"), nil
}

// NewConfigStore opens configDir/config.toml, creating the directory if
// needed. An empty configDir means DefaultConfigDir. A missing file is
// not an error.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	s := &ConfigStore{
		Values:   config.NewValues(),
		filePath: filepath.Join(configDir, fileName),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Set stores value and writes the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.Put(key, value)
	return s.Save()
}

// Save writes the current values. The file may hold API keys, so it is
// created owner-only.
func (s *ConfigStore) Save() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	data, err := toml.Marshal(config.Nest(s.Snapshot()))
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.filePath, err)
	}
	return os.WriteFile(s.filePath, data, 0o600)
}

// Load replaces the in-memory values with the file's contents.
func (s *ConfigStore) Load() error {
	raw, err := os.ReadFile(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		s.Replace(nil)
		return nil
	}
	if err != nil {
		return err
	}

	var tree map[string]any
	if err := toml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	s.Replace(config.Flatten(tree))
	return nil
}

// Path returns the config file location.
func (s *ConfigStore) Path() string {
	return s.filePath
}
