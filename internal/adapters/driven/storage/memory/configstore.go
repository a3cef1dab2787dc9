package memory

import (
	"github.com/custodia-labs/skillgap/internal/adapters/driven/config"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in process memory. Tests and the MCP
// conformance helpers use it where no file should be written.
type ConfigStore struct {
	*config.Values
}

// NewConfigStore returns an empty store, optionally seeded.
func NewConfigStore(seed ...map[string]any) *ConfigStore {
	s := &ConfigStore{Values: config.NewValues()}
	for _, m := range seed {
		for k, v := range m {
			s.Put(k, v)
		}
	}
	return s
}

// Set stores value under key.
func (s *ConfigStore) Set(key string, value any) error {
	s.Put(key, value)
	return nil
}

// Save is a no-op.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op.
func (s *ConfigStore) Load() error { return nil }

// Path returns ":memory:".
func (s *ConfigStore) Path() string { return ":memory:" }
