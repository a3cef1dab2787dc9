package postprocessors

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
)

// BuilderFunc constructs a stage from loosely typed settings, as they come
// out of the TOML config.
type BuilderFunc func(cfg map[string]any) (driven.PostProcessor, error)

// Registry resolves stage names to builders so a pipeline can be described
// as a list of names.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]BuilderFunc)}
}

// Register binds name to builder. Registering a name twice is an error.
func (r *Registry) Register(name string, builder BuilderFunc) error {
	if name == "" || builder == nil {
		return fmt.Errorf("register processor %q: %w", name, domain.ErrInvalidInput)
	}
	if _, dup := r.builders[name]; dup {
		return fmt.Errorf("processor %q already registered", name)
	}
	r.builders[name] = builder
	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Build constructs the stage called name.
func (r *Registry) Build(name string, cfg map[string]any) (driven.PostProcessor, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown processor %q (have %v)", name, r.Names())
	}
	proc, err := builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	return proc, nil
}

// BuildPipeline builds names, in order, sharing one settings map.
func (r *Registry) BuildPipeline(names []string, cfg map[string]any) (*Pipeline, error) {
	stages := make([]driven.PostProcessor, 0, len(names))
	for _, name := range names {
		proc, err := r.Build(name, cfg)
		if err != nil {
			return nil, err
		}
		stages = append(stages, proc)
	}
	return NewPipeline(stages...), nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
