package postprocessors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
)

// registryMockProcessor is a simple mock for testing registry functionality.
type registryMockProcessor struct {
	name string
}

func (m *registryMockProcessor) Name() string { return m.name }
func (m *registryMockProcessor) Process(_ context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	return chunks, nil
}

func mockBuilder(name string) BuilderFunc {
	return func(map[string]any) (driven.PostProcessor, error) {
		return &registryMockProcessor{name: name}, nil
	}
}

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry()
	if r.Has("test") {
		t.Fatal("empty registry reports a processor")
	}

	if err := r.Register("test", mockBuilder("test")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !r.Has("test") {
		t.Fatal("expected 'test' to be registered")
	}

	proc, err := r.Build("test", nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if proc.Name() != "test" {
		t.Errorf("expected name 'test', got %q", proc.Name())
	}

	if _, err := r.Build("unknown", nil); err == nil || !strings.Contains(err.Error(), "test") {
		t.Errorf("expected unknown-processor error listing known names, got %v", err)
	}
}

func TestRegistry_RegisterRejects(t *testing.T) {
	r := NewRegistry()
	_ = r.Register("dup", mockBuilder("dup"))

	if err := r.Register("dup", mockBuilder("dup")); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if err := r.Register("", mockBuilder("x")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty name, got %v", err)
	}
	if err := r.Register("nil", nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for nil builder, got %v", err)
	}
}

func TestRegistry_BuildWrapsBuilderError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	_ = r.Register("bad", func(map[string]any) (driven.PostProcessor, error) { return nil, boom })

	_, err := r.Build("bad", nil)
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "bad") {
		t.Errorf("expected wrapped builder error, got %v", err)
	}
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry()
	_ = r.Register("beta", mockBuilder("beta"))
	_ = r.Register("alpha", mockBuilder("alpha"))

	if got := strings.Join(r.Names(), ","); got != "alpha,beta" {
		t.Errorf("expected alpha,beta, got %s", got)
	}
}

func TestRegistry_BuildPipeline(t *testing.T) {
	r := NewRegistry()
	_ = r.Register("first", mockBuilder("first"))
	_ = r.Register("second", mockBuilder("second"))

	p, err := r.BuildPipeline([]string{"first", "second"}, nil)
	if err != nil {
		t.Fatalf("BuildPipeline failed: %v", err)
	}
	if p.String() != "first -> second" {
		t.Errorf("expected first -> second, got %s", p)
	}

	if _, err := r.BuildPipeline([]string{"first", "missing"}, nil); err == nil {
		t.Error("expected error for missing processor")
	}
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	if err := RegisterDefaults(r); err != nil {
		t.Fatalf("RegisterDefaults failed: %v", err)
	}
	if err := RegisterDefaults(r); err == nil {
		t.Error("expected second RegisterDefaults to report duplicates")
	}

	for _, name := range DefaultPipeline {
		if !r.Has(name) {
			t.Errorf("expected %q to be registered after RegisterDefaults", name)
		}
	}
}

func TestBuildChunker_Config(t *testing.T) {
	tests := []struct {
		name    string
		cfg     map[string]any
		wantErr bool
	}{
		{"nil config", nil, false},
		{"size and overlap", map[string]any{"size": 500, "overlap": int64(50)}, false},
		{"toml float", map[string]any{"size": float64(800)}, false},
		{"zero size", map[string]any{"size": 0}, true},
		{"negative overlap", map[string]any{"overlap": -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc, err := buildChunker(tt.cfg)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if proc.Name() != "chunker" {
				t.Errorf("expected name 'chunker', got %q", proc.Name())
			}
		})
	}
}

func TestGetIntFromConfig(t *testing.T) {
	tests := []struct {
		name   string
		cfg    map[string]any
		want   int
		wantOK bool
	}{
		{"int value", map[string]any{"size": 100}, 100, true},
		{"int64 value", map[string]any{"size": int64(200)}, 200, true},
		{"float64 value", map[string]any{"size": float64(300)}, 300, true},
		{"explicit zero", map[string]any{"size": 0}, 0, true},
		{"string value", map[string]any{"size": "400"}, 0, false},
		{"missing key", map[string]any{"other": 100}, 0, false},
		{"nil config", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := getIntFromConfig(tt.cfg, "size")
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("expected (%d, %v), got (%d, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}
