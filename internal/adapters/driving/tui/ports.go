// Package tui provides an interactive terminal user interface for skillgap.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/core/ports/driving"
)

// Ports aggregates the services the TUI drives.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analyzer retrieves jobs and writes gap reports. Required.
	Analyzer driving.GapAnalyzer

	// Loader reads the CV file named on the form. Required.
	Loader driven.DocumentLoader

	// Ingestion rebuilds the vector store. Optional; the menu entry
	// reports an error without it.
	Ingestion driving.IngestionService

	// DefaultCV pre-fills the CV path field.
	DefaultCV string

	// OutDir is where saved reports are written.
	OutDir string

	// Notice is shown on the menu at start, e.g. a missing LLM key.
	Notice string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analyzer == nil {
		return ErrMissingAnalyzer
	}
	if p.Loader == nil {
		return ErrMissingLoader
	}
	return nil
}
