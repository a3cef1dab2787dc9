package mcp

import (
	"github.com/custodia-labs/skillgap/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analyzer retrieves job context and writes gap reports.
	Analyzer driving.GapAnalyzer

	// Ingestion rebuilds the vector store. Optional.
	Ingestion driving.IngestionService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Analyzer == nil {
		return ErrMissingAnalyzer
	}
	return nil
}
