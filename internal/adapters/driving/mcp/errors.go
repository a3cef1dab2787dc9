// Package mcp provides an MCP (Model Context Protocol) server adapter for skillgap.
// It lets AI assistants retrieve market job context and request gap reports.
package mcp

import "errors"

// ErrMissingAnalyzer is returned when the gap analyzer is not provided.
var ErrMissingAnalyzer = errors.New("mcp: gap analyzer is required")

// ErrIngestionDisabled is returned by the ingest tool when no ingestion service is wired.
var ErrIngestionDisabled = errors.New("mcp: ingestion is not available")
