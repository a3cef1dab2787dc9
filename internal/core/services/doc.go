// Package services wires the driven ports into the operations the CLI,
// TUI and MCP server call: ingestion, gap analysis and settings.
package services
