package tui

import "errors"

// ErrMissingAnalyzer is returned when the gap analyzer is not provided.
var ErrMissingAnalyzer = errors.New("tui: gap analyzer is required")

// ErrMissingLoader is returned when the document loader is not provided.
var ErrMissingLoader = errors.New("tui: document loader is required")

// ErrIngestionDisabled is reported when a rebuild is requested without an ingestion service.
var ErrIngestionDisabled = errors.New("tui: ingestion is not available")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
