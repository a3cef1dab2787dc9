package domain

import "errors"

// General.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedType     = errors.New("unsupported type")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrConfigNotFound      = errors.New("config key not found")
)

// Loading and ingestion. ErrMissingDirectory is always wrapped together
// with ErrNotFound.
var (
	ErrMissingDirectory = errors.New("directory does not exist")
	ErrUnsupportedFile  = errors.New("unsupported file")
	ErrCorruptFile      = errors.New("corrupt file")
	ErrNoDocuments      = errors.New("no documents found")
)

// Vector store. ErrMissingVectorStore means nothing has been written yet
// and is wrapped together with ErrNotFound.
var (
	ErrMissingVectorStore     = errors.New("vector store not built")
	ErrDimensionMismatch      = errors.New("embedding dimension mismatch")
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")
)

// Model providers.
var (
	ErrLLMUnavailable       = errors.New("LLM service unavailable")
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
	ErrRateLimited          = errors.New("rate limited")
	ErrAuthInvalid          = errors.New("authentication invalid")
	ErrMissingAPIKey        = errors.New("API key not set")
)

var hints = []struct {
	err  error
	hint string
}{
	{ErrMissingVectorStore, "run 'skillgap ingest' first"},
	{ErrNoDocuments, "add .txt or .pdf files to the jobs and CVs directories"},
	{ErrMissingDirectory, "create the directory or set paths.jobs_dir / paths.cvs_dir"},
	{ErrMissingAPIKey, "put the key in your environment or a .env file"},
	{ErrAuthInvalid, "check the API key"},
	{ErrRateLimited, "wait a moment, or lower embedding.requests_per_second"},
	{ErrDimensionMismatch, "the index was built with another embedding model, run 'skillgap ingest' again"},
	{ErrVectorStoreUnavailable, "check vector_store settings with 'skillgap settings show'"},
}

// Hint suggests what the user can do about err, or returns "" when
// err is not one of the well-known failures.
func Hint(err error) string {
	if err == nil {
		return ""
	}
	for _, h := range hints {
		if errors.Is(err, h.err) {
			return h.hint
		}
	}
	return ""
}
