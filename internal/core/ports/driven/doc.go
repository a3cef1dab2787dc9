// Package driven holds the outbound ports: everything the services call
// to reach files, models and storage.
//
// The ingest path is DocumentLoader, NormaliserRegistry,
// PostProcessorPipeline, EmbeddingService and VectorStore. The analysis
// path adds LLMService and PromptStore. ConfigStore backs settings, and
// DirectoryWatcher is only needed by watch mode.
//
// This package imports domain and nothing else from the module.
package driven
