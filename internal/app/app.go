// Package app wires the adapters and core services into a runnable application.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/skillgap/internal/adapters/driven/ai"
	"github.com/custodia-labs/skillgap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/skillgap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/skillgap/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/skillgap/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/skillgap/internal/connectors/filesystem"
	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/core/ports/driving"
	"github.com/custodia-labs/skillgap/internal/core/services"
	"github.com/custodia-labs/skillgap/internal/logger"
	"github.com/custodia-labs/skillgap/internal/normalisers"
	"github.com/custodia-labs/skillgap/internal/postprocessors"
)

// App holds the services used by the CLI, TUI and MCP adapters.
type App struct {
	Settings  domain.Settings
	Analyzer  driving.GapAnalyzer
	Ingestion driving.IngestionService
	Loader    driven.DocumentLoader
	Watcher   driven.DirectoryWatcher
	Store     driven.VectorStore

	// LLMErr is set when the LLM could not be created. Ingestion still
	// works; analysis reports the error to the user.
	LLMErr error

	closers []func() error
}

// Options overrides parts of the wiring.
type Options struct {
	// PromptDir holds prompt overrides. Empty uses ~/.skillgap/prompts.
	PromptDir string

	// Embedder replaces the provider built from settings.
	Embedder driven.EmbeddingService

	// LLM replaces the provider built from settings.
	LLM driven.LLMService

	// Store replaces the vector store built from settings.
	Store driven.VectorStore
}

// Build creates every service from settings.
func Build(ctx context.Context, settings domain.Settings, opts Options) (*App, error) {
	a := &App{Settings: settings}

	store := opts.Store
	if store == nil {
		var err error
		store, err = OpenVectorStore(ctx, settings.VectorStore, settings.Paths.StoreDir)
		if err != nil {
			return nil, err
		}
	}
	a.Store = store
	a.closers = append(a.closers, store.Close)

	embedder := opts.Embedder
	if embedder == nil {
		var err error
		embedder, err = ai.CreateEmbeddingService(ctx, settings.Embedding)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("create embedding service: %w", err)
		}
	}
	a.closers = append(a.closers, embedder.Close)

	llm := opts.LLM
	if llm == nil {
		var err error
		llm, err = ai.CreateLLMService(ctx, settings.LLM)
		if err != nil {
			logger.Warn("LLM unavailable: %v", err)
			a.LLMErr = fmt.Errorf("create LLM service: %w", err)
		}
	}
	if llm != nil {
		a.closers = append(a.closers, llm.Close)
	}

	prompts, err := file.NewPromptStore(opts.PromptDir)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("create prompt store: %w", err)
	}

	pipeline, err := postprocessors.NewDefaultPipeline(settings.Chunking)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("create chunking pipeline: %w", err)
	}

	loader := filesystem.NewLoader(
		normalisers.NewDefaultRegistry(),
		filesystem.WithExtensions(settings.Ingestion.Extensions...),
	)
	watcher := filesystem.NewWatcher(loader)
	a.closers = append(a.closers, watcher.Close)

	index := services.NewVectorIndex(embedder, store)
	a.Loader = loader
	a.Watcher = watcher
	a.Ingestion = services.NewIngestionService(loader, pipeline, index, settings.Paths)
	a.Analyzer = services.NewGapAnalyzer(index, llm, prompts, services.AnalyzerConfig{
		K:           settings.Retrieval.K,
		Temperature: settings.LLM.Temperature,
		MaxTokens:   settings.LLM.MaxTokens,
	})

	logger.Debug("Vector store: %s", store.Location())
	logger.Debug("Embedding: %s (%s)", settings.Embedding.Provider, settings.Embedding.Model)
	return a, nil
}

// OpenVectorStore opens the configured vector backend.
func OpenVectorStore(ctx context.Context, cfg domain.VectorStoreSettings, storeDir string) (driven.VectorStore, error) {
	switch cfg.Backend {
	case domain.VectorBackendSQLite, "":
		store, err := sqlite.NewStore(storeDir, cfg.Collection)
		if err != nil {
			return nil, fmt.Errorf("open sqlite vector store: %w", err)
		}
		return store, nil

	case domain.VectorBackendRedis:
		store, err := redis.NewVectorStore(ctx, redis.Config{
			Addr:       cfg.RedisAddr,
			Password:   cfg.RedisPassword,
			DB:         cfg.RedisDB,
			Collection: cfg.Collection,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis vector store: %w", err)
		}
		return store, nil

	case domain.VectorBackendMemory:
		return memory.NewVectorStore(), nil

	default:
		return nil, fmt.Errorf("vector backend %q: %w", cfg.Backend, domain.ErrInvalidInput)
	}
}

// Close releases every resource in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
