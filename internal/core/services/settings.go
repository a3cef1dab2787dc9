package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyJobsDir          = "paths.jobs_dir"
	keyCVsDir           = "paths.cvs_dir"
	keyStoreDir         = "paths.store_dir"
	keyDefaultCV        = "paths.default_cv"
	keyChunkSize        = "chunking.size"
	keyChunkOverlap     = "chunking.overlap"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyEmbedNormalize   = "embedding.normalize"
	keyEmbedRPS         = "embedding.requests_per_second"
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyLLMTemperature   = "llm.temperature"
	keyLLMMaxTokens     = "llm.max_tokens"
	keyRetrievalK       = "retrieval.k"
	keyExtensions       = "ingestion.extensions"
	keyVectorBackend    = "vector_store.backend"
	keyVectorCollection = "vector_store.collection"
	keyRedisAddr        = "vector_store.redis_addr"
	keyRedisPassword    = "vector_store.redis_password"
	keyRedisDB          = "vector_store.redis_db"
)

// Environment overrides.
const (
	envLLMProvider   = "SKILLGAP_LLM_PROVIDER"
	envLLMModel      = "SKILLGAP_LLM_MODEL"
	envEmbedProvider = "SKILLGAP_EMBEDDING_PROVIDER"
	envEmbedModel    = "SKILLGAP_EMBEDDING_MODEL"
	envVectorBackend = "SKILLGAP_VECTOR_BACKEND"
	envRedisAddr     = "REDIS_ADDR"
)

// keyKind describes how Set parses a value.
type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindBool
	kindList
)

var settableKeys = map[string]keyKind{
	keyJobsDir:          kindString,
	keyCVsDir:           kindString,
	keyStoreDir:         kindString,
	keyDefaultCV:        kindString,
	keyChunkSize:        kindInt,
	keyChunkOverlap:     kindInt,
	keyEmbedProvider:    kindString,
	keyEmbedModel:       kindString,
	keyEmbedBaseURL:     kindString,
	keyEmbedAPIKey:      kindString,
	keyEmbedNormalize:   kindBool,
	keyEmbedRPS:         kindFloat,
	keyLLMProvider:      kindString,
	keyLLMModel:         kindString,
	keyLLMBaseURL:       kindString,
	keyLLMAPIKey:        kindString,
	keyLLMTemperature:   kindFloat,
	keyLLMMaxTokens:     kindInt,
	keyRetrievalK:       kindInt,
	keyExtensions:       kindList,
	keyVectorBackend:    kindString,
	keyVectorCollection: kindString,
	keyRedisAddr:        kindString,
	keyRedisPassword:    kindString,
	keyRedisDB:          kindInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service reading the process environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// WithEnv replaces the environment lookup. Used by tests.
func (s *SettingsService) WithEnv(getenv func(string) string) *SettingsService {
	s.getenv = getenv
	return s
}

// Get returns defaults overlaid with the config file and then the environment.
func (s *SettingsService) Get() (*domain.Settings, error) {
	d := domain.DefaultSettings()

	settings := &domain.Settings{
		Paths: domain.PathSettings{
			JobsDir:   stringOr(s.configStore, keyJobsDir, d.Paths.JobsDir),
			CVsDir:    stringOr(s.configStore, keyCVsDir, d.Paths.CVsDir),
			StoreDir:  stringOr(s.configStore, keyStoreDir, d.Paths.StoreDir),
			DefaultCV: stringOr(s.configStore, keyDefaultCV, d.Paths.DefaultCV),
		},
		Chunking: domain.ChunkingSettings{
			Size:    intOr(s.configStore, keyChunkSize, d.Chunking.Size),
			Overlap: intOr(s.configStore, keyChunkOverlap, d.Chunking.Overlap),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:          s.getProvider(keyEmbedProvider, envEmbedProvider, d.Embedding.Provider),
			Model:             stringOr(s.configStore, keyEmbedModel, d.Embedding.Model),
			BaseURL:           s.configStore.GetString(keyEmbedBaseURL),
			APIKey:            s.configStore.GetString(keyEmbedAPIKey),
			Normalize:         boolOr(s.configStore, keyEmbedNormalize, d.Embedding.Normalize),
			RequestsPerSecond: floatOr(s.configStore, keyEmbedRPS, d.Embedding.RequestsPerSecond),
		},
		LLM: domain.LLMSettings{
			Provider:    s.getProvider(keyLLMProvider, envLLMProvider, d.LLM.Provider),
			Model:       stringOr(s.configStore, keyLLMModel, d.LLM.Model),
			BaseURL:     s.configStore.GetString(keyLLMBaseURL),
			APIKey:      s.configStore.GetString(keyLLMAPIKey),
			Temperature: floatOr(s.configStore, keyLLMTemperature, d.LLM.Temperature),
			MaxTokens:   intOr(s.configStore, keyLLMMaxTokens, d.LLM.MaxTokens),
		},
		Retrieval: domain.RetrievalSettings{
			K: intOr(s.configStore, keyRetrievalK, d.Retrieval.K),
		},
		Ingestion: domain.IngestionSettings{
			Extensions: s.getExtensions(d.Ingestion.Extensions),
		},
		VectorStore: domain.VectorStoreSettings{
			Backend:       s.getBackend(d.VectorStore.Backend),
			Collection:    stringOr(s.configStore, keyVectorCollection, d.VectorStore.Collection),
			RedisAddr:     stringOr(s.configStore, keyRedisAddr, d.VectorStore.RedisAddr),
			RedisPassword: s.configStore.GetString(keyRedisPassword),
			RedisDB:       s.configStore.GetInt(keyRedisDB),
		},
	}

	// A provider switch without an explicit model picks that provider's default.
	if s.configStore.GetString(keyLLMModel) == "" && settings.LLM.Provider != d.LLM.Provider {
		settings.LLM.Model = domain.DefaultLLMModels()[settings.LLM.Provider]
	}
	if s.configStore.GetString(keyEmbedModel) == "" && settings.Embedding.Provider != d.Embedding.Provider {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[settings.Embedding.Provider]
	}

	s.applyEnv(settings)
	return settings, nil
}

// applyEnv overlays environment variables, which win over the config file.
func (s *SettingsService) applyEnv(settings *domain.Settings) {
	if v := s.getenv(envLLMModel); v != "" {
		settings.LLM.Model = v
	}
	if v := s.getenv(envEmbedModel); v != "" {
		settings.Embedding.Model = v
	}
	if v := s.getenv(envRedisAddr); v != "" {
		settings.VectorStore.RedisAddr = v
	}
	if v := domain.VectorBackend(s.getenv(envVectorBackend)); v.IsValid() {
		settings.VectorStore.Backend = v
	}
	if env := settings.LLM.Provider.APIKeyEnv(); env != "" {
		if v := s.getenv(env); v != "" {
			settings.LLM.APIKey = v
		}
	}
	if env := settings.Embedding.Provider.APIKeyEnv(); env != "" {
		if v := s.getenv(env); v != "" {
			settings.Embedding.APIKey = v
		}
	}
}

// Set validates and persists a single key.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s expects an integer: %w", key, domain.ErrInvalidInput)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s expects a number: %w", key, domain.ErrInvalidInput)
		}
		parsed = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false: %w", key, domain.ErrInvalidInput)
		}
		parsed = b
	case kindList:
		parsed = splitList(value)
	default:
		parsed = value
	}

	if err := validateValue(key, parsed); err != nil {
		return err
	}
	return s.configStore.Set(key, parsed)
}

// Keys lists every key accepted by Set, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}

	if err := s.configStore.Set(keyLLMProvider, provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if apiKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, apiKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	valid := false
	for _, p := range domain.AllEmbeddingProviders() {
		if p == provider {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}

	if model == "" {
		model = domain.DefaultEmbeddingModels()[provider]
	}

	if err := s.configStore.Set(keyEmbedProvider, provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if apiKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, apiKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	return nil
}

// Validate checks that the merged settings can run an analysis.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Chunking.Size <= 0 {
		return fmt.Errorf("chunking.size must be positive: %w", domain.ErrInvalidInput)
	}
	if settings.Chunking.Overlap < 0 || settings.Chunking.Overlap >= settings.Chunking.Size {
		return fmt.Errorf("chunking.overlap must be in [0, size): %w", domain.ErrInvalidInput)
	}
	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("embedding provider %s is not configured: %w",
			settings.Embedding.Provider, domain.ErrEmbeddingUnavailable)
	}
	if !settings.LLM.IsConfigured() {
		if settings.LLM.Provider.RequiresAPIKey() {
			return fmt.Errorf("set %s in your environment or .env file: %w",
				settings.LLM.Provider.APIKeyEnv(), domain.ErrMissingAPIKey)
		}
		return fmt.Errorf("LLM provider %s is not configured: %w",
			settings.LLM.Provider, domain.ErrLLMUnavailable)
	}
	return nil
}

// validateValue rejects enum values that the application cannot use.
func validateValue(key string, value any) error {
	switch key {
	case keyLLMProvider, keyEmbedProvider:
		if !domain.AIProvider(value.(string)).IsValid() {
			return fmt.Errorf("unknown provider %q: %w", value, domain.ErrInvalidInput)
		}
	case keyVectorBackend:
		if !domain.VectorBackend(value.(string)).IsValid() {
			return fmt.Errorf("unknown vector backend %q: %w", value, domain.ErrInvalidInput)
		}
	case keyChunkSize, keyRetrievalK:
		if value.(int) <= 0 {
			return fmt.Errorf("%s must be positive: %w", key, domain.ErrInvalidInput)
		}
	case keyChunkOverlap:
		if value.(int) < 0 {
			return fmt.Errorf("%s must not be negative: %w", key, domain.ErrInvalidInput)
		}
	}
	return nil
}

// splitList parses a comma-separated extension list, normalising each entry.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		out = append(out, p)
	}
	return out
}

// Helper methods for reading config with defaults.

// The *Or helpers fall back to def when the key is unset. Strings and
// ints also treat their zero value as unset.

func stringOr(r driven.ConfigReader, key, def string) string {
	if v := r.GetString(key); v != "" {
		return v
	}
	return def
}

func intOr(r driven.ConfigReader, key string, def int) int {
	if v := r.GetInt(key); v != 0 {
		return v
	}
	return def
}

func floatOr(r driven.ConfigReader, key string, def float64) float64 {
	if _, ok := r.Get(key); !ok {
		return def
	}
	return r.GetFloat(key)
}

func boolOr(r driven.ConfigReader, key string, def bool) bool {
	if _, ok := r.Get(key); !ok {
		return def
	}
	return r.GetBool(key)
}

func (s *SettingsService) getExtensions(defaultVal []string) []string {
	val := s.configStore.GetStringSlice(keyExtensions)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key, env string, defaultVal domain.AIProvider) domain.AIProvider {
	if p := domain.AIProvider(s.getenv(env)); p.IsValid() {
		return p
	}
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getBackend(defaultVal domain.VectorBackend) domain.VectorBackend {
	val := domain.VectorBackend(s.configStore.GetString(keyVectorBackend))
	if !val.IsValid() {
		return defaultVal
	}
	return val
}
