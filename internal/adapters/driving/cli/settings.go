package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Manage application settings",
	Long: `View and configure paths, chunking, AI providers and the vector store.

Settings are read from ~/.skillgap/config.toml. API keys are taken from the
environment (or a .env file) and override the config file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting by its dotted key, for example:

  skillgap settings set retrieval.k 8
  skillgap settings set vector_store.backend redis
  skillgap settings set ingestion.extensions .txt,.pdf,.docx

Run 'skillgap settings keys' for the full list.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long:  `Configure the provider that turns chunks and roles into vectors.`,
	RunE:  runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider that writes the gap report.`,
	RunE:  runSettingsLLM,
}

var settingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check connectivity to the configured providers",
	Args:  cobra.NoArgs,
	RunE:  runSettingsCheck,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsCheckCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Paths]")
	cmd.Printf("  Jobs: %s\n", settings.Paths.JobsDir)
	cmd.Printf("  CVs: %s\n", settings.Paths.CVsDir)
	cmd.Printf("  Store: %s\n", settings.Paths.StoreDir)
	cmd.Printf("  Default CV: %s\n", settings.Paths.DefaultCV)
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Size: %d\n", settings.Chunking.Size)
	cmd.Printf("  Overlap: %d\n", settings.Chunking.Overlap)
	cmd.Printf("  Extensions: %s\n", strings.Join(settings.Ingestion.Extensions, ", "))
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	printAPIKey(cmd, settings.Embedding.Provider, settings.Embedding.APIKey)
	cmd.Printf("  Normalize: %t\n", settings.Embedding.Normalize)
	if settings.Embedding.RequestsPerSecond > 0 {
		cmd.Printf("  Rate limit: %g req/s\n", settings.Embedding.RequestsPerSecond)
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.Embedding.IsConfigured()))
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	printAPIKey(cmd, settings.LLM.Provider, settings.LLM.APIKey)
	cmd.Printf("  Temperature: %g\n", settings.LLM.Temperature)
	if settings.LLM.MaxTokens > 0 {
		cmd.Printf("  Max tokens: %d\n", settings.LLM.MaxTokens)
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.LLM.IsConfigured()))
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  K: %d\n", settings.Retrieval.K)
	cmd.Println()

	cmd.Println("[Vector Store]")
	cmd.Printf("  Backend: %s\n", settings.VectorStore.Backend)
	cmd.Printf("  Collection: %s\n", settings.VectorStore.Collection)
	if settings.VectorStore.Backend == domain.VectorBackendRedis {
		cmd.Printf("  Redis: %s (db %d)\n", settings.VectorStore.RedisAddr, settings.VectorStore.RedisDB)
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'skillgap settings llm' or 'skillgap settings embedding' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printAPIKey(cmd *cobra.Command, provider domain.AIProvider, key string) {
	if !provider.RequiresAPIKey() {
		return
	}
	if key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	} else {
		cmd.Printf("  API Key: (not set, export %s)\n", provider.APIKeyEnv())
	}
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], displayValue(args[0], args[1]))
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

// displayValue masks secrets echoed back to the terminal.
func displayValue(key, value string) string {
	if strings.HasSuffix(key, "api_key") || strings.HasSuffix(key, "password") {
		return maskAPIKey(value)
	}
	return value
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return runProviderWizard(cmd, embeddingWizard())
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return runProviderWizard(cmd, llmWizard())
}

func runSettingsCheck(cmd *cobra.Command, _ []string) error {
	if settingsService == nil || configValidator == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	var failed bool
	cmd.Printf("Embedding (%s, %s)... ", settings.Embedding.Provider, settings.Embedding.Model)
	if err := configValidator.ValidateEmbedding(cmd.Context(), settings.Embedding); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		failed = true
	} else {
		cmd.Println("OK")
	}

	cmd.Printf("LLM (%s, %s)... ", settings.LLM.Provider, settings.LLM.Model)
	if err := configValidator.ValidateLLM(cmd.Context(), settings.LLM); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		failed = true
	} else {
		cmd.Println("OK")
	}

	if failed {
		return errors.New("provider check failed")
	}
	return nil
}

// providerWizard is the interactive flow shared by "settings embedding"
// and "settings llm": pick a provider, a model and a key, then store and
// optionally validate them.
type providerWizard struct {
	kind      string
	providers []domain.AIProvider
	defaults  map[domain.AIProvider]string
	store     func(p domain.AIProvider, model, apiKey string) error
	validate  func(ctx context.Context, s *domain.Settings) error
	footer    string
}

func embeddingWizard() providerWizard {
	w := providerWizard{
		kind:      "embedding",
		providers: domain.AllEmbeddingProviders(),
		defaults:  domain.DefaultEmbeddingModels(),
		store:     settingsService.SetEmbeddingProvider,
		footer:    "Run 'skillgap ingest' to rebuild the vector store with the new model.",
	}
	if configValidator != nil {
		w.validate = func(ctx context.Context, s *domain.Settings) error {
			return configValidator.ValidateEmbedding(ctx, s.Embedding)
		}
	}
	return w
}

func llmWizard() providerWizard {
	w := providerWizard{
		kind:      "LLM",
		providers: domain.AllLLMProviders(),
		defaults:  domain.DefaultLLMModels(),
		store:     settingsService.SetLLMProvider,
	}
	if configValidator != nil {
		w.validate = func(ctx context.Context, s *domain.Settings) error {
			return configValidator.ValidateLLM(ctx, s.LLM)
		}
	}
	return w
}

func runProviderWizard(cmd *cobra.Command, w providerWizard) error {
	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Printf("Select %s provider\n", w.kind)
	for i, p := range w.providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	provider := w.providers[parseChoice(readLine(reader), len(w.providers), 1)-1]

	model := w.defaults[provider]
	cmd.Printf("Enter model name [%s]: ", model)
	if typed := readLine(reader); typed != "" {
		model = typed
	}

	apiKey, err := promptAPIKey(cmd, reader, provider)
	if err != nil {
		return err
	}
	if err := w.store(provider, model, apiKey); err != nil {
		return fmt.Errorf("configure %s provider: %w", w.kind, err)
	}

	if w.validate != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("reload settings: %w", err)
		}
		cmd.Print("Validating configuration... ")
		if err := w.validate(cmd.Context(), settings); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("%s provider check: %w", w.kind, err)
		}
		cmd.Println("OK")
	}

	cmd.Printf("%s provider set to %s (%s)\n", w.kind, provider.Description(), model)
	if w.footer != "" {
		cmd.Println(w.footer)
	}
	return nil
}

// promptAPIKey asks for a key unless the provider is local or the
// environment already supplies one. An empty answer keeps the environment key.
func promptAPIKey(cmd *cobra.Command, reader *bufio.Reader, provider domain.AIProvider) (string, error) {
	if !provider.RequiresAPIKey() {
		return "", nil
	}
	envKey := os.Getenv(provider.APIKeyEnv())
	if envKey != "" {
		cmd.Printf("Enter API key [%s from %s]: ", maskAPIKey(envKey), provider.APIKeyEnv())
	} else {
		cmd.Print("Enter API key: ")
	}
	apiKey := readPassword(reader)
	cmd.Println()
	if apiKey == "" && envKey == "" {
		return "", fmt.Errorf("API key is required for %s: %w", provider, domain.ErrMissingAPIKey)
	}
	return apiKey, nil
}

// readLine returns "" on read errors so EOF picks the default.
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo on a terminal and falls back to reader.
func readPassword(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
