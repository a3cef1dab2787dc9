package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillgap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/skillgap/internal/app"
	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/core/ports/driven"
	"github.com/custodia-labs/skillgap/internal/core/services"
	"github.com/custodia-labs/skillgap/internal/vecmath"
)

// skillEmbedder counts skill words so related texts land close together.
type skillEmbedder struct{}

var skillWords = []string{"python", "sql", "excel", "react", "javascript", "css"}

func (skillEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	lower := strings.ToLower(text)
	vec := make([]float32, len(skillWords)+1)
	for i, w := range skillWords {
		vec[i] = float32(strings.Count(lower, w))
	}
	vec[len(skillWords)] = 0.01
	return vecmath.Normalize(vec), nil
}

func (e skillEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = e.Embed(ctx, t)
	}
	return out, nil
}

func (skillEmbedder) Dimensions() int              { return len(skillWords) + 1 }
func (skillEmbedder) ModelName() string            { return "skills" }
func (skillEmbedder) Ping(_ context.Context) error { return nil }
func (skillEmbedder) Close() error                 { return nil }

// stubLLM returns a fixed report and records the last prompt.
type stubLLM struct {
	lastPrompt string
}

func (l *stubLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	l.lastPrompt = prompt
	return "## Skill Gap Report", nil
}

func (l *stubLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	l.lastPrompt = messages[len(messages)-1].Content
	return "## Skill Gap Report\n\nLearn **SQL** window functions.", nil
}

func (l *stubLLM) ModelName() string            { return "stub" }
func (l *stubLLM) Ping(_ context.Context) error { return nil }
func (l *stubLLM) Close() error                 { return nil }

// stubValidator implements driven.AIConfigValidator.
type stubValidator struct {
	embeddingErr error
	llmErr       error
}

func (v *stubValidator) ValidateEmbedding(_ context.Context, _ domain.EmbeddingSettings) error {
	return v.embeddingErr
}

func (v *stubValidator) ValidateLLM(_ context.Context, _ domain.LLMSettings) error {
	return v.llmErr
}

type testEnv struct {
	app      *app.App
	llm      *stubLLM
	settings domain.Settings
	root     string
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// setupTestServices wires an in-memory application with two job
// descriptions and one CV on disk, and resets command state afterwards.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	settings := domain.DefaultSettings()
	settings.Paths.JobsDir = filepath.Join(root, "jobs")
	settings.Paths.CVsDir = filepath.Join(root, "cvs")
	settings.Paths.StoreDir = filepath.Join(root, "store")
	settings.Paths.DefaultCV = filepath.Join(root, "cvs", "student.txt")
	settings.VectorStore.Backend = domain.VectorBackendMemory

	writeTestFile(t, settings.Paths.JobsDir, "data_analyst.txt",
		"JOB TITLE: Data Analyst\nPython, SQL and Excel reporting. SQL dashboards.")
	writeTestFile(t, settings.Paths.JobsDir, "frontend.txt",
		"JOB TITLE: Frontend Developer\nReact, JavaScript and CSS.")
	writeTestFile(t, settings.Paths.CVsDir, "student.txt",
		"Student CV\nPython coursework, Excel.")

	llm := &stubLLM{}
	a, err := app.Build(context.Background(), settings, app.Options{
		PromptDir: filepath.Join(root, "prompts"),
		Embedder:  skillEmbedder{},
		LLM:       llm,
	})
	require.NoError(t, err)

	prevApp, prevSettings, prevValidator := application, settingsService, configValidator
	application = a
	settingsService = services.NewSettingsService(memory.NewConfigStore())
	configValidator = &stubValidator{}

	t.Cleanup(func() {
		_ = a.Close()
		application, settingsService, configValidator = prevApp, prevSettings, prevValidator
		resetFlags()
	})

	return &testEnv{app: a, llm: llm, settings: settings, root: root}
}

// resetFlags restores command flag variables between tests.
func resetFlags() {
	analyzeRole, analyzeCV, analyzeRaw, analyzeSave, analyzeSaveDir = "", "", false, false, "."
	jobsRole, jobsK, jobsJSON = "", 0, false
	ingestWatch = false
	tuiOutDir = "."
	mcpPort, mcpHost, mcpReadOnly = 0, "localhost", false
}

// execute runs the root command with args and optional stdin.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	if stdin != nil {
		rootCmd.SetIn(stdin)
	}
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

var errStub = errors.New("stub failure")
