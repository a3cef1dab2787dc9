package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// mockAnalyzer implements driving.GapAnalyzer for testing.
type mockAnalyzer struct {
	report  string
	titles  []string
	results []domain.SearchResult
	cvText  string
	role    string
}

func (m *mockAnalyzer) GetRelevantJobs(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	return m.results, nil
}

func (m *mockAnalyzer) AnalyzeGap(_ context.Context, cvText, role string) string {
	m.cvText = cvText
	m.role = role
	return m.report
}

func (m *mockAnalyzer) JobTitles(_ context.Context) []string {
	return m.titles
}

// mockLoader implements driven.DocumentLoader for testing.
type mockLoader struct {
	files map[string]string
	path  string
}

func (m *mockLoader) Load(_ context.Context, _ string, _ domain.DocType) ([]domain.Document, error) {
	return nil, nil
}

func (m *mockLoader) LoadFile(_ context.Context, path string, docType domain.DocType) (*domain.Document, error) {
	m.path = path
	content, ok := m.files[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.Document{
		URI:      path,
		Content:  content,
		Metadata: map[string]any{domain.MetaDocType: string(docType)},
	}, nil
}

// mockIngestion implements driving.IngestionService for testing.
type mockIngestion struct {
	summary *domain.IngestionSummary
	err     error
	calls   int
}

func (m *mockIngestion) RunIngestion(_ context.Context) (*domain.IngestionSummary, error) {
	m.calls++
	return m.summary, m.err
}

type testDeps struct {
	analyzer  *mockAnalyzer
	loader    *mockLoader
	ingestion *mockIngestion
}

func newTestApp(t *testing.T) (*App, *testDeps) {
	t.Helper()
	deps := &testDeps{
		analyzer: &mockAnalyzer{report: "## Gap report", titles: []string{"QA Engineer"}},
		loader:   &mockLoader{files: map[string]string{"cv.txt": "Python, SQL"}},
		ingestion: &mockIngestion{summary: &domain.IngestionSummary{
			JobDocuments: 3, CVDocuments: 1, Chunks: 9, StoreLocation: "memory",
		}},
	}
	app, err := NewApp(&Ports{
		Analyzer:  deps.analyzer,
		Loader:    deps.loader,
		Ingestion: deps.ingestion,
		DefaultCV: "cv.txt",
		OutDir:    t.TempDir(),
	})
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app, deps
}

// drain runs cmd and feeds its message back into the app.
func drain(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	app.Update(cmd())
}

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.True(t, app.Ready())
	assert.NotNil(t, app.Init())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(nil)
	assert.ErrorIs(t, err, ErrInvalidPorts)
	assert.Nil(t, app)

	app, err = NewApp(&Ports{Loader: &mockLoader{}})
	assert.ErrorIs(t, err, ErrMissingAnalyzer)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(&Ports{Analyzer: &mockAnalyzer{}, Loader: &mockLoader{}})
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Analyze CV")
}

func TestApp_NoticeShownOnMenu(t *testing.T) {
	app, err := NewApp(&Ports{
		Analyzer: &mockAnalyzer{},
		Loader:   &mockLoader{},
		Notice:   "LLM unavailable",
	})
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	assert.Contains(t, app.View(), "LLM unavailable")
}

func TestApp_AnalyzeFlow(t *testing.T) {
	app, deps := newTestApp(t)

	drain(t, app, app.loadTitles())
	app.Update(messages.ViewChanged{View: messages.ViewAnalyze})
	assert.Equal(t, messages.ViewAnalyze, app.CurrentView())

	for _, r := range "Data Scientist" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	// AnalysisRequested, then ReportReady.
	_, cmd = app.Update(cmd())
	drain(t, app, cmd)

	assert.Equal(t, messages.ViewReport, app.CurrentView())
	assert.Equal(t, "Data Scientist", deps.analyzer.role)
	assert.Equal(t, "Python, SQL", deps.analyzer.cvText)
	assert.Equal(t, "cv.txt", deps.loader.path)
	assert.Contains(t, app.View(), "Gap report")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	drain(t, app, cmd)
	assert.Equal(t, messages.ViewAnalyze, app.CurrentView())
}

func TestApp_AnalysisWithMissingCV(t *testing.T) {
	app, deps := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewAnalyze})

	_, cmd := app.Update(messages.AnalysisRequested{Role: "QA", CVPath: "missing.pdf"})
	require.NotNil(t, cmd)
	msg := cmd()

	ready, ok := msg.(messages.ReportReady)
	require.True(t, ok)
	require.ErrorIs(t, ready.Err, domain.ErrNotFound)
	assert.Contains(t, ready.Err.Error(), "CV not found at missing.pdf")

	app.Update(msg)
	assert.Equal(t, messages.ViewAnalyze, app.CurrentView())
	assert.Empty(t, deps.analyzer.role, "analyzer not called")
}

func TestApp_AnalysisWithEmptyCV(t *testing.T) {
	app, deps := newTestApp(t)
	deps.loader.files["blank.txt"] = "  \n"

	_, cmd := app.Update(messages.AnalysisRequested{Role: "QA", CVPath: "blank.txt"})
	ready := cmd().(messages.ReportReady)

	assert.ErrorIs(t, ready.Err, domain.ErrInvalidInput)
}

func TestApp_AnalysisWithoutAnyCVPath(t *testing.T) {
	app, err := NewApp(&Ports{Analyzer: &mockAnalyzer{}, Loader: &mockLoader{}})
	require.NoError(t, err)

	_, cmd := app.Update(messages.AnalysisRequested{Role: "QA"})
	ready := cmd().(messages.ReportReady)

	assert.ErrorIs(t, ready.Err, domain.ErrInvalidInput)
}

func TestApp_Ingestion(t *testing.T) {
	app, deps := newTestApp(t)

	_, cmd := app.Update(messages.IngestionRequested{})
	require.NotNil(t, cmd)
	assert.True(t, app.Ingesting())
	assert.Contains(t, app.View(), "Rebuilding index...")

	_, again := app.Update(messages.IngestionRequested{})
	assert.Nil(t, again, "one rebuild at a time")

	_, titlesCmd := app.Update(cmd())
	assert.False(t, app.Ingesting())
	assert.Equal(t, 1, deps.ingestion.calls)
	assert.Equal(t, "Indexed 3 job description(s) and 1 CV(s) into 9 chunk(s)", app.Notice())
	require.NotNil(t, titlesCmd)
	assert.Equal(t, messages.TitlesLoaded{Titles: []string{"QA Engineer"}}, titlesCmd())
}

func TestApp_IngestionError(t *testing.T) {
	app, deps := newTestApp(t)
	deps.ingestion.err = domain.ErrNoDocuments

	_, cmd := app.Update(messages.IngestionRequested{})
	app.Update(cmd())

	assert.ErrorIs(t, app.Err(), domain.ErrNoDocuments)
	assert.Contains(t, app.View(), "Error: no documents found")
}

func TestApp_IngestionDisabled(t *testing.T) {
	app, err := NewApp(&Ports{Analyzer: &mockAnalyzer{}, Loader: &mockLoader{}})
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	_, cmd := app.Update(messages.IngestionRequested{})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, app.Err(), ErrIngestionDisabled)
}

func TestApp_JobsView(t *testing.T) {
	app, deps := newTestApp(t)
	deps.analyzer.results = []domain.SearchResult{{
		Chunk: domain.Chunk{
			Content:  "JOB TITLE: QA Engineer",
			Metadata: map[string]any{domain.MetaSourceName: "qa.txt"},
		},
		Score: 0.7,
	}}

	app.Update(messages.ViewChanged{View: messages.ViewJobs})
	for _, r := range "QA" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(t, app, cmd)

	assert.Contains(t, app.View(), "qa.txt")
}

func TestApp_HelpView(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	view := app.View()
	assert.Contains(t, view, "raw markdown")
	assert.Contains(t, view, "rebuild index")
	assert.Contains(t, view, "Browse Jobs")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
}

func TestApp_Quit(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
