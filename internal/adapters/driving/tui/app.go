package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/views/analyze"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/views/jobs"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui/views/report"
	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView    *menu.View
	analyzeView *analyze.View
	reportView  *report.View
	jobsView    *jobs.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// notice is the last informational line shown under the menu.
	notice string

	// ingesting is true while a rebuild runs.
	ingesting bool

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		menuView:    menu.NewView(s, km),
		analyzeView: analyze.NewView(s, km, ports.DefaultCV),
		reportView:  report.NewView(s, km, ports.OutDir),
		jobsView:    jobs.NewView(s, km, ports.Analyzer),
		currentView: messages.ViewMenu,
		notice:      ports.Notice,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.jobsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("skillgap"),
		a.loadTitles(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewAnalyze:
			return a, a.analyzeView.Init()
		case messages.ViewJobs:
			a.jobsView.Reset()
			return a, a.jobsView.Init()
		case messages.ViewMenu, messages.ViewReport, messages.ViewHelp:
		}
		return a, nil

	case messages.AnalysisRequested:
		return a, a.runAnalysis(msg)

	case messages.ReportReady:
		a.analyzeView, cmd = a.analyzeView.Update(msg)
		if msg.Err == nil {
			a.reportView.SetReport(msg.Role, msg.Report)
			a.currentView = messages.ViewReport
		}
		return a, cmd

	case messages.ReportSaved:
		a.reportView, cmd = a.reportView.Update(msg)
		return a, cmd

	case messages.JobsLoaded:
		a.jobsView, cmd = a.jobsView.Update(msg)
		return a, cmd

	case messages.TitlesLoaded:
		a.analyzeView, cmd = a.analyzeView.Update(msg)
		return a, cmd

	case messages.IngestionRequested:
		return a, a.runIngestion()

	case messages.IngestionCompleted:
		a.ingesting = false
		if msg.Err != nil {
			a.err = msg.Err
			a.notice = ""
			return a, nil
		}
		a.err = nil
		a.notice = fmt.Sprintf("Indexed %d job description(s) and %d CV(s) into %d chunk(s)",
			msg.Summary.JobDocuments, msg.Summary.CVDocuments, msg.Summary.Chunks)
		return a, a.loadTitles()

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewAnalyze:
		a.analyzeView, cmd = a.analyzeView.Update(msg)
	case messages.ViewReport:
		a.reportView, cmd = a.reportView.Update(msg)
	case messages.ViewJobs:
		a.jobsView, cmd = a.jobsView.Update(msg)
	case messages.ViewHelp:
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, a.keymap.Back, a.keymap.Quit) {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// runAnalysis reads the CV and asks the analyzer for a report.
func (a *App) runAnalysis(req messages.AnalysisRequested) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		cvText, err := a.readCV(ctx, req.CVPath)
		if err != nil {
			return messages.ReportReady{Role: req.Role, Err: err}
		}
		report := a.ports.Analyzer.AnalyzeGap(ctx, cvText, req.Role)
		return messages.ReportReady{Role: req.Role, Report: report}
	}
}

func (a *App) readCV(ctx context.Context, path string) (string, error) {
	if path == "" {
		path = a.ports.DefaultCV
	}
	if path == "" {
		return "", fmt.Errorf("no CV path given: %w", domain.ErrInvalidInput)
	}

	doc, err := a.ports.Loader.LoadFile(ctx, path, domain.DocTypeCV)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("CV not found at %s: %w", path, err)
		}
		return "", fmt.Errorf("failed to read CV: %w", err)
	}
	if strings.TrimSpace(doc.Content) == "" {
		return "", fmt.Errorf("CV at %s is empty: %w", path, domain.ErrInvalidInput)
	}
	return doc.Content, nil
}

// runIngestion rebuilds the vector store in the background.
func (a *App) runIngestion() tea.Cmd {
	if a.ports.Ingestion == nil {
		a.err = ErrIngestionDisabled
		return nil
	}
	if a.ingesting {
		return nil
	}

	a.ingesting = true
	a.err = nil
	a.notice = "Rebuilding index..."

	ctx := a.ctx
	ingestion := a.ports.Ingestion
	return func() tea.Msg {
		summary, err := ingestion.RunIngestion(ctx)
		return messages.IngestionCompleted{Summary: summary, Err: err}
	}
}

// loadTitles fetches the indexed job titles for role suggestions.
func (a *App) loadTitles() tea.Cmd {
	ctx := a.ctx
	analyzer := a.ports.Analyzer
	return func() tea.Msg {
		return messages.TitlesLoaded{Titles: analyzer.JobTitles(ctx)}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewAnalyze:
		return a.analyzeView.View()
	case messages.ViewReport:
		return a.reportView.View()
	case messages.ViewJobs:
		return a.jobsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
		return a.viewMenu()
	default:
		return a.viewMenu()
	}
}

// viewMenu renders the menu with the latest notice or error beneath it.
func (a *App) viewMenu() string {
	sections := []string{a.menuView.View()}
	if a.err != nil {
		sections = append(sections, "", a.styles.Error.Render("Error: "+a.err.Error()))
	} else if a.notice != "" {
		sections = append(sections, "", a.styles.Muted.Render(a.notice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewHelp renders one block per keymap section.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n")
	for _, sec := range a.keymap.Sections() {
		b.WriteString("\n" + a.styles.Subtitle.Render(sec.Title) + "\n")
		for _, binding := range sec.Bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-10s %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\n" + a.styles.Muted.Render("On Analyze CV, type the target role; ↑/↓ cycle indexed job titles."))
	b.WriteString("\n" + a.styles.Muted.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Notice returns the message shown under the menu.
func (a *App) Notice() string {
	return a.notice
}

// Ingesting reports whether a rebuild is running.
func (a *App) Ingesting() bool {
	return a.ingesting
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.analyzeView.SetDimensions(width, height)
	a.reportView.SetDimensions(width, height)
	a.jobsView.SetDimensions(width, height)
}
