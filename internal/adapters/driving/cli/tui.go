package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/skillgap/internal/adapters/driving/tui"
	"github.com/custodia-labs/skillgap/internal/app"
)

var tuiOutDir string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for skillgap.

The TUI lets you pick a target role, point at a CV and read the gap report
in a scrollable view. Job matches for a role can be browsed and the index
rebuilt from the menu.

Controls:
  ↑/k, ↓/j - Navigate
  Tab      - Next field
  Enter    - Select / Analyze
  s        - Save report
  r        - Toggle raw markdown
  Esc      - Back
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiOutDir, "out-dir", ".", "directory for saved reports")
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts maps the application services onto the TUI's ports.
func tuiPorts(a *app.App) *tui.Ports {
	ports := &tui.Ports{
		Analyzer:  a.Analyzer,
		Loader:    a.Loader,
		Ingestion: a.Ingestion,
		DefaultCV: a.Settings.Paths.DefaultCV,
		OutDir:    tuiOutDir,
	}
	if a.LLMErr != nil {
		ports.Notice = fmt.Sprintf("Reports unavailable: %v", a.LLMErr)
	}
	return ports
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	a, err := requireApp(cmd.Context())
	if err != nil {
		return err
	}

	model, err := tui.NewApp(tuiPorts(a))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	model.WithContext(cmd.Context())

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
