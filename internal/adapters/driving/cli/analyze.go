package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/skillgap/internal/adapters/driving/render"
	"github.com/custodia-labs/skillgap/internal/app"
	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/logger"
)

var (
	analyzeRole    string
	analyzeCV      string
	analyzeRaw     bool
	analyzeSave    bool
	analyzeSaveDir string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Generate a skill gap report for a CV",
	Long: `Retrieves the job descriptions most relevant to --role and asks the LLM to
compare them with the CV, producing a markdown report of matching skills,
missing skills and a learning roadmap.

The CV is read from --cv (a .txt or .pdf file, or "-" for stdin). Without
--cv the default CV path from settings is used.

Examples:
  skillgap analyze --role "Data Scientist"
  skillgap analyze --role "Backend Developer" --cv cv.pdf --save`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeRole, "role", "r", "", "target job role")
	analyzeCmd.Flags().StringVar(&analyzeCV, "cv", "", `CV file, or "-" for stdin`)
	analyzeCmd.Flags().BoolVar(&analyzeRaw, "raw", false, "print the markdown without styling")
	analyzeCmd.Flags().BoolVarP(&analyzeSave, "save", "s", false, "write the report to a markdown file")
	analyzeCmd.Flags().StringVar(&analyzeSaveDir, "out-dir", ".", "directory for --save")
	_ = analyzeCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	role := strings.TrimSpace(analyzeRole)
	if role == "" {
		return errors.New("--role must not be empty")
	}

	a, err := requireApp(ctx)
	if err != nil {
		return err
	}
	if a.LLMErr != nil {
		logger.Warn("%v", a.LLMErr)
	}

	cvText, err := readCV(ctx, cmd, a, analyzeCV)
	if err != nil {
		return err
	}

	report := a.Analyzer.AnalyzeGap(ctx, cvText, role)

	if analyzeSave {
		path := filepath.Join(analyzeSaveDir, domain.ReportFilename(role))
		if err := os.WriteFile(path, []byte(report), 0o600); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		cmd.PrintErrf("Report saved to %s\n", path)
	}

	printReport(cmd, report, analyzeRaw)
	return nil
}

// readCV returns the CV text from path, stdin, or the default CV.
func readCV(ctx context.Context, cmd *cobra.Command, a *app.App, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read CV from stdin: %w", err)
		}
		return checkCVText(string(data), "stdin")
	}

	if path == "" {
		path = a.Settings.Paths.DefaultCV
	}
	if path == "" {
		return "", errors.New("no CV given: pass --cv or set paths.default_cv")
	}

	doc, err := a.Loader.LoadFile(ctx, path, domain.DocTypeCV)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("CV not found at %s: %w", path, err)
		}
		return "", fmt.Errorf("failed to read CV: %w", err)
	}
	return checkCVText(doc.Content, path)
}

func checkCVText(text, from string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("CV from %s is empty: %w", from, domain.ErrInvalidInput)
	}
	return text, nil
}

// printReport styles the report when writing to a terminal.
func printReport(cmd *cobra.Command, report string, raw bool) {
	out := cmd.OutOrStdout()
	width, styled := terminalWidth(out)
	if raw || !styled {
		cmd.Println(report)
		return
	}
	cmd.Print(render.MarkdownOrPlain(report, width))
}

// terminalWidth reports the width of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80, true
	}
	return width, true
}
