package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/skillgap/internal/app"
	"github.com/custodia-labs/skillgap/internal/connectors/filesystem"
	"github.com/custodia-labs/skillgap/internal/core/domain"
	"github.com/custodia-labs/skillgap/internal/logger"
)

// watchQuiet is how long the input directories must be idle before a rebuild.
const watchQuiet = 2 * time.Second

var ingestWatch bool

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the vector store from jobs and CVs",
	Long: `Loads every job description and CV, splits them into overlapping chunks,
embeds the chunks and replaces the vector collection with the result.

With --watch the command stays running and rebuilds the collection whenever
a file in either input directory changes.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "rebuild when input files change")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := requireApp(ctx)
	if err != nil {
		return err
	}

	if err := ingestOnce(ctx, cmd, a); err != nil {
		return err
	}
	if !ingestWatch {
		return nil
	}
	return watchAndIngest(ctx, cmd, a)
}

func ingestOnce(ctx context.Context, cmd *cobra.Command, a *app.App) error {
	summary, err := a.Ingestion.RunIngestion(ctx)
	if err != nil {
		if hint := domain.Hint(err); hint != "" {
			return fmt.Errorf("ingestion failed: %w (%s)", err, hint)
		}
		return fmt.Errorf("ingestion failed: %w", err)
	}
	printSummary(cmd, summary)
	return nil
}

func printSummary(cmd *cobra.Command, summary *domain.IngestionSummary) {
	cmd.Printf("Loaded %d job description(s) and %d CV(s)\n", summary.JobDocuments, summary.CVDocuments)
	cmd.Printf("Stored %d chunk(s) in %s\n", summary.Chunks, summary.StoreLocation)
}

// watchAndIngest rebuilds after each quiet period following file changes.
// A failed rebuild is reported and the watch continues.
func watchAndIngest(ctx context.Context, cmd *cobra.Command, a *app.App) error {
	dirs := []string{a.Settings.Paths.JobsDir, a.Settings.Paths.CVsDir}
	changes, err := a.Watcher.Watch(ctx, dirs...)
	if err != nil {
		return fmt.Errorf("failed to watch input directories: %w", err)
	}

	cmd.Printf("Watching %s and %s (Ctrl+C to stop)\n", dirs[0], dirs[1])
	for batch := range filesystem.Debounce(ctx, changes, watchQuiet) {
		logger.Debug("%d file change(s), first: %s", len(batch), batch[0].Path)
		cmd.Printf("\n%d change(s) detected, rebuilding...\n", len(batch))
		if err := ingestOnce(ctx, cmd, a); err != nil {
			cmd.PrintErrf("Rebuild failed: %v\n", err)
		}
	}
	return nil
}
