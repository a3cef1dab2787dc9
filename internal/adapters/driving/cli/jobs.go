package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// snippetLength caps the preview shown per job chunk.
const snippetLength = 120

var (
	jobsRole string
	jobsK    int
	jobsJSON bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List the job descriptions closest to a role",
	Long: `Searches the job description chunks in the vector store and prints the
ones most similar to --role, best match first. CV chunks are never returned.`,
	Args: cobra.NoArgs,
	RunE: runJobs,
}

var titlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "List the job titles in the vector store",
	Args:  cobra.NoArgs,
	RunE:  runTitles,
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the preset target roles",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, role := range domain.RolePresets {
			cmd.Println(role)
		}
	},
}

func init() {
	jobsCmd.Flags().StringVarP(&jobsRole, "role", "r", "", "target job role")
	jobsCmd.Flags().IntVarP(&jobsK, "top", "k", 0, "number of chunks (0 = retrieval.k)")
	jobsCmd.Flags().BoolVar(&jobsJSON, "json", false, "output results as JSON")
	_ = jobsCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(titlesCmd)
	rootCmd.AddCommand(rolesCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	role := strings.TrimSpace(jobsRole)
	if role == "" {
		return errors.New("--role must not be empty")
	}
	if jobsK < 0 {
		return fmt.Errorf("--top must not be negative: %w", domain.ErrInvalidInput)
	}

	a, err := requireApp(ctx)
	if err != nil {
		return err
	}

	results, err := a.Analyzer.GetRelevantJobs(ctx, role, jobsK)
	if err != nil {
		if hint := domain.Hint(err); hint != "" {
			return fmt.Errorf("%w: %s", err, hint)
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if jobsJSON {
		return outputJobsJSON(cmd, results)
	}

	if len(results) == 0 {
		cmd.Println("No matching job descriptions.")
		return nil
	}
	for i := range results {
		r := &results[i]
		cmd.Printf("%d. [%.3f] %s\n", i+1, r.Score, r.Chunk.SourceName())
		cmd.Printf("   %s\n", snippet(r.Chunk.Content, snippetLength))
	}
	return nil
}

type jobResult struct {
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

func outputJobsJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	out := make([]jobResult, 0, len(results))
	for i := range results {
		out = append(out, jobResult{
			Source:  results[i].Chunk.SourceName(),
			Score:   results[i].Score,
			Content: results[i].Chunk.Content,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func runTitles(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := requireApp(ctx)
	if err != nil {
		return err
	}

	titles := a.Analyzer.JobTitles(ctx)
	if len(titles) == 0 {
		cmd.Println("No job titles found. Run 'skillgap ingest' first.")
		return nil
	}
	for _, title := range titles {
		cmd.Println(title)
	}
	return nil
}

// snippet flattens whitespace and truncates s to n runes.
func snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
