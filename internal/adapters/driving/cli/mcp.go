package cli

import (
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/skillgap/internal/adapters/driving/mcp"
	"github.com/custodia-labs/skillgap/internal/logger"
)

var (
	mcpPort     int
	mcpHost     string
	mcpReadOnly bool
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve gap analysis to MCP clients",
	Long: `Serve gap analysis to AI assistants over the Model Context Protocol.

Tools:      analyze_gap, relevant_jobs, job_titles, ingest
Resources:  skillgap://roles, skillgap://titles, skillgap://roles/{role}/jobs

The server speaks JSON-RPC over stdio unless --port is given, in which case
it serves the streamable HTTP transport (useful with MCP Inspector).
--read-only leaves out the ingest tool so clients cannot rebuild the index.

Examples:
  skillgap mcp serve
  skillgap mcp serve --port 8080 --read-only

Client configuration:
  {
    "mcpServers": {
      "skillgap": {"command": "/path/to/skillgap", "args": ["mcp", "serve"]}
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "HTTP listen host")
	mcpServeCmd.Flags().BoolVar(&mcpReadOnly, "read-only", false, "do not expose the ingest tool")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// mcpPorts selects the services exposed to MCP clients.
func mcpPorts(cmd *cobra.Command, readOnly bool) (*mcp.Ports, error) {
	a, err := requireApp(cmd.Context())
	if err != nil {
		return nil, err
	}
	if a.LLMErr != nil {
		logger.Warn("analyze_gap will report: %v", a.LLMErr)
	}

	ports := &mcp.Ports{Analyzer: a.Analyzer}
	if !readOnly && a.Ingestion != nil {
		ports.Ingestion = a.Ingestion
	}
	return ports, nil
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	ports, err := mcpPorts(cmd, mcpReadOnly)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(ports, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if mcpPort <= 0 {
		return server.Run(cmd.Context())
	}

	addr := net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
	cmd.PrintErrf("MCP server listening on http://%s/\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
