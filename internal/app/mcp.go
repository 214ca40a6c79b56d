package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/sessionflow/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server over the configured recordings",
	Long: `Start a Model Context Protocol stdio server so an assistant can query
session flow analyses. The server exposes three tools:

  analyze_session  Flow analysis and insights for one session
  variant_report   Aggregated metrics and insights per variant
  flow_stats       Completion rate, top pages and exit points

Example MCP client configuration:
  {"mcpServers":{"sessionflow":{"command":"sessionflow","args":["mcp"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	srv := mcp.NewServer(e.src, e.cfg.Analysis.WorkerCount(), appVersion, e.log)
	return srv.Run(cmd.Context(), cmd.InOrStdin(), e.out)
}
