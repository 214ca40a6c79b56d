// Package app contains the Cobra command tree for sessionflow.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "sessionflow",
	Short: "Behavioral analysis of recorded browser sessions",
	Long: `sessionflow reads recorded browser sessions (rrweb event streams),
derives engagement metrics per session and per experiment variant, and
generates rule-based UX insights.

Recordings are read from a directory of JSON files or from the demo
recordings API, depending on source.kind in the config.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "sessionflow", appVersion)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Use a subcommand:")
		fmt.Fprintln(out, "  analyze   Analyze one recording and list its insights")
		fmt.Fprintln(out, "  variants  Aggregate recordings per experiment variant")
		fmt.Fprintln(out, "  stats     Completion rate, top pages and exit points")
		fmt.Fprintln(out, "  track     Snapshot variant metrics and compare over time")
		fmt.Fprintln(out, "  mcp       Serve the analyses as MCP tools over stdio")
		return nil
	},
}

// Execute is the entry point called from main. An interrupt cancels the
// command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/sessionflow/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
