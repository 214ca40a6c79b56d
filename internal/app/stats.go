package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/sessionflow/internal/flow"
	"github.com/blackwell-systems/sessionflow/internal/output"
)

var statsFlagVersion string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Completion rate, top pages and exit points",
	Long: `Summarize recordings: session count, mean duration, clicks and scroll
depth, the share of sessions that completed, the five most visited pages and
how sessions ended. Recordings without events are left out.

Examples:
  sessionflow stats
  sessionflow stats --version A`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsFlagVersion, "version", "", "Only include this variant")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	stats, err := flow.CollectStats(cmd.Context(), e.src, statsFlagVersion, e.cfg.Analysis.WorkerCount())
	if err != nil {
		return err
	}
	if flagJSON {
		return e.writeJSON(stats)
	}
	renderStats(e, stats)
	return nil
}

func renderStats(e *env, s flow.AggregatedFlowStats) {
	e.println(output.Section("Flow Stats"))
	e.println()
	if s.TotalSessions == 0 {
		e.println(" No recordings with events found.")
		return
	}

	e.println(output.KeyValue("Sessions", fmt.Sprintf("%d", s.TotalSessions)))
	e.println(output.KeyValue("Avg duration", flow.FormatFlowDuration(int64(s.AvgDuration))))
	e.println(output.KeyValue("Avg clicks", fmt.Sprintf("%.1f", s.AvgClicks)))
	e.println(output.KeyValue("Avg scroll depth", fmt.Sprintf("%.0fpx", s.AvgScrollDepth)))
	e.println(output.KeyValue("Completion rate", output.PercentBar(s.CompletionRate, 20)))

	e.println(output.Section("Top Pages"))
	e.println()
	pages := output.NewTable("Page", "Sessions", "Share")
	for _, p := range s.TopPages {
		pages.AddRow(p.Page, fmt.Sprintf("%d", p.Count), output.PercentBar(p.Percentage, 10))
	}
	pages.Fprint(e.out)

	e.println(output.Section("Exit Points"))
	e.println()
	exits := output.NewTable("Exit", "Sessions", "Share")
	for _, x := range s.ExitPoints {
		exits.AddRow(x.Type, fmt.Sprintf("%d", x.Count), output.PercentBar(x.Percentage, 10))
	}
	exits.Fprint(e.out)
}
