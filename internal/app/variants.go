package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/sessionflow/internal/flow"
	"github.com/blackwell-systems/sessionflow/internal/insight"
	"github.com/blackwell-systems/sessionflow/internal/output"
)

var variantsFlagVersion string

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "Aggregate recordings per experiment variant",
	Long: `Group recordings by experiment variant (the recording's version field),
aggregate their flow analyses, and generate insights for each variant.

Per-session scroll speed, click interval and exit type are taken from the
variant's first session.

Examples:
  sessionflow variants
  sessionflow variants --version B --json`,
	Args: cobra.NoArgs,
	RunE: runVariants,
}

func init() {
	variantsCmd.Flags().StringVar(&variantsFlagVersion, "version", "", "Only report this variant")
	rootCmd.AddCommand(variantsCmd)
}

func runVariants(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	recs, err := e.loadRecordings(cmd.Context(), variantsFlagVersion)
	if err != nil {
		return err
	}

	reports := insight.ForVariants(recs, e.cfg.Analysis.WorkerCount())
	e.log.Debug("aggregated variants", zap.Int("variants", len(reports)))

	if flagJSON {
		return e.writeJSON(reports)
	}
	renderVariants(e, reports)
	return nil
}

func renderVariants(e *env, reports []insight.VariantReport) {
	if len(reports) == 0 {
		e.println(" No recordings found.")
		return
	}

	e.println(output.Section("Variants"))
	e.println()
	tbl := output.NewTable("Variant", "Sessions", "Engagement", "Avg Duration", "Avg Clicks", "Avg Inputs", "Max Depth", "First Click")
	for _, r := range reports {
		a := r.Aggregate
		tbl.AddRow(
			r.Version,
			fmt.Sprintf("%d", a.TotalSessions),
			fmt.Sprintf("%.0f", a.AvgEngagementScore),
			flow.FormatDuration(int64(a.AvgSessionDuration)),
			fmt.Sprintf("%.1f", a.AvgClicks),
			fmt.Sprintf("%.1f", a.AvgInputs),
			fmt.Sprintf("%.0fpx", a.MaxScrollDepth),
			flow.FormatMs(a.AvgTimeToFirstClick),
		)
	}
	tbl.Fprint(e.out)

	for _, r := range reports {
		e.println(output.Section(fmt.Sprintf("Variant %s", r.Version)))
		e.println()
		e.println(output.KeyValue("Engagement", output.ScoreBar(r.Aggregate.AvgEngagementScore, 20)))
		e.println(output.KeyValue("Avg time to first scroll", flow.FormatMs(r.Aggregate.AvgTimeToFirstScroll)))
		e.println(output.KeyValue("Viewport", fmt.Sprintf("%dx%d", r.Aggregate.Viewport.Width, r.Aggregate.Viewport.Height)))
		renderInsights(e, r.Insights)
	}
}
