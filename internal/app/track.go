package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/sessionflow/internal/flow"
	"github.com/blackwell-systems/sessionflow/internal/output"
	"github.com/blackwell-systems/sessionflow/internal/recording"
	"github.com/blackwell-systems/sessionflow/internal/snapshot"
)

var trackCompare int

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Snapshot variant metrics and compare over time",
	Long: `Aggregate every variant, store the metrics as a new snapshot file, and
compare against a previous snapshot to show deltas with trend arrows.

Examples:
  sessionflow track
  sessionflow track --compare 3`,
	Args: cobra.NoArgs,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().IntVar(&trackCompare, "compare", 1, "Compare against Nth previous snapshot (1 = most recent)")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	if trackCompare < 1 {
		return fmt.Errorf("--compare must be at least 1")
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}

	recs, err := e.loadRecordings(cmd.Context(), "")
	if err != nil {
		return err
	}

	st, err := snapshot.Open(e.cfg.SnapshotDir)
	if err != nil {
		return err
	}

	// Look up the comparison point before the new snapshot shifts the order.
	prev, err := st.Nth(trackCompare)
	if err != nil {
		return fmt.Errorf("loading previous snapshot: %w", err)
	}

	current := &snapshot.Snapshot{
		Command:  "track",
		Version:  appVersion,
		Variants: variantMetrics(recs, e.cfg.Analysis.WorkerCount()),
	}
	if err := st.Save(current); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	e.log.Debug("saved snapshot", zap.String("id", current.ID), zap.String("dir", st.Dir()))

	var diff *snapshot.SnapshotDiff
	if prev != nil {
		diff = snapshot.Diff(prev, current)
	}

	if flagJSON {
		result := map[string]any{"snapshot": current}
		if diff != nil {
			result["diff"] = diff
		}
		return e.writeJSON(result)
	}
	renderTrack(e, current, diff)
	return nil
}

// variantMetrics flattens each variant's aggregate and stats into snapshot
// metrics.
func variantMetrics(recs []*recording.Recording, workers int) []snapshot.VariantMetrics {
	versions, groups := flow.GroupByVersion(recs)
	out := make([]snapshot.VariantMetrics, 0, len(versions))
	for _, v := range versions {
		group := groups[v]
		agg := flow.AggregateAnalyses(flow.AnalyzeAll(group, workers))
		out = append(out, snapshot.VariantFrom(v, agg, flow.AggregateRecordingStats(group)))
	}
	return out
}

func renderTrack(e *env, current *snapshot.Snapshot, diff *snapshot.SnapshotDiff) {
	e.println(output.Section("Track: Snapshot Comparison"))
	e.println()
	e.printf(" Snapshot %s taken at %s\n\n", shortID(current.ID), current.TakenAt.Local().Format("2006-01-02 15:04:05"))

	if diff == nil {
		e.println(" First snapshot recorded. Run 'sessionflow track' again later to see trends.")
		return
	}

	e.printf(" Comparing against snapshot %s (%s)\n\n",
		shortID(diff.Previous.ID), diff.Previous.TakenAt.Local().Format("2006-01-02 15:04:05"))

	tbl := output.NewTable("Variant", "Metric", "Previous", "Current", "Delta", "Trend")
	for _, d := range diff.Deltas {
		tbl.AddRow(
			d.Variant,
			d.Name,
			fmt.Sprintf("%.1f", d.Previous),
			fmt.Sprintf("%.1f", d.Current),
			fmt.Sprintf("%+.1f", d.Delta),
			output.TrendArrow(d.Delta, snapshot.HigherIsBetter(d.Name)),
		)
	}
	tbl.Fprint(e.out)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
