package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/sessionflow/internal/flow"
	"github.com/blackwell-systems/sessionflow/internal/insight"
	"github.com/blackwell-systems/sessionflow/internal/output"
	"github.com/blackwell-systems/sessionflow/internal/recording"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file-or-session-id>",
	Short: "Analyze one recording and list its insights",
	Long: `Analyze a single recorded session: interaction counts, scroll and timing
metrics, engagement score, exit classification, the reconstructed flow of
page, click and input steps, and the UX insights the session triggers.

The argument is either a path to a recording JSON file or a session id
looked up in the configured source.

Examples:
  sessionflow analyze recordings/rec-a-001.json
  sessionflow analyze rec-a-001 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	rec, err := resolveRecording(cmd, e, args[0])
	if err != nil {
		return err
	}

	report := insight.ForSession(rec)
	if flagJSON {
		return e.writeJSON(report)
	}
	renderAnalysis(e, report)
	return nil
}

// resolveRecording treats arg as a file path when one exists, otherwise as
// a session id in the configured source.
func resolveRecording(cmd *cobra.Command, e *env, arg string) (*recording.Recording, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		rec, err := recording.ParseFile(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		return rec, nil
	}
	rec, err := e.src.Fetch(cmd.Context(), arg)
	if err != nil {
		return nil, fmt.Errorf("loading recording: %w", err)
	}
	return rec, nil
}

func renderAnalysis(e *env, r insight.SessionReport) {
	a := r.Analysis

	e.println(output.Section(fmt.Sprintf("Session %s", a.SessionID)))
	e.println()
	e.println(output.KeyValue("Page", fmt.Sprintf("%s %s", a.PageName, output.StyleMuted.Render(a.PageURL))))
	e.println(output.KeyValue("Variant", orUnknown(a.Version)))
	e.println(output.KeyValue("Client", fmt.Sprintf("%s on %s (%s)", a.Client.Browser, a.Client.OS, a.Client.DeviceType)))
	e.println(output.KeyValue("Viewport", fmt.Sprintf("%dx%d", a.Viewport.Width, a.Viewport.Height)))
	e.println(output.KeyValue("Duration", flow.FormatDuration(a.SessionDuration)))
	e.println(output.KeyValue("Engagement", output.ScoreBar(float64(a.EngagementScore), 20)))
	e.println(output.KeyValue("Exit", output.Severity(string(a.ExitType))))

	e.println(output.Section("Interactions"))
	e.println()
	e.println(output.KeyValue("Clicks", fmt.Sprintf("%d", a.TotalClicks)))
	e.println(output.KeyValue("Scrolls", fmt.Sprintf("%d", a.TotalScrolls)))
	e.println(output.KeyValue("Inputs", fmt.Sprintf("%d", a.TotalInputs)))
	e.println(output.KeyValue("Mouse moves", fmt.Sprintf("%d", a.TotalMouseMoves)))
	e.println(output.KeyValue("Focus events", fmt.Sprintf("%d", a.TotalFocusEvents)))
	e.println(output.KeyValue("DOM mutations", fmt.Sprintf("%d", a.TotalMutations)))
	e.println(output.KeyValue("Time to first click", flow.FormatMs(float64(a.TimeToFirstClick))))
	e.println(output.KeyValue("Time to first scroll", flow.FormatMs(float64(a.TimeToFirstScroll))))
	e.println(output.KeyValue("Avg time between clicks", flow.FormatMs(a.AvgTimeBetweenClicks)))
	e.println(output.KeyValue("Max scroll depth", fmt.Sprintf("%.0fpx", a.MaxScrollDepth)))
	e.println(output.KeyValue("Avg scroll speed", fmt.Sprintf("%.0fpx", a.AvgScrollSpeed)))

	e.println(output.Section("Flow"))
	e.println()
	start := int64(0)
	if len(a.Steps) > 0 {
		start = a.Steps[0].Timestamp
	}
	tbl := output.NewTable("At", "Step", "Label", "Details")
	for _, s := range a.Steps {
		tbl.AddRow(
			flow.FormatFlowDuration(s.Timestamp-start),
			string(s.Type),
			s.Label,
			output.StyleMuted.Render(s.Details),
		)
	}
	tbl.Fprint(e.out)

	renderInsights(e, r.Insights)
}

func renderInsights(e *env, insights []insight.UXInsight) {
	e.println(output.Section("Insights"))
	e.println()
	for _, in := range insights {
		e.printf(" %s  %s\n", output.Severity(string(in.Type)), output.StyleBold.Render(in.Title))
		e.printf("    %s\n", in.Description)
		e.printf("    %s\n\n", output.StyleMuted.Render(in.Impact))
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
