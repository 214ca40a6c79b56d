package insight

import (
	"github.com/blackwell-systems/sessionflow/internal/flow"
	"github.com/blackwell-systems/sessionflow/internal/recording"
)

// SessionReport is one session's analysis with the insights it triggers.
type SessionReport struct {
	Analysis flow.FlowAnalysis `json:"analysis"`
	Insights []UXInsight       `json:"insights"`
}

// VariantReport is the aggregate of one experiment variant with its
// insights.
type VariantReport struct {
	Version   string                       `json:"version"`
	Aggregate *flow.AggregatedFlowAnalysis `json:"aggregate"`
	Insights  []UXInsight                  `json:"insights"`
}

// ForSession analyzes rec and runs the rules with the session as its own
// representative.
func ForSession(rec *recording.Recording) SessionReport {
	a := flow.Analyze(rec)
	return SessionReport{
		Analysis: a,
		Insights: Generate(Single(&a), &a),
	}
}

// ForVariants groups recs by version, aggregates each group and runs the
// rules with the group's first session as representative. Reports are
// ordered by version.
func ForVariants(recs []*recording.Recording, workers int) []VariantReport {
	versions, groups := flow.GroupByVersion(recs)

	reports := make([]VariantReport, 0, len(versions))
	for _, v := range versions {
		analyses := flow.AnalyzeAll(groups[v], workers)
		agg := flow.AggregateAnalyses(analyses)
		if agg == nil {
			continue
		}
		reports = append(reports, VariantReport{
			Version:   v,
			Aggregate: agg,
			Insights:  Generate(Aggregate(agg), &analyses[0]),
		})
	}
	return reports
}
