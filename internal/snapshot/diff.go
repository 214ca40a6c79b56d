package snapshot

import (
	"sort"

	"github.com/blackwell-systems/sessionflow/internal/flow"
)

// Metric names recorded per variant.
const (
	MetricSessions          = "total_sessions"
	MetricAvgClicks         = "avg_clicks"
	MetricAvgScrolls        = "avg_scrolls"
	MetricAvgInputs         = "avg_inputs"
	MetricMaxScrollDepth    = "max_scroll_depth"
	MetricAvgDuration       = "avg_session_duration_ms"
	MetricTimeToFirstClick  = "avg_time_to_first_click_ms"
	MetricTimeToFirstScroll = "avg_time_to_first_scroll_ms"
	MetricEngagement        = "avg_engagement_score"
	MetricCompletionRate    = "completion_rate"
)

// MetricOrder is the display order of metric names.
var MetricOrder = []string{
	MetricSessions,
	MetricEngagement,
	MetricCompletionRate,
	MetricAvgClicks,
	MetricAvgScrolls,
	MetricAvgInputs,
	MetricMaxScrollDepth,
	MetricAvgDuration,
	MetricTimeToFirstClick,
	MetricTimeToFirstScroll,
}

// higherIsBetter maps metric names to whether higher values are better.
var higherIsBetter = map[string]bool{
	MetricSessions:          true,
	MetricAvgClicks:         true,
	MetricAvgScrolls:        true,
	MetricAvgInputs:         true,
	MetricMaxScrollDepth:    true,
	MetricAvgDuration:       true,
	MetricTimeToFirstClick:  false,
	MetricTimeToFirstScroll: false,
	MetricEngagement:        true,
	MetricCompletionRate:    true,
}

// HigherIsBetter reports the preferred direction of a metric. Unknown
// metrics default to higher.
func HigherIsBetter(name string) bool {
	if v, ok := higherIsBetter[name]; ok {
		return v
	}
	return true
}

// VariantFrom flattens a variant's aggregate and stats into named metrics.
func VariantFrom(variant string, agg *flow.AggregatedFlowAnalysis, stats flow.AggregatedFlowStats) VariantMetrics {
	vm := VariantMetrics{Variant: variant, Metrics: map[string]float64{
		MetricCompletionRate: float64(stats.CompletionRate),
	}}
	if agg == nil {
		return vm
	}
	vm.Sessions = agg.TotalSessions
	vm.Metrics[MetricSessions] = float64(agg.TotalSessions)
	vm.Metrics[MetricAvgClicks] = agg.AvgClicks
	vm.Metrics[MetricAvgScrolls] = agg.AvgScrolls
	vm.Metrics[MetricAvgInputs] = agg.AvgInputs
	vm.Metrics[MetricMaxScrollDepth] = agg.MaxScrollDepth
	vm.Metrics[MetricAvgDuration] = agg.AvgSessionDuration
	vm.Metrics[MetricTimeToFirstClick] = agg.AvgTimeToFirstClick
	vm.Metrics[MetricTimeToFirstScroll] = agg.AvgTimeToFirstScroll
	vm.Metrics[MetricEngagement] = agg.AvgEngagementScore
	return vm
}

// Diff compares every variant metric in curr against prev. Variants or
// metrics absent from prev compare against zero. Deltas are ordered by
// variant, then MetricOrder.
func Diff(prev, curr *Snapshot) *SnapshotDiff {
	diff := &SnapshotDiff{Previous: prev, Current: curr}
	if curr == nil {
		return diff
	}

	prevMap := make(map[string]map[string]float64)
	if prev != nil {
		for _, v := range prev.Variants {
			prevMap[v.Variant] = v.Metrics
		}
	}

	variants := make([]VariantMetrics, len(curr.Variants))
	copy(variants, curr.Variants)
	sort.SliceStable(variants, func(i, j int) bool { return variants[i].Variant < variants[j].Variant })

	for _, v := range variants {
		for _, name := range orderedNames(v.Metrics) {
			cur := v.Metrics[name]
			before := prevMap[v.Variant][name]
			delta := cur - before
			diff.Deltas = append(diff.Deltas, MetricDelta{
				Variant:   v.Variant,
				Name:      name,
				Previous:  before,
				Current:   cur,
				Delta:     delta,
				Direction: direction(name, delta),
			})
		}
	}
	return diff
}

func direction(name string, delta float64) string {
	if delta == 0 {
		return Unchanged
	}
	if (delta > 0) == HigherIsBetter(name) {
		return Improved
	}
	return Regressed
}

// orderedNames returns the keys of m in MetricOrder, followed by any others
// sorted alphabetically.
func orderedNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, name := range MetricOrder {
		if _, ok := m[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range m {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
