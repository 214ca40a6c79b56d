package flow

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/sessionflow/internal/recording"
)

// unknownVersion groups recordings that carry no variant.
const unknownVersion = "unknown"

// AnalyzeAll analyzes each recording, at most workers at a time, and returns
// the analyses in input order. Nil recordings are skipped.
func AnalyzeAll(recs []*recording.Recording, workers int) []FlowAnalysis {
	if workers < 1 {
		workers = 1
	}
	slots := make([]*FlowAnalysis, len(recs))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, rec := range recs {
		if rec == nil {
			continue
		}
		g.Go(func() error {
			a := Analyze(rec)
			slots[i] = &a
			return nil
		})
	}
	_ = g.Wait()

	out := make([]FlowAnalysis, 0, len(recs))
	for _, a := range slots {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// AggregateFlowAnalysis analyzes every recording and combines the results.
// It returns nil when there is nothing to aggregate; callers must check.
func AggregateFlowAnalysis(recs []*recording.Recording) *AggregatedFlowAnalysis {
	return AggregateAnalyses(AnalyzeAll(recs, runtime.GOMAXPROCS(0)))
}

// AggregateAnalyses sums and averages already computed analyses. The
// viewport is taken from the first analysis only and is not reconciled
// across sessions. Returns nil for an empty slice.
func AggregateAnalyses(analyses []FlowAnalysis) *AggregatedFlowAnalysis {
	if len(analyses) == 0 {
		return nil
	}

	agg := &AggregatedFlowAnalysis{
		TotalSessions: len(analyses),
		Viewport:      analyses[0].Viewport,
	}

	var duration, ttfc, ttfs, engagement float64
	for _, a := range analyses {
		agg.TotalClicks += a.TotalClicks
		agg.TotalScrolls += a.TotalScrolls
		agg.TotalInputs += a.TotalInputs
		agg.TotalMouseMoves += a.TotalMouseMoves
		agg.TotalFocusEvents += a.TotalFocusEvents
		agg.TotalMutations += a.TotalMutations

		if a.MaxScrollDepth > agg.MaxScrollDepth {
			agg.MaxScrollDepth = a.MaxScrollDepth
		}

		duration += float64(a.SessionDuration)
		ttfc += float64(a.TimeToFirstClick)
		ttfs += float64(a.TimeToFirstScroll)
		engagement += float64(a.EngagementScore)
	}

	n := float64(len(analyses))
	agg.AvgClicks = float64(agg.TotalClicks) / n
	agg.AvgScrolls = float64(agg.TotalScrolls) / n
	agg.AvgInputs = float64(agg.TotalInputs) / n
	agg.AvgMouseMoves = float64(agg.TotalMouseMoves) / n
	agg.AvgFocusEvents = float64(agg.TotalFocusEvents) / n
	agg.AvgMutations = float64(agg.TotalMutations) / n
	agg.AvgSessionDuration = duration / n
	agg.AvgTimeToFirstClick = ttfc / n
	agg.AvgTimeToFirstScroll = ttfs / n
	agg.AvgEngagementScore = engagement / n

	return agg
}

// GroupByVersion buckets recordings by variant. The returned keys are
// sorted; recordings without a version fall under "unknown". Order within a
// group follows the input.
func GroupByVersion(recs []*recording.Recording) ([]string, map[string][]*recording.Recording) {
	groups := make(map[string][]*recording.Recording)
	for _, r := range recs {
		if r == nil {
			continue
		}
		v := r.Version
		if v == "" {
			v = unknownVersion
		}
		groups[v] = append(groups[v], r)
	}

	versions := make([]string, 0, len(groups))
	for v := range groups {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions, groups
}
