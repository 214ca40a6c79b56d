package flow

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/blackwell-systems/sessionflow/internal/recording"
)

// maxTopPages bounds AggregatedFlowStats.TopPages.
const maxTopPages = 5

// AggregateStats computes summary statistics over the recordings named by
// metas. A meta whose detail is missing or has no events is dropped. Unlike
// AggregateFlowAnalysis it never returns nil: with nothing left it returns
// zero stats with empty slices.
func AggregateStats(metas []recording.Summary, details map[string]*recording.Recording) AggregatedFlowStats {
	stats := AggregatedFlowStats{
		TopPages:   []PageStat{},
		ExitPoints: []ExitPoint{},
	}

	var analyses []FlowAnalysis
	for _, m := range metas {
		rec := details[m.SessionID]
		if rec == nil || len(rec.Events) == 0 {
			continue
		}
		analyses = append(analyses, Analyze(rec))
	}
	if len(analyses) == 0 {
		return stats
	}

	var duration, clicks, depth float64
	var completed int
	pages := newCounter()
	exits := newCounter()
	for _, a := range analyses {
		duration += float64(a.SessionDuration)
		clicks += float64(a.TotalClicks)
		depth += a.MaxScrollDepth
		if a.ExitType == ExitCompleted {
			completed++
		}
		pages.add(a.PageName)
		exits.add(capitalize(string(a.ExitType)))
	}

	n := len(analyses)
	stats.TotalSessions = n
	stats.AvgDuration = duration / float64(n)
	stats.AvgClicks = clicks / float64(n)
	stats.AvgScrollDepth = depth / float64(n)
	stats.CompletionRate = percent(completed, n)

	for i, e := range pages.sorted() {
		if i == maxTopPages {
			break
		}
		stats.TopPages = append(stats.TopPages, PageStat{Page: e.key, Count: e.count, Percentage: percent(e.count, n)})
	}
	for _, e := range exits.sorted() {
		stats.ExitPoints = append(stats.ExitPoints, ExitPoint{Type: e.key, Count: e.count, Percentage: percent(e.count, n)})
	}

	return stats
}

// AggregateRecordingStats is AggregateStats over a flat slice of recordings.
func AggregateRecordingStats(recs []*recording.Recording) AggregatedFlowStats {
	metas := make([]recording.Summary, 0, len(recs))
	details := make(map[string]*recording.Recording, len(recs))
	for _, r := range recs {
		if r == nil {
			continue
		}
		metas = append(metas, r.Summary())
		details[r.SessionID] = r
	}
	return AggregateStats(metas, details)
}

// CollectStats lists src, keeps the given variant (all when version is
// empty), fetches the details and aggregates them.
func CollectStats(ctx context.Context, src recording.Source, version string, workers int) (AggregatedFlowStats, error) {
	summaries, err := src.List(ctx)
	if err != nil {
		return AggregatedFlowStats{}, fmt.Errorf("listing recordings: %w", err)
	}
	summaries = recording.FilterSummaries(summaries, version)

	details, err := recording.FetchDetails(ctx, src, summaries, workers)
	if err != nil {
		return AggregatedFlowStats{}, fmt.Errorf("loading recordings: %w", err)
	}
	return AggregateStats(summaries, details), nil
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

type counted struct {
	key   string
	count int
}

// counter tallies keys and remembers first-seen order so ties sort stably.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// sorted returns entries by count descending, ties in first-seen order.
func (c *counter) sorted() []counted {
	out := make([]counted, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, counted{key: k, count: c.counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].count > out[j].count
	})
	return out
}
