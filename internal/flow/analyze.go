package flow

import (
	"math"

	"github.com/blackwell-systems/sessionflow/internal/recording"
)

// Engagement score weights and caps. A capped term contributes at most
// weight*cap: clicks 50, scrolls 20, inputs 30, duration 30.
const (
	clickWeight    = 5.0
	clickCap       = 10
	scrollWeight   = 1.0
	scrollCap      = 20
	inputWeight    = 6.0
	inputCap       = 5
	durationWeight = 0.5
	durationCapSec = 60.0
	maxEngagement  = 100.0
)

// Exit classification thresholds.
const (
	completedScoreThreshold = 60
	abandonMaxClicks        = 2
	abandonMaxScrolls       = 5
	abandonMaxDurationMs    = 10000
)

// Analyze derives the FlowAnalysis of a single recording. It never fails:
// a recording without events yields zero counts and fallback timings.
func Analyze(rec *recording.Recording) FlowAnalysis {
	in := Classify(rec)
	duration := rec.Duration()

	a := FlowAnalysis{
		SessionID:        rec.SessionID,
		Version:          rec.Version,
		TotalClicks:      in.Clicks,
		TotalScrolls:     in.Scrolls,
		TotalInputs:      in.Inputs,
		TotalMouseMoves:  in.MouseMoves,
		TotalFocusEvents: in.FocusEvents,
		TotalMutations:   in.Mutations,
		SessionDuration:  duration,

		// A session without a click or scroll is scored as if it happened
		// at the very end.
		TimeToFirstClick:  duration,
		TimeToFirstScroll: duration,

		MaxScrollDepth:       maxDepth(in.ScrollPositions),
		AvgScrollSpeed:       meanAbsDelta(in.ScrollPositions),
		AvgTimeBetweenClicks: meanInterval(in.ClickTimes),

		PageURL:   rec.Metadata.URL,
		PageName:  PageName(rec.Metadata.URL),
		Viewport:  rec.Metadata.Viewport,
		UserAgent: rec.Metadata.UserAgent,
		Client:    recording.ParseClient(rec.Metadata.UserAgent),
	}
	if in.FirstClickSeen {
		a.TimeToFirstClick = in.FirstClick - rec.StartTime
	}
	if in.FirstScrollSeen {
		a.TimeToFirstScroll = in.FirstScroll - rec.StartTime
	}

	a.EngagementScore = EngagementScore(in.Clicks, in.Scrolls, in.Inputs, duration)
	a.ExitType = ClassifyExit(in.Clicks, in.Scrolls, in.Inputs, duration, a.EngagementScore)
	a.Steps = buildSteps(rec, in.Steps, a)

	return a
}

// EngagementScore combines click, scroll, input and duration signals into a
// 0-100 score. Each term is capped before summing and the sum is capped at
// 100.
func EngagementScore(clicks, scrolls, inputs int, durationMs int64) int {
	durationSec := float64(durationMs) / 1000

	score := clickWeight*float64(min(clicks, clickCap)) +
		scrollWeight*float64(min(scrolls, scrollCap)) +
		inputWeight*float64(min(inputs, inputCap)) +
		durationWeight*math.Min(durationSec, durationCapSec)

	return int(math.Max(0, math.Round(math.Min(maxEngagement, score))))
}

// ClassifyExit decides how a session ended. Completed is checked first and
// wins over abandoned.
func ClassifyExit(clicks, scrolls, inputs int, durationMs int64, score int) ExitType {
	switch {
	case inputs > 0 || score > completedScoreThreshold:
		return ExitCompleted
	case clicks < abandonMaxClicks && scrolls < abandonMaxScrolls && durationMs < abandonMaxDurationMs:
		return ExitAbandoned
	default:
		return ExitUnknown
	}
}

func buildSteps(rec *recording.Recording, interior []FlowStep, a FlowAnalysis) []FlowStep {
	steps := make([]FlowStep, 0, len(interior)+2)
	steps = append(steps, FlowStep{
		Type:      StepPage,
		Label:     a.PageName,
		Timestamp: rec.StartTime,
		Details:   a.PageURL,
	})
	steps = append(steps, interior...)
	steps = append(steps, FlowStep{
		Type:      StepExit,
		Label:     exitLabel(a.ExitType),
		Timestamp: rec.EndTime,
		Details:   FormatFlowDuration(a.SessionDuration),
	})
	return steps
}

func exitLabel(t ExitType) string {
	switch t {
	case ExitCompleted:
		return "Session completed"
	case ExitAbandoned:
		return "Session abandoned"
	default:
		return "Session ended"
	}
}

func maxDepth(ys []float64) float64 {
	depth := 0.0
	for _, y := range ys {
		if y > depth {
			depth = y
		}
	}
	return depth
}

// meanAbsDelta is the mean absolute difference between consecutive values,
// 0 for fewer than two.
func meanAbsDelta(ys []float64) float64 {
	if len(ys) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(ys); i++ {
		sum += math.Abs(ys[i] - ys[i-1])
	}
	return sum / float64(len(ys)-1)
}

func meanInterval(ts []int64) float64 {
	if len(ts) < 2 {
		return 0
	}
	var sum int64
	for i := 1; i < len(ts); i++ {
		sum += ts[i] - ts[i-1]
	}
	return float64(sum) / float64(len(ts)-1)
}
