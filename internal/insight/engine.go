package insight

import "github.com/blackwell-systems/sessionflow/internal/flow"

// Engine runs its rules in order against a subject and collects the
// resulting insights.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine with all built-in rules registered.
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			FirstImpression,
			ScrollBehavior,
			FormAbandonment,
			Frustration,
		},
	}
}

// Run evaluates every rule independently. When none fires, exactly one
// fallback insight is returned.
func (e *Engine) Run(m *Metrics) []UXInsight {
	var all []UXInsight
	for _, rule := range e.rules {
		all = append(all, rule(m)...)
	}
	if len(all) == 0 {
		all = append(all, fallback(m))
	}
	return all
}

// Generate builds the metrics view for subject and runs the built-in rules.
// representative may be nil.
func Generate(subject Subject, representative *flow.FlowAnalysis) []UXInsight {
	return NewEngine().Run(MetricsFor(subject, representative))
}

// MetricsFor flattens subject into the view rules read. A single session
// carries its own scroll speed, time between clicks and exit type. An
// aggregate takes them from representative; without one they are zero and
// unknown.
func MetricsFor(subject Subject, representative *flow.FlowAnalysis) *Metrics {
	m := &Metrics{ExitType: flow.ExitUnknown}

	switch subject.Kind() {
	case KindAggregate:
		if representative != nil {
			m.AvgScrollSpeed = representative.AvgScrollSpeed
			m.AvgTimeBetweenClicks = representative.AvgTimeBetweenClicks
			m.ExitType = representative.ExitType
		}
		if a := subject.AggregateAnalysis(); a != nil {
			m.TimeToFirstClick = a.AvgTimeToFirstClick
			m.MaxScrollDepth = a.MaxScrollDepth
			m.Clicks = a.AvgClicks
			m.Inputs = a.AvgInputs
		}
	case KindSingle:
		if a := subject.SingleAnalysis(); a != nil {
			m.TimeToFirstClick = float64(a.TimeToFirstClick)
			m.MaxScrollDepth = a.MaxScrollDepth
			m.Clicks = float64(a.TotalClicks)
			m.Inputs = float64(a.TotalInputs)
			m.AvgScrollSpeed = a.AvgScrollSpeed
			m.AvgTimeBetweenClicks = a.AvgTimeBetweenClicks
			m.ExitType = a.ExitType
		}
	}
	return m
}
