package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/sessionflow/internal/flow"
)

func titles(insights []UXInsight) []string {
	out := make([]string, 0, len(insights))
	for _, in := range insights {
		out = append(out, in.Title)
	}
	return out
}

func TestGenerate_SlowInitialEngagementOnly(t *testing.T) {
	a := &flow.FlowAnalysis{TimeToFirstClick: 6000, MaxScrollDepth: 100, ExitType: flow.ExitUnknown}
	got := Generate(Single(a), a)
	require.Len(t, got, 1)
	assert.Equal(t, "Slow Initial Engagement", got[0].Title)
	assert.Equal(t, TypeWarning, got[0].Type)
}

func TestGenerate_StrongHook(t *testing.T) {
	a := &flow.FlowAnalysis{TimeToFirstClick: 1000, MaxScrollDepth: 900, TotalClicks: 1}
	got := Generate(Single(a), a)
	require.Len(t, got, 1)
	assert.Equal(t, "Strong Hook", got[0].Title)
	assert.Equal(t, TypeSuccess, got[0].Type)
}

func TestGenerate_RulesFireIndependently(t *testing.T) {
	// Rule 1 and rule 2 both apply to a deep, quick, clickless session.
	a := &flow.FlowAnalysis{TimeToFirstClick: 1000, MaxScrollDepth: 900}
	got := Generate(Single(a), a)
	assert.Equal(t, []string{"Strong Hook", "High Interest, No Action"}, titles(got))
	assert.Equal(t, TypeCritical, got[1].Type)
}

func TestGenerate_SkimmingBeatsHighInterest(t *testing.T) {
	a := &flow.FlowAnalysis{TimeToFirstClick: 3000, MaxScrollDepth: 1500, AvgScrollSpeed: 80}
	got := Generate(Single(a), a)
	assert.Equal(t, []string{"Skimming Detected"}, titles(got))
}

func TestGenerate_SlowScrollDeepPageIsHighInterest(t *testing.T) {
	a := &flow.FlowAnalysis{TimeToFirstClick: 3000, MaxScrollDepth: 1500, AvgScrollSpeed: 20}
	got := Generate(Single(a), a)
	assert.Equal(t, []string{"High Interest, No Action"}, titles(got))
}

func TestGenerate_FormAbandonment(t *testing.T) {
	a := &flow.FlowAnalysis{TimeToFirstClick: 3000, MaxScrollDepth: 300, TotalClicks: 1, TotalInputs: 2, ExitType: flow.ExitAbandoned}
	got := Generate(Single(a), a)
	assert.Equal(t, []string{"Form Abandonment"}, titles(got))
	assert.Equal(t, TypeCritical, got[0].Type)
}

func TestGenerate_Frustration(t *testing.T) {
	tests := []struct {
		name    string
		clicks  int
		between float64
		want    bool
	}{
		{"rapid clicks", 8, 300, true},
		{"exactly five clicks", 5, 300, false},
		{"slow clicks", 8, 500, false},
		{"no interval", 8, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := &flow.FlowAnalysis{
				TimeToFirstClick:     3000,
				MaxScrollDepth:       300,
				TotalClicks:          tc.clicks,
				AvgTimeBetweenClicks: tc.between,
				ExitType:             flow.ExitCompleted,
			}
			got := titles(Generate(Single(a), a))
			if tc.want {
				assert.Equal(t, []string{"Frustration Signals"}, got)
			} else {
				assert.NotContains(t, got, "Frustration Signals")
			}
		})
	}
}

func TestGenerate_Fallback(t *testing.T) {
	completed := &flow.FlowAnalysis{TimeToFirstClick: 3000, MaxScrollDepth: 300, ExitType: flow.ExitCompleted}
	got := Generate(Single(completed), completed)
	require.Len(t, got, 1)
	assert.Equal(t, "Smooth Journey", got[0].Title)
	assert.Equal(t, TypeSuccess, got[0].Type)

	for _, exit := range []flow.ExitType{flow.ExitAbandoned, flow.ExitUnknown} {
		a := &flow.FlowAnalysis{TimeToFirstClick: 3000, MaxScrollDepth: 300, ExitType: exit}
		got := Generate(Single(a), a)
		require.Len(t, got, 1)
		assert.Equal(t, "Passive Browsing", got[0].Title)
		assert.Equal(t, TypeWarning, got[0].Type)
	}
}

func TestGenerate_SingleWithoutRepresentative(t *testing.T) {
	tests := []struct {
		name     string
		analysis flow.FlowAnalysis
		want     []string
	}{
		{
			name:     "skimming",
			analysis: flow.FlowAnalysis{TimeToFirstClick: 3000, MaxScrollDepth: 1500, AvgScrollSpeed: 80, TotalClicks: 1, ExitType: flow.ExitUnknown},
			want:     []string{"Skimming Detected"},
		},
		{
			name:     "frustration",
			analysis: flow.FlowAnalysis{TimeToFirstClick: 3000, MaxScrollDepth: 300, TotalClicks: 8, AvgTimeBetweenClicks: 300, ExitType: flow.ExitCompleted},
			want:     []string{"Frustration Signals"},
		},
		{
			name:     "completed fallback",
			analysis: flow.FlowAnalysis{TimeToFirstClick: 3000, MaxScrollDepth: 300, ExitType: flow.ExitCompleted},
			want:     []string{"Smooth Journey"},
		},
		{
			name:     "form abandonment",
			analysis: flow.FlowAnalysis{TimeToFirstClick: 3000, MaxScrollDepth: 300, TotalInputs: 2, ExitType: flow.ExitAbandoned},
			want:     []string{"Form Abandonment"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.analysis
			assert.Equal(t, tt.want, titles(Generate(Single(&a), nil)))
		})
	}
}

func TestMetricsFor_SingleUsesOwnSessionValues(t *testing.T) {
	a := &flow.FlowAnalysis{AvgScrollSpeed: 80, AvgTimeBetweenClicks: 300, ExitType: flow.ExitCompleted}
	other := &flow.FlowAnalysis{AvgScrollSpeed: 5, AvgTimeBetweenClicks: 900, ExitType: flow.ExitAbandoned}

	m := MetricsFor(Single(a), other)
	assert.Equal(t, 80.0, m.AvgScrollSpeed)
	assert.Equal(t, 300.0, m.AvgTimeBetweenClicks)
	assert.Equal(t, flow.ExitCompleted, m.ExitType)

	assert.Equal(t, flow.ExitUnknown, MetricsFor(Single(nil), other).ExitType)
}

func TestGenerate_AggregateUsesMeansAndRepresentative(t *testing.T) {
	agg := &flow.AggregatedFlowAnalysis{
		TotalSessions:       4,
		TotalClicks:         4,
		AvgClicks:           1,
		TotalInputs:         2,
		AvgInputs:           0.5,
		AvgTimeToFirstClick: 3000,
		MaxScrollDepth:      300,
	}
	rep := &flow.FlowAnalysis{ExitType: flow.ExitAbandoned}

	got := Generate(Aggregate(agg), rep)
	assert.Equal(t, []string{"Form Abandonment"}, titles(got))
}

func TestGenerate_AggregateWithoutRepresentative(t *testing.T) {
	agg := &flow.AggregatedFlowAnalysis{
		TotalSessions:       2,
		AvgClicks:           7,
		AvgInputs:           1,
		AvgTimeToFirstClick: 3000,
		MaxScrollDepth:      1500,
	}
	// No scroll speed, click interval or exit type available.
	got := Generate(Aggregate(agg), nil)
	assert.Equal(t, []string{"Passive Browsing"}, titles(got))
}

func TestGenerate_AggregateClicksUseMean(t *testing.T) {
	// Twelve clicks across four sessions is three per session, not frustration.
	agg := &flow.AggregatedFlowAnalysis{
		TotalSessions:       4,
		TotalClicks:         12,
		AvgClicks:           3,
		AvgTimeToFirstClick: 3000,
		MaxScrollDepth:      300,
	}
	rep := &flow.FlowAnalysis{AvgTimeBetweenClicks: 200, ExitType: flow.ExitCompleted}
	got := Generate(Aggregate(agg), rep)
	assert.Equal(t, []string{"Smooth Journey"}, titles(got))
}

func TestSubjectKind(t *testing.T) {
	agg := Aggregate(&flow.AggregatedFlowAnalysis{TotalSessions: 1})
	assert.Equal(t, KindAggregate, agg.Kind())
	assert.NotNil(t, agg.AggregateAnalysis())
	assert.Nil(t, agg.SingleAnalysis())

	single := Single(&flow.FlowAnalysis{})
	assert.Equal(t, KindSingle, single.Kind())
	assert.Nil(t, single.AggregateAnalysis())
	assert.NotNil(t, single.SingleAnalysis())
}

func TestGenerate_NilSubjectAnalysis(t *testing.T) {
	// A zero time to first click reads as a strong hook.
	got := Generate(Aggregate(nil), nil)
	assert.Equal(t, []string{"Strong Hook"}, titles(got))
}

func TestGenerate_FromAnalyzedRecording(t *testing.T) {
	a := flow.FlowAnalysis{
		TotalClicks:      1,
		TotalInputs:      1,
		TimeToFirstClick: 2000,
		MaxScrollDepth:   400,
		ExitType:         flow.ExitCompleted,
	}
	got := Generate(Single(&a), &a)
	assert.Equal(t, []string{"Smooth Journey"}, titles(got))
}
