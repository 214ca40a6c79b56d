package flow

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/sessionflow/internal/recording"
)

func TestAnalyze_ClickInputScroll(t *testing.T) {
	rec := newRecording(1000, 11000,
		click(3000, 42),
		input(5000),
		scroll(6000, 400),
	)

	a := Analyze(rec)
	assert.Equal(t, int64(10000), a.SessionDuration)
	assert.Equal(t, int64(2000), a.TimeToFirstClick)
	assert.Equal(t, int64(5000), a.TimeToFirstScroll)
	assert.Equal(t, 17, a.EngagementScore)
	assert.Equal(t, ExitCompleted, a.ExitType)
	assert.Equal(t, 400.0, a.MaxScrollDepth)
	assert.Zero(t, a.AvgScrollSpeed)
	assert.Zero(t, a.AvgTimeBetweenClicks)

	require.Len(t, a.Steps, 4)
	assert.Equal(t, StepPage, a.Steps[0].Type)
	assert.Equal(t, "Pricing page", a.Steps[0].Label)
	assert.Equal(t, StepClick, a.Steps[1].Type)
	assert.Equal(t, StepInput, a.Steps[2].Type)
	assert.Equal(t, StepExit, a.Steps[3].Type)
	assert.Equal(t, int64(11000), a.Steps[3].Timestamp)
}

func TestAnalyze_ZeroEvents(t *testing.T) {
	durations := []int64{0, 5000, 33000, 60000, 300000}
	for _, d := range durations {
		a := Analyze(newRecording(1000, 1000+d))

		assert.Zero(t, a.TotalClicks)
		assert.Zero(t, a.TotalScrolls)
		assert.Zero(t, a.TotalInputs)
		assert.Zero(t, a.MaxScrollDepth)
		assert.Zero(t, a.AvgScrollSpeed)
		assert.Zero(t, a.AvgTimeBetweenClicks)
		assert.Equal(t, d, a.TimeToFirstClick)
		assert.Equal(t, d, a.TimeToFirstScroll)

		want := int(math.Round(math.Min(100, 0.5*math.Min(float64(d)/1000, 60))))
		assert.Equal(t, want, a.EngagementScore, "duration %d", d)

		require.Len(t, a.Steps, 2)
		assert.Equal(t, StepPage, a.Steps[0].Type)
		assert.Equal(t, StepExit, a.Steps[1].Type)
	}
}

func TestAnalyze_NoClickFallsBackToDuration(t *testing.T) {
	a := Analyze(newRecording(0, 42000, scroll(1000, 10), input(2000)))
	assert.Equal(t, a.SessionDuration, a.TimeToFirstClick)
	assert.Equal(t, int64(1000), a.TimeToFirstScroll)
}

func TestAnalyze_ScrollAndClickDerivations(t *testing.T) {
	a := Analyze(newRecording(0, 30000,
		scroll(100, 100),
		scroll(200, 400),
		scroll(300, 250),
		click(1000, 1),
		click(1300, 2),
		click(2200, 3),
	))

	// |400-100| + |250-400| = 450 over 2 deltas.
	assert.Equal(t, 225.0, a.AvgScrollSpeed)
	assert.Equal(t, 400.0, a.MaxScrollDepth)
	// (300 + 900) / 2
	assert.Equal(t, 600.0, a.AvgTimeBetweenClicks)
}

func TestAnalyze_MetadataCopied(t *testing.T) {
	rec := newRecording(0, 1000)
	a := Analyze(rec)
	assert.Equal(t, rec.Metadata.URL, a.PageURL)
	assert.Equal(t, rec.Metadata.UserAgent, a.UserAgent)
	assert.Equal(t, rec.Metadata.Viewport, a.Viewport)
	assert.Equal(t, "sess-001", a.SessionID)
	assert.Equal(t, "A", a.Version)
	assert.Equal(t, "desktop", a.Client.DeviceType)
}

func TestAnalyze_Idempotent(t *testing.T) {
	rec := newRecording(500, 20500, click(900, "btn"), scroll(1000, 90), input(1500))

	first, err := json.Marshal(Analyze(rec))
	require.NoError(t, err)
	second, err := json.Marshal(Analyze(rec))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestEngagementScore(t *testing.T) {
	tests := []struct {
		name                    string
		clicks, scrolls, inputs int
		durationMs              int64
		want                    int
	}{
		{"nothing", 0, 0, 0, 0, 0},
		{"example", 1, 1, 1, 10000, 17},
		{"click cap", 50, 0, 0, 0, 50},
		{"scroll cap", 0, 500, 0, 0, 20},
		{"input cap", 0, 0, 99, 0, 30},
		{"duration cap", 0, 0, 0, 3600000, 30},
		{"all capped", 10, 20, 5, 60000, 100},
		{"hard cap", 10000, 10000, 10000, 1 << 40, 100},
		{"half point rounds up", 0, 0, 0, 1000, 1},
		{"negative duration floors at zero", 0, 0, 0, -60000, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EngagementScore(tc.clicks, tc.scrolls, tc.inputs, tc.durationMs)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestClassifyExit(t *testing.T) {
	tests := []struct {
		name                    string
		clicks, scrolls, inputs int
		durationMs              int64
		score                   int
		want                    ExitType
	}{
		{"idle short session abandons", 0, 0, 0, 5000, 3, ExitAbandoned},
		{"input completes", 0, 0, 1, 5000, 9, ExitCompleted},
		{"completed beats abandoned", 1, 1, 1, 1000, 12, ExitCompleted},
		{"high score completes", 10, 20, 0, 60000, 100, ExitCompleted},
		{"score of exactly 60 is not enough", 6, 0, 0, 60000, 60, ExitUnknown},
		{"long idle session is unknown", 0, 0, 0, 10000, 5, ExitUnknown},
		{"two clicks is unknown", 2, 0, 0, 5000, 13, ExitUnknown},
		{"five scrolls is unknown", 0, 5, 0, 5000, 8, ExitUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyExit(tc.clicks, tc.scrolls, tc.inputs, tc.durationMs, tc.score))
		})
	}
}

func TestAnalyze_AbandonedExample(t *testing.T) {
	a := Analyze(newRecording(0, 5000, incremental(100, recording.SourceMouseMove)))
	assert.Equal(t, ExitAbandoned, a.ExitType)
	assert.Equal(t, "Session abandoned", a.Steps[len(a.Steps)-1].Label)
}

func TestAnalyze_ExtremeCountsStayInRange(t *testing.T) {
	events := make([]recording.RawEvent, 0, 10000)
	for i := 0; i < 10000; i++ {
		events = append(events, click(int64(i), i))
	}
	a := Analyze(newRecording(0, 20000, events...))
	assert.Equal(t, 10000, a.TotalClicks)
	assert.Equal(t, 60, a.EngagementScore)
}
