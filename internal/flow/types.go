// Package flow derives behavioral metrics from recorded sessions and
// aggregates them across sessions of the same variant.
package flow

import "github.com/blackwell-systems/sessionflow/internal/recording"

// StepType is the kind of a FlowStep.
type StepType string

const (
	StepPage   StepType = "page"
	StepClick  StepType = "click"
	StepScroll StepType = "scroll"
	StepInput  StepType = "input"
	StepExit   StepType = "exit"
)

// ExitType is the coarse classification of how a session ended.
type ExitType string

const (
	ExitCompleted ExitType = "completed"
	ExitAbandoned ExitType = "abandoned"
	ExitUnknown   ExitType = "unknown"
)

// FlowStep is one entry in a session's reconstructed timeline.
type FlowStep struct {
	Type      StepType `json:"type"`
	Label     string   `json:"label"`
	Timestamp int64    `json:"timestamp"`
	Details   string   `json:"details,omitempty"`
}

// Ingest is the single-pass classification of a recording's events.
type Ingest struct {
	Clicks      int
	Scrolls     int
	Inputs      int
	MouseMoves  int
	FocusEvents int
	Mutations   int

	// FirstClick and FirstScroll are absolute timestamps; the Seen flags
	// report whether the event occurred at all.
	FirstClick      int64
	FirstClickSeen  bool
	FirstScroll     int64
	FirstScrollSeen bool

	ClickTimes      []int64
	ScrollPositions []float64

	// Steps holds the interior click/input steps in event order.
	Steps []FlowStep
}

// FlowAnalysis is the derived metrics of one recording. EngagementScore is
// always computed from the counts and timing in the same record.
type FlowAnalysis struct {
	SessionID string `json:"sessionId"`
	Version   string `json:"version"`

	TotalClicks      int `json:"totalClicks"`
	TotalScrolls     int `json:"totalScrolls"`
	TotalInputs      int `json:"totalInputs"`
	TotalMouseMoves  int `json:"totalMouseMoves"`
	TotalFocusEvents int `json:"totalFocusEvents"`
	TotalMutations   int `json:"totalMutations"`

	MaxScrollDepth float64 `json:"maxScrollDepth"`
	AvgScrollSpeed float64 `json:"avgScrollSpeed"`

	SessionDuration      int64   `json:"sessionDuration"`
	TimeToFirstClick     int64   `json:"timeToFirstClick"`
	TimeToFirstScroll    int64   `json:"timeToFirstScroll"`
	AvgTimeBetweenClicks float64 `json:"avgTimeBetweenClicks"`

	EngagementScore int      `json:"engagementScore"`
	ExitType        ExitType `json:"exitType"`

	PageURL   string               `json:"pageUrl"`
	PageName  string               `json:"pageName"`
	Viewport  recording.Viewport   `json:"viewport"`
	UserAgent string               `json:"userAgent"`
	Client    recording.ClientInfo `json:"client"`

	Steps []FlowStep `json:"steps"`
}

// AggregatedFlowAnalysis combines the analyses of several sessions. Totals
// are sums; Avg fields are arithmetic means per session; MaxScrollDepth is
// the maximum across sessions. Viewport is copied from the first session.
type AggregatedFlowAnalysis struct {
	TotalSessions int `json:"totalSessions"`

	TotalClicks      int `json:"totalClicks"`
	TotalScrolls     int `json:"totalScrolls"`
	TotalInputs      int `json:"totalInputs"`
	TotalMouseMoves  int `json:"totalMouseMoves"`
	TotalFocusEvents int `json:"totalFocusEvents"`
	TotalMutations   int `json:"totalMutations"`

	AvgClicks      float64 `json:"avgClicks"`
	AvgScrolls     float64 `json:"avgScrolls"`
	AvgInputs      float64 `json:"avgInputs"`
	AvgMouseMoves  float64 `json:"avgMouseMoves"`
	AvgFocusEvents float64 `json:"avgFocusEvents"`
	AvgMutations   float64 `json:"avgMutations"`

	MaxScrollDepth float64 `json:"maxScrollDepth"`

	AvgSessionDuration   float64 `json:"avgSessionDuration"`
	AvgTimeToFirstClick  float64 `json:"avgTimeToFirstClick"`
	AvgTimeToFirstScroll float64 `json:"avgTimeToFirstScroll"`
	AvgEngagementScore   float64 `json:"avgEngagementScore"`

	Viewport recording.Viewport `json:"viewport"`
}

// PageStat is one row of AggregatedFlowStats.TopPages.
type PageStat struct {
	Page       string `json:"page"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// ExitPoint is one row of AggregatedFlowStats.ExitPoints.
type ExitPoint struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// AggregatedFlowStats is the summary view of a set of sessions.
type AggregatedFlowStats struct {
	TotalSessions  int         `json:"totalSessions"`
	AvgDuration    float64     `json:"avgDuration"`
	AvgClicks      float64     `json:"avgClicks"`
	AvgScrollDepth float64     `json:"avgScrollDepth"`
	CompletionRate int         `json:"completionRate"`
	TopPages       []PageStat  `json:"topPages"`
	ExitPoints     []ExitPoint `json:"exitPoints"`
}
