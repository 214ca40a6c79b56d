// Package insight provides the UX insight engine and its rules.
package insight

import "github.com/blackwell-systems/sessionflow/internal/flow"

// InsightType is the severity of an insight.
type InsightType string

const (
	TypeSuccess  InsightType = "success"
	TypeWarning  InsightType = "warning"
	TypeCritical InsightType = "critical"
)

// UXInsight is a qualitative observation about user behavior.
type UXInsight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Impact      string      `json:"impact"`
}

// SubjectKind discriminates the two Subject variants.
type SubjectKind int

const (
	KindAggregate SubjectKind = iota
	KindSingle
)

// Subject is the analysis an insight run inspects: either a variant
// aggregate or a single session. Construct one with Aggregate or Single.
type Subject struct {
	kind      SubjectKind
	aggregate *flow.AggregatedFlowAnalysis
	single    *flow.FlowAnalysis
}

// Aggregate wraps a cross-session aggregate.
func Aggregate(a *flow.AggregatedFlowAnalysis) Subject {
	return Subject{kind: KindAggregate, aggregate: a}
}

// Single wraps one session's analysis.
func Single(a *flow.FlowAnalysis) Subject {
	return Subject{kind: KindSingle, single: a}
}

// Kind reports which variant the subject holds.
func (s Subject) Kind() SubjectKind { return s.kind }

// AggregateAnalysis returns the wrapped aggregate, nil for a Single subject.
func (s Subject) AggregateAnalysis() *flow.AggregatedFlowAnalysis { return s.aggregate }

// SingleAnalysis returns the wrapped session, nil for an Aggregate subject.
func (s Subject) SingleAnalysis() *flow.FlowAnalysis { return s.single }

// Metrics is the flat view every rule reads. For an aggregate, per-session
// means of clicks and inputs stand in for the totals, and the per-session
// fields come from the representative session.
type Metrics struct {
	TimeToFirstClick     float64
	MaxScrollDepth       float64
	AvgScrollSpeed       float64
	Clicks               float64
	Inputs               float64
	AvgTimeBetweenClicks float64
	ExitType             flow.ExitType
}

// Rule examines the metrics and produces zero or more insights.
type Rule func(m *Metrics) []UXInsight
