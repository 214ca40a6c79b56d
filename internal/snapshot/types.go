// Package snapshot stores point-in-time variant metrics as flat JSON files
// and compares them.
package snapshot

import "time"

// Snapshot is one `track` run: the aggregate metrics of every variant at a
// point in time.
type Snapshot struct {
	ID       string           `json:"id"`
	TakenAt  time.Time        `json:"taken_at"`
	Command  string           `json:"command"`
	Version  string           `json:"version"`
	Variants []VariantMetrics `json:"variants"`
}

// VariantMetrics holds the named metric values of one experiment variant.
type VariantMetrics struct {
	Variant  string             `json:"variant"`
	Sessions int                `json:"sessions"`
	Metrics  map[string]float64 `json:"metrics"`
}

// SnapshotDiff represents the comparison between two snapshots.
type SnapshotDiff struct {
	Previous *Snapshot     `json:"previous"`
	Current  *Snapshot     `json:"current"`
	Deltas   []MetricDelta `json:"deltas"`
}

// MetricDelta represents the change in a single variant metric between
// snapshots.
type MetricDelta struct {
	Variant   string  `json:"variant"`
	Name      string  `json:"name"`
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"` // "improved", "regressed", "unchanged"
}

// Delta directions.
const (
	Improved  = "improved"
	Regressed = "regressed"
	Unchanged = "unchanged"
)
