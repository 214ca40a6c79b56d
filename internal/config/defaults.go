// Package config provides configuration loading and defaults for sessionflow.
package config

import "time"

// DefaultConfigDir is the default location for sessionflow configuration.
const DefaultConfigDir = "~/.config/sessionflow"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultRecordingsDir is where recording JSON files are read from.
const DefaultRecordingsDir = "./recordings"

// DefaultSnapshotDir is where `track` writes snapshot files.
const DefaultSnapshotDir = "~/.config/sessionflow/snapshots"

// EnvPrefix prefixes environment variable overrides, e.g.
// SESSIONFLOW_SOURCE_BASE_URL.
const EnvPrefix = "SESSIONFLOW"

// Source kinds.
const (
	SourceDir  = "dir"
	SourceHTTP = "http"
)

// DefaultSource holds the default recording source settings.
var DefaultSource = Source{
	Kind:    SourceDir,
	BaseURL: "http://localhost:3000/api",
	Timeout: 10 * time.Second,
	Retries: 2,
}

// DefaultAnalysis holds the default analysis settings. Zero workers means
// one per CPU.
var DefaultAnalysis = Analysis{
	Workers: 0,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
