package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level sessionflow configuration.
type Config struct {
	RecordingsDir string   `mapstructure:"recordings_dir"`
	SnapshotDir   string   `mapstructure:"snapshot_dir"`
	Source        Source   `mapstructure:"source"`
	Analysis      Analysis `mapstructure:"analysis"`
	Output        Output   `mapstructure:"output"`
}

// Source selects where recordings come from.
type Source struct {
	Kind    string        `mapstructure:"kind"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

// Analysis tunes the analysis pipeline.
type Analysis struct {
	Workers int `mapstructure:"workers"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// WorkerCount returns the configured worker count, one per CPU when unset.
func (a Analysis) WorkerCount() int {
	if a.Workers > 0 {
		return a.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. SESSIONFLOW_* environment
// variables override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("recordings_dir", DefaultRecordingsDir)
	v.SetDefault("snapshot_dir", DefaultSnapshotDir)
	v.SetDefault("source.kind", DefaultSource.Kind)
	v.SetDefault("source.base_url", DefaultSource.BaseURL)
	v.SetDefault("source.timeout", DefaultSource.Timeout)
	v.SetDefault("source.retries", DefaultSource.Retries)
	v.SetDefault("analysis.workers", DefaultAnalysis.Workers)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.RecordingsDir = expandPath(cfg.RecordingsDir)
	cfg.SnapshotDir = expandPath(cfg.SnapshotDir)
	cfg.Source.Kind = strings.ToLower(strings.TrimSpace(cfg.Source.Kind))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that would otherwise fail later.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceDir:
	case SourceHTTP:
		if c.Source.BaseURL == "" {
			return fmt.Errorf("source.base_url is required for the http source")
		}
	default:
		return fmt.Errorf("unknown source.kind %q (want %q or %q)", c.Source.Kind, SourceDir, SourceHTTP)
	}
	if c.Source.Retries < 0 {
		return fmt.Errorf("source.retries must not be negative")
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must not be negative")
	}
	return nil
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
