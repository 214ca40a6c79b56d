package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/sessionflow/internal/config"
	"github.com/blackwell-systems/sessionflow/internal/logging"
	"github.com/blackwell-systems/sessionflow/internal/output"
	"github.com/blackwell-systems/sessionflow/internal/recording"
)

// env is the per-command setup shared by every subcommand.
type env struct {
	cfg *config.Config
	log *zap.Logger
	src recording.Source
	out io.Writer
}

// setup loads config, configures color and logging, and builds the
// recording source.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	out := cmd.OutOrStdout()
	output.SetNoColor(flagNoColor || !cfg.Output.Color || !isTerminal(out))

	log := logging.NewWithWriter(cmd.ErrOrStderr(), flagVerbose)
	e := &env{cfg: cfg, log: log, out: out}

	switch cfg.Source.Kind {
	case config.SourceHTTP:
		e.src = recording.NewHTTPSource(cfg.Source.BaseURL, cfg.Source.Timeout, cfg.Source.Retries, log)
		log.Debug("using http source", zap.String("base_url", cfg.Source.BaseURL))
	default:
		e.src = recording.NewDirSource(cfg.RecordingsDir, log)
		log.Debug("using directory source", zap.String("dir", cfg.RecordingsDir))
	}
	return e, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// loadRecordings loads every recording from the source, keeping only those
// of the given variant when version is set.
func (e *env) loadRecordings(ctx context.Context, version string) ([]*recording.Recording, error) {
	recs, err := recording.LoadAll(ctx, e.src, e.cfg.Analysis.WorkerCount())
	if err != nil {
		return nil, fmt.Errorf("loading recordings: %w", err)
	}
	e.log.Debug("loaded recordings", zap.Int("count", len(recs)))
	return recording.FilterVersion(recs, version), nil
}

// writeJSON encodes v to the command's output.
func (e *env) writeJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (e *env) println(a ...any) {
	_, _ = fmt.Fprintln(e.out, a...)
}

func (e *env) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(e.out, format, a...)
}
