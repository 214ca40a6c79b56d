package recording

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned by a Source when a session id is unknown.
var ErrNotFound = errors.New("recording not found")

// Source supplies recordings to the analysis.
type Source interface {
	List(ctx context.Context) ([]Summary, error)
	Fetch(ctx context.Context, sessionID string) (*Recording, error)
}

// DirSource reads recordings from flat JSON files in a directory, one
// recording per file.
type DirSource struct {
	Dir    string
	Logger *zap.Logger
}

// NewDirSource returns a DirSource rooted at dir. A nil logger discards.
func NewDirSource(dir string, logger *zap.Logger) *DirSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirSource{Dir: dir, Logger: logger}
}

// List parses every .json file in the directory and returns their summaries
// ordered by start time. Files that fail to parse are skipped. A missing
// directory yields no recordings.
func (s *DirSource) List(ctx context.Context) ([]Summary, error) {
	recs, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(recs))
	for _, r := range recs {
		summaries = append(summaries, r.Summary())
	}
	return summaries, nil
}

// Fetch returns the recording with the given session id. It looks for
// <dir>/<id>.json first and falls back to scanning the directory.
func (s *DirSource) Fetch(ctx context.Context, sessionID string) (*Recording, error) {
	direct := filepath.Join(s.Dir, sessionID+".json")
	if rec, err := ParseFile(direct); err == nil && rec.SessionID == sessionID {
		return rec, nil
	}

	recs, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range recs {
		if r.SessionID == sessionID {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", sessionID, ErrNotFound)
}

func (s *DirSource) readAll(ctx context.Context) ([]*Recording, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading recordings dir: %w", err)
	}

	var recs []*Recording
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.Dir, entry.Name())
		rec, err := ParseFile(path)
		if err != nil {
			s.Logger.Warn("skipping unreadable recording", zap.String("path", path), zap.Error(err))
			continue
		}
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].StartTime != recs[j].StartTime {
			return recs[i].StartTime < recs[j].StartTime
		}
		return recs[i].SessionID < recs[j].SessionID
	})
	return recs, nil
}

// LoadAll lists the source and fetches every recording, at most workers at a
// time. The result keeps the listing order.
func LoadAll(ctx context.Context, src Source, workers int) ([]*Recording, error) {
	// A directory listing already holds the parsed recordings.
	if ds, ok := src.(*DirSource); ok {
		return ds.readAll(ctx)
	}

	summaries, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing recordings: %w", err)
	}
	return FetchAll(ctx, src, summaries, workers)
}

// FetchAll fetches the recordings named by summaries, at most workers at a
// time, preserving order.
func FetchAll(ctx context.Context, src Source, summaries []Summary, workers int) ([]*Recording, error) {
	if workers < 1 {
		workers = 1
	}
	recs := make([]*Recording, len(summaries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sum := range summaries {
		g.Go(func() error {
			rec, err := src.Fetch(gctx, sum.SessionID)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", sum.SessionID, err)
			}
			recs[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return recs, nil
}

// FetchDetails fetches the recordings named by summaries into a map keyed
// by session id. Recordings the source no longer has are left out rather
// than failing the batch.
func FetchDetails(ctx context.Context, src Source, summaries []Summary, workers int) (map[string]*Recording, error) {
	details := make(map[string]*Recording, len(summaries))
	if ds, ok := src.(*DirSource); ok {
		recs, err := ds.readAll(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range recs {
			details[r.SessionID] = r
		}
		return details, nil
	}

	if workers < 1 {
		workers = 1
	}
	recs := make([]*Recording, len(summaries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sum := range summaries {
		g.Go(func() error {
			rec, err := src.Fetch(gctx, sum.SessionID)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("fetching %s: %w", sum.SessionID, err)
			}
			recs[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, rec := range recs {
		if rec != nil {
			details[summaries[i].SessionID] = rec
		}
	}
	return details, nil
}

// FilterSummaries keeps the summaries of the given variant. An empty
// version keeps everything.
func FilterSummaries(summaries []Summary, version string) []Summary {
	if version == "" {
		return summaries
	}
	var kept []Summary
	for _, s := range summaries {
		if s.Version == version {
			kept = append(kept, s)
		}
	}
	return kept
}

// FilterVersion keeps the recordings of the given variant. An empty version
// keeps everything.
func FilterVersion(recs []*Recording, version string) []*Recording {
	if version == "" {
		return recs
	}
	var kept []*Recording
	for _, r := range recs {
		if r != nil && r.Version == version {
			kept = append(kept, r)
		}
	}
	return kept
}
