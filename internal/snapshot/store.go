package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// fileTimeLayout is the compact RFC 3339 form used in snapshot file names.
const fileTimeLayout = "20060102T150405Z"

// Store reads and writes snapshot files in a single directory.
type Store struct {
	dir string
}

// Open returns a Store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string { return s.dir }

// Save writes snap to a new file. A missing ID or TakenAt is filled in.
func (s *Store) Save(snap *Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.TakenAt.IsZero() {
		snap.TakenAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", snap.TakenAt.UTC().Format(fileTimeLayout), snap.ID)
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// List returns every stored snapshot, newest first. Unreadable files are
// skipped.
func (s *Store) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot dir: %w", err)
	}

	var snaps []Snapshot
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			continue
		}
		snaps = append(snaps, snap)
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		if !snaps[i].TakenAt.Equal(snaps[j].TakenAt) {
			return snaps[i].TakenAt.After(snaps[j].TakenAt)
		}
		return snaps[i].ID > snaps[j].ID
	})
	return snaps, nil
}

// Nth returns the Nth most recent snapshot (1 = latest, 2 = previous, etc.),
// or nil if there are fewer than n.
func (s *Store) Nth(n int) (*Snapshot, error) {
	if n < 1 {
		return nil, fmt.Errorf("snapshot index must be at least 1, got %d", n)
	}
	snaps, err := s.List()
	if err != nil {
		return nil, err
	}
	if n > len(snaps) {
		return nil, nil
	}
	return &snaps[n-1], nil
}
