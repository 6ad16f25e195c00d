package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/pathviz/internal/client"
	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/store"
)

// ErrInvalidRunID is returned for ids that would resolve outside the archive.
var ErrInvalidRunID = errors.New("storage: invalid run id")

func checkRunID(runID string) error {
	if runID == "" || runID == "." || runID == ".." || filepath.Base(runID) != runID {
		return fmt.Errorf("%w: %q", ErrInvalidRunID, runID)
	}
	return nil
}

// Store archives finished runs, one directory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Algorithm  string    `json:"algorithm"`
	Timestamp  time.Time `json:"timestamp"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Walls      int       `json:"walls"`
	SpeedMs    int64     `json:"speed_ms"`
	Visited    int       `json:"visited"`
	PathLength int       `json:"path_length"`
	Found      bool      `json:"found"`
}

// Save writes metadata.json, trace.json and schedule.csv for data and
// returns the new run id.
func (s *Store) Save(data store.ExportData) (string, error) {
	runID := fmt.Sprintf("%s_%d", data.Algorithm, data.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	walls := 0
	for _, row := range data.Walls {
		for _, v := range row {
			walls += v
		}
	}
	meta := RunMetadata{
		ID:         runID,
		Algorithm:  data.Algorithm,
		Timestamp:  data.Timestamp,
		Width:      data.Width,
		Height:     data.Height,
		Walls:      walls,
		SpeedMs:    data.SpeedMs,
		Visited:    len(data.Visited),
		PathLength: len(data.Path),
		Found:      len(data.Path) > 0,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := store.ExportJSON(filepath.Join(runDir, "trace.json"), data); err != nil {
		return "", err
	}
	if err := store.ExportCSVFile(filepath.Join(runDir, "schedule.csv"), data); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns every archived run, newest first. Unreadable entries are
// skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if err := checkRunID(runID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (store.ExportData, error) {
	var data store.ExportData
	if err := checkRunID(runID); err != nil {
		return data, err
	}
	raw, err := os.ReadFile(filepath.Join(s.baseDir, runID, "trace.json"))
	if err != nil {
		return data, err
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("decode trace %s: %w", runID, err)
	}
	return data, nil
}

// Restore rebuilds the grid and result a trace was recorded from.
func Restore(data store.ExportData) (grid.Grid, client.Result, error) {
	g, err := grid.New(data.Width, data.Height, data.Start, data.Finish)
	if err != nil {
		return grid.Grid{}, client.Result{}, err
	}
	if len(data.Walls) != data.Height {
		return grid.Grid{}, client.Result{}, fmt.Errorf("wall bitmap has %d rows, want %d", len(data.Walls), data.Height)
	}
	for r, row := range data.Walls {
		if len(row) != data.Width {
			return grid.Grid{}, client.Result{}, fmt.Errorf("wall row %d has %d cells, want %d", r, len(row), data.Width)
		}
		for c, v := range row {
			if v == 0 || g.IsEndpoint(grid.Coord{Row: r, Col: c}) {
				continue
			}
			if g, err = g.ToggleWall(r, c); err != nil {
				return grid.Grid{}, client.Result{}, err
			}
		}
	}

	res := client.Result{Visited: data.Visited, Path: data.Path}
	for _, c := range append(append([]grid.Coord{}, res.Visited...), res.Path...) {
		if !g.InBounds(c) {
			return grid.Grid{}, client.Result{}, fmt.Errorf("%w: %s", grid.ErrOutOfBounds, c)
		}
	}
	return g, res, nil
}
