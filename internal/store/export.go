package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/san-kum/pathviz/internal/anim"
	"github.com/san-kum/pathviz/internal/client"
	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/metrics"
)

// ExportData is the on-disk form of one run and its replay schedule.
type ExportData struct {
	Algorithm string          `json:"algorithm"`
	Timestamp time.Time       `json:"timestamp"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Start     grid.Coord      `json:"start"`
	Finish    grid.Coord      `json:"finish"`
	Walls     [][]int         `json:"walls"`
	SpeedMs   int64           `json:"speed_ms"`
	PathMs    int64           `json:"path_speed_ms"`
	DoneMs    int64           `json:"done_ms"`
	Visited   []grid.Coord    `json:"visited"`
	Path      []grid.Coord    `json:"path"`
	Steps     []StepRecord    `json:"steps"`
	Summary   metrics.Summary `json:"summary"`
}

type StepRecord struct {
	Phase string     `json:"phase"`
	Index int        `json:"index"`
	Coord grid.Coord `json:"coord"`
	AtMs  int64      `json:"at_ms"`
}

func NewExport(g grid.Grid, algo client.Algorithm, res client.Result, tl anim.Timeline) ExportData {
	data := ExportData{
		Algorithm: string(algo),
		Timestamp: time.Now(),
		Width:     g.Width(),
		Height:    g.Height(),
		Start:     g.Start(),
		Finish:    g.Finish(),
		Walls:     g.Walls(),
		SpeedMs:   tl.Speed.Milliseconds(),
		PathMs:    tl.PathSpeed.Milliseconds(),
		DoneMs:    tl.Done.Milliseconds(),
		Visited:   res.Visited,
		Path:      res.Path,
		Steps:     make([]StepRecord, len(tl.Steps)),
		Summary:   metrics.Summarize(g, algo, res),
	}
	for i, s := range tl.Steps {
		data.Steps[i] = StepRecord{
			Phase: s.Phase.String(),
			Index: s.Index,
			Coord: s.Coord,
			AtMs:  s.At.Milliseconds(),
		}
	}
	return data
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportJSONTo(file, data)
}

func ExportJSONTo(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes one row per scheduled step.
func ExportCSV(w io.Writer, data ExportData) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"phase", "index", "row", "col", "at_ms"}); err != nil {
		return err
	}
	for _, s := range data.Steps {
		record := []string{
			s.Phase,
			strconv.Itoa(s.Index),
			strconv.Itoa(s.Coord.Row),
			strconv.Itoa(s.Coord.Col),
			strconv.FormatInt(s.AtMs, 10),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSVFile(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportCSV(file, data)
}
