package metrics

import (
	"github.com/san-kum/pathviz/internal/client"
	"github.com/san-kum/pathviz/internal/grid"
)

// Summary describes one run relative to its grid.
type Summary struct {
	Algorithm  string `json:"algorithm"`
	Visited    int    `json:"visited"`
	PathLength int    `json:"path_length"`
	Found      bool   `json:"found"`
	// Coverage is the fraction of open cells the algorithm explored.
	Coverage float64 `json:"coverage"`
	// Efficiency is path cells per visited cell; 1 means no wasted work.
	Efficiency float64 `json:"efficiency"`
}

func Summarize(g grid.Grid, algo client.Algorithm, res client.Result) Summary {
	s := Summary{
		Algorithm:  string(algo),
		Visited:    len(res.Visited),
		PathLength: len(res.Path),
		Found:      res.Found(),
	}
	if open := g.Size() - g.WallCount(); open > 0 {
		s.Coverage = float64(uniq(res.Visited)) / float64(open)
	}
	if s.Visited > 0 {
		s.Efficiency = float64(s.PathLength) / float64(s.Visited)
	}
	return s
}

func uniq(cs []grid.Coord) int {
	seen := make(map[grid.Coord]struct{}, len(cs))
	for _, c := range cs {
		seen[c] = struct{}{}
	}
	return len(seen)
}
