package client

import (
	"fmt"
	"strings"
)

// Algorithm identifies a search strategy on the remote service.
type Algorithm string

const (
	BFS      Algorithm = "bfs"
	DFS      Algorithm = "dfs"
	Dijkstra Algorithm = "dijkstra"
	AStar    Algorithm = "astar"
)

var algorithms = []Algorithm{BFS, DFS, Dijkstra, AStar}

var algorithmLabels = map[Algorithm]string{
	BFS:      "Breadth-First Search (BFS)",
	DFS:      "Depth-First Search (DFS)",
	Dijkstra: "Dijkstra's Algorithm",
	AStar:    "A* Search",
}

// Algorithms returns the recognized identifiers in selector order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, len(algorithms))
	copy(out, algorithms)
	return out
}

func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := algorithmLabels[a]; !ok {
		return "", fmt.Errorf("unknown algorithm: %s (available: %v)", s, algorithms)
	}
	return a, nil
}

func (a Algorithm) Valid() bool {
	_, ok := algorithmLabels[a]
	return ok
}

func (a Algorithm) Label() string {
	if l, ok := algorithmLabels[a]; ok {
		return l
	}
	return string(a)
}

// Next cycles forward through the selector order.
func (a Algorithm) Next() Algorithm { return a.shift(1) }

// Prev cycles backward through the selector order.
func (a Algorithm) Prev() Algorithm { return a.shift(-1) }

func (a Algorithm) shift(d int) Algorithm {
	for i, x := range algorithms {
		if x == a {
			n := len(algorithms)
			return algorithms[((i+d)%n+n)%n]
		}
	}
	return algorithms[0]
}
