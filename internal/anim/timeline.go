// Package anim schedules the replay of an algorithm result.
//
// A [Timeline] is computed up front: every step's fire time is derived from
// its index and the fixed per-step delay, never from when the previous step
// actually ran. Replaying is therefore a matter of asking which steps are due
// at a given elapsed time; late frames apply several steps at once and the
// order never changes.
//
// Phase 1 marks the visited trace as explored, one step per speed interval.
// Phase 2 starts right after the last visited slot and marks the path at
// PathFactor times the speed. The run is done one path interval after the
// last path slot. Start and finish coordinates keep their slot in time but
// are never marked.
package anim

import (
	"time"

	"github.com/san-kum/pathviz/internal/grid"
)

// DefaultPathFactor slows the path phase relative to exploration.
const DefaultPathFactor = 5

type Mark int

const (
	MarkNone Mark = iota
	MarkExplored
	MarkPath
)

func (m Mark) String() string {
	switch m {
	case MarkExplored:
		return "explored"
	case MarkPath:
		return "path"
	}
	return "none"
}

type Phase int

const (
	PhaseVisited Phase = iota
	PhasePath
)

func (p Phase) String() string {
	if p == PhasePath {
		return "path"
	}
	return "visited"
}

// Step marks one coordinate at an absolute offset from the start of a run.
type Step struct {
	At    time.Duration
	Phase Phase
	Index int
	Coord grid.Coord
	Mark  Mark
}

type Timeline struct {
	Steps     []Step
	Speed     time.Duration
	PathSpeed time.Duration
	// PathStart is the offset at which phase 2 begins.
	PathStart time.Duration
	// Done is the offset at which the run lock is released.
	Done time.Duration

	VisitedLen int
	PathLen    int
}

// Plan builds the two-phase timeline. A pathFactor <= 0 selects
// DefaultPathFactor.
func Plan(visited, path []grid.Coord, start, finish grid.Coord, speed time.Duration, pathFactor int) Timeline {
	if speed < 0 {
		speed = 0
	}
	if pathFactor <= 0 {
		pathFactor = DefaultPathFactor
	}
	pathSpeed := speed * time.Duration(pathFactor)

	tl := Timeline{
		Steps:      make([]Step, 0, len(visited)+len(path)),
		Speed:      speed,
		PathSpeed:  pathSpeed,
		PathStart:  speed * time.Duration(len(visited)),
		VisitedLen: len(visited),
		PathLen:    len(path),
	}
	tl.Done = tl.PathStart + pathSpeed*time.Duration(len(path))

	for i, c := range visited {
		if c == start || c == finish {
			continue
		}
		tl.Steps = append(tl.Steps, Step{
			At:    speed * time.Duration(i),
			Phase: PhaseVisited,
			Index: i,
			Coord: c,
			Mark:  MarkExplored,
		})
	}
	for j, c := range path {
		if c == start || c == finish {
			continue
		}
		tl.Steps = append(tl.Steps, Step{
			At:    tl.PathStart + pathSpeed*time.Duration(j),
			Phase: PhasePath,
			Index: j,
			Coord: c,
			Mark:  MarkPath,
		})
	}
	return tl
}

// FireTime returns when the first step for c in the given phase fires.
func (tl Timeline) FireTime(c grid.Coord, phase Phase) (time.Duration, bool) {
	for _, s := range tl.Steps {
		if s.Coord == c && s.Phase == phase {
			return s.At, true
		}
	}
	return 0, false
}
