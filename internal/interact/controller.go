// Package interact turns pointer events into grid mutations.
//
// [Controller] is a small state value with three states: Idle, Dragging and
// Locked. Every transition returns the next controller and the next grid;
// neither input is modified. While Locked no wall is ever toggled.
package interact

import "github.com/san-kum/pathviz/internal/grid"

type State int

const (
	Idle State = iota
	Dragging
	Locked
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Locked:
		return "locked"
	}
	return "unknown"
}

type Controller struct {
	State State
}

func New() Controller { return Controller{State: Idle} }

func (c Controller) IsLocked() bool { return c.State == Locked }
func (c Controller) CanEdit() bool  { return c.State != Locked }

// PointerDown toggles the wall under the pointer and starts a drag. Endpoint
// and out-of-bounds addresses still start the drag but leave g unchanged.
func (c Controller) PointerDown(g grid.Grid, row, col int) (Controller, grid.Grid) {
	if c.State == Locked {
		return c, g
	}
	c.State = Dragging
	return c, toggle(g, row, col)
}

// PointerEnter toggles the wall under the pointer while dragging.
func (c Controller) PointerEnter(g grid.Grid, row, col int) (Controller, grid.Grid) {
	if c.State != Dragging {
		return c, g
	}
	return c, toggle(g, row, col)
}

func (c Controller) PointerUp() Controller {
	if c.State == Dragging {
		c.State = Idle
	}
	return c
}

// Lock is applied when a run is dispatched. Any drag in progress ends.
func (c Controller) Lock() Controller {
	c.State = Locked
	return c
}

// Unlock releases a run lock. It is a no-op in any other state.
func (c Controller) Unlock() Controller {
	if c.State == Locked {
		c.State = Idle
	}
	return c
}

func toggle(g grid.Grid, row, col int) grid.Grid {
	next, err := g.ToggleWall(row, col)
	if err != nil {
		return g
	}
	return next
}
