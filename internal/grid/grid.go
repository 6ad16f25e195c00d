package grid

import "fmt"

const (
	DefaultWidth     = 50
	DefaultHeight    = 20
	DefaultStartRow  = 10
	DefaultStartCol  = 15
	DefaultFinishRow = 10
	DefaultFinishCol = 35
)

// Coord addresses a node by 0-indexed row and column.
type Coord struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Node is a single grid cell.
type Node struct {
	Row, Col int
	IsStart  bool
	IsFinish bool
	IsWall   bool
}

// Grid is an immutable row-major snapshot of nodes. Mutating operations
// return a new Grid and leave the receiver untouched; rows that were not
// modified are shared between snapshots.
type Grid struct {
	width, height int
	start, finish Coord
	rows          [][]Node
}

// New builds a grid with no walls and the given endpoints.
func New(width, height int, start, finish Coord) (Grid, error) {
	if width < 1 || height < 1 {
		return Grid{}, fmt.Errorf("%w: dimensions %dx%d", ErrConfiguration, width, height)
	}
	if start == finish {
		return Grid{}, fmt.Errorf("%w: start and finish both at %s", ErrConfiguration, start)
	}
	if !inBounds(width, height, start) {
		return Grid{}, fmt.Errorf("%w: start %s outside %dx%d", ErrConfiguration, start, width, height)
	}
	if !inBounds(width, height, finish) {
		return Grid{}, fmt.Errorf("%w: finish %s outside %dx%d", ErrConfiguration, finish, width, height)
	}

	rows := make([][]Node, height)
	for r := 0; r < height; r++ {
		row := make([]Node, width)
		for c := 0; c < width; c++ {
			row[c] = Node{
				Row:      r,
				Col:      c,
				IsStart:  r == start.Row && c == start.Col,
				IsFinish: r == finish.Row && c == finish.Col,
			}
		}
		rows[r] = row
	}
	return Grid{width: width, height: height, start: start, finish: finish, rows: rows}, nil
}

// Default returns the 50x20 grid with the standard endpoints.
func Default() Grid {
	g, err := New(DefaultWidth, DefaultHeight,
		Coord{Row: DefaultStartRow, Col: DefaultStartCol},
		Coord{Row: DefaultFinishRow, Col: DefaultFinishCol})
	if err != nil {
		panic(err)
	}
	return g
}

func (g Grid) Width() int    { return g.width }
func (g Grid) Height() int   { return g.height }
func (g Grid) Start() Coord  { return g.start }
func (g Grid) Finish() Coord { return g.finish }
func (g Grid) IsZero() bool  { return g.rows == nil }
func (g Grid) Size() int     { return g.width * g.height }

func (g Grid) InBounds(c Coord) bool {
	return inBounds(g.width, g.height, c)
}

// IsEndpoint reports whether c is the start or finish coordinate.
func (g Grid) IsEndpoint(c Coord) bool {
	return c == g.start || c == g.finish
}

// Node returns the node at (row, col). The second result is false when the
// address lies outside the grid.
func (g Grid) Node(row, col int) (Node, bool) {
	if !g.InBounds(Coord{Row: row, Col: col}) {
		return Node{}, false
	}
	return g.rows[row][col], true
}

func (g Grid) IsWall(row, col int) bool {
	n, ok := g.Node(row, col)
	return ok && n.IsWall
}

// ToggleWall flips the wall flag at (row, col) and returns the new grid.
// Start and finish nodes are rejected with ErrInvalidOperation; the returned
// grid is then the receiver itself.
func (g Grid) ToggleWall(row, col int) (Grid, error) {
	c := Coord{Row: row, Col: col}
	if !g.InBounds(c) {
		return g, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if g.IsEndpoint(c) {
		return g, fmt.Errorf("%w: cannot toggle wall on endpoint %s", ErrInvalidOperation, c)
	}

	rows := make([][]Node, len(g.rows))
	copy(rows, g.rows)
	row2 := make([]Node, len(g.rows[row]))
	copy(row2, g.rows[row])
	row2[col].IsWall = !row2[col].IsWall
	rows[row] = row2

	out := g
	out.rows = rows
	return out, nil
}

// Reset returns a freshly constructed grid with the same geometry.
func (g Grid) Reset() Grid {
	out, err := New(g.width, g.height, g.start, g.finish)
	if err != nil {
		// geometry was validated when g was built
		panic(err)
	}
	return out
}

// Walls returns the row-major wall bitmap (1 = wall, 0 = open).
func (g Grid) Walls() [][]int {
	bitmap := make([][]int, g.height)
	for r, row := range g.rows {
		bits := make([]int, g.width)
		for c, n := range row {
			if n.IsWall {
				bits[c] = 1
			}
		}
		bitmap[r] = bits
	}
	return bitmap
}

func (g Grid) WallCount() int {
	count := 0
	for _, row := range g.rows {
		for _, n := range row {
			if n.IsWall {
				count++
			}
		}
	}
	return count
}

// Equal reports whether both grids share geometry, endpoints and walls.
func (g Grid) Equal(other Grid) bool {
	if g.width != other.width || g.height != other.height ||
		g.start != other.start || g.finish != other.finish {
		return false
	}
	for r := range g.rows {
		for c := range g.rows[r] {
			if g.rows[r][c] != other.rows[r][c] {
				return false
			}
		}
	}
	return true
}

func inBounds(width, height int, c Coord) bool {
	return c.Row >= 0 && c.Row < height && c.Col >= 0 && c.Col < width
}
