package viz

import (
	"github.com/san-kum/pathviz/internal/anim"
	"github.com/san-kum/pathviz/internal/grid"
)

// Category is the visual state of one cell.
type Category int

const (
	CellNone Category = iota
	CellWall
	CellStart
	CellFinish
	CellExplored
	CellPath
)

func (c Category) String() string {
	switch c {
	case CellWall:
		return "wall"
	case CellStart:
		return "start"
	case CellFinish:
		return "finish"
	case CellExplored:
		return "explored"
	case CellPath:
		return "path"
	}
	return "none"
}

// Categorize derives a cell's category. Endpoints always win, then walls,
// then replay marks.
func Categorize(n grid.Node, mark anim.Mark) Category {
	switch {
	case n.IsStart:
		return CellStart
	case n.IsFinish:
		return CellFinish
	case n.IsWall:
		return CellWall
	case mark == anim.MarkPath:
		return CellPath
	case mark == anim.MarkExplored:
		return CellExplored
	}
	return CellNone
}

// Cells builds the row-major render state for g with the given overlay.
func Cells(g grid.Grid, marks anim.Marks) [][]Category {
	out := make([][]Category, g.Height())
	for r := range out {
		row := make([]Category, g.Width())
		for c := range row {
			n, _ := g.Node(r, c)
			row[c] = Categorize(n, marks.Get(grid.Coord{Row: r, Col: c}))
		}
		out[r] = row
	}
	return out
}
