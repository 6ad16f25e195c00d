package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Layout characters.
const (
	LayoutOpen   = '.'
	LayoutWall   = '#'
	LayoutStart  = 'S'
	LayoutFinish = 'F'
)

// ParseLayout reads a text map with one grid row per line. Blank lines and
// lines starting with ';' are skipped.
func ParseLayout(r io.Reader) (Grid, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return Grid{}, err
	}
	if len(lines) == 0 {
		return Grid{}, fmt.Errorf("%w: empty layout", ErrConfiguration)
	}

	width := len(lines[0])
	var starts, finishes []Coord
	var walls []Coord
	for r, line := range lines {
		if len(line) != width {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrConfiguration, r, len(line), width)
		}
		for c, ch := range line {
			switch ch {
			case LayoutOpen:
			case LayoutWall:
				walls = append(walls, Coord{Row: r, Col: c})
			case LayoutStart:
				starts = append(starts, Coord{Row: r, Col: c})
			case LayoutFinish:
				finishes = append(finishes, Coord{Row: r, Col: c})
			default:
				return Grid{}, fmt.Errorf("%w: unknown cell %q at (%d,%d)", ErrConfiguration, ch, r, c)
			}
		}
	}
	if len(starts) != 1 || len(finishes) != 1 {
		return Grid{}, fmt.Errorf("%w: layout needs exactly one %c and one %c (got %d, %d)",
			ErrConfiguration, LayoutStart, LayoutFinish, len(starts), len(finishes))
	}

	g, err := New(width, len(lines), starts[0], finishes[0])
	if err != nil {
		return Grid{}, err
	}
	for _, w := range walls {
		if g, err = g.ToggleWall(w.Row, w.Col); err != nil {
			return Grid{}, err
		}
	}
	return g, nil
}

// FormatLayout writes g in the format accepted by ParseLayout.
func FormatLayout(g Grid) string {
	var b strings.Builder
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			n, _ := g.Node(r, c)
			switch {
			case n.IsStart:
				b.WriteByte(LayoutStart)
			case n.IsFinish:
				b.WriteByte(LayoutFinish)
			case n.IsWall:
				b.WriteByte(LayoutWall)
			default:
				b.WriteByte(LayoutOpen)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
