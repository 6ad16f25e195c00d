package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellWidth is the number of terminal columns per grid cell.
const cellWidth = 2

var plainGlyphs = map[Category]byte{
	CellNone:     '.',
	CellWall:     '#',
	CellStart:    'S',
	CellFinish:   'F',
	CellExplored: 'o',
	CellPath:     '*',
}

// Palette maps each category to a rendered cell.
type Palette map[Category]string

func NewPalette(t Theme) Palette {
	block := func(bg lipgloss.Color, glyph string) string {
		return lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(glyph)
	}
	return Palette{
		CellNone:     block(t.Empty, "  "),
		CellWall:     block(t.Wall, "  "),
		CellStart:    block(t.Start, "▶ "),
		CellFinish:   block(t.Finish, "◎ "),
		CellExplored: block(t.Explored, "  "),
		CellPath:     block(t.Path, "  "),
	}
}

// RenderBoard draws cells with the palette, one terminal line per row.
func RenderBoard(cells [][]Category, p Palette) string {
	var b strings.Builder
	for r, row := range cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteString(p[c])
		}
	}
	return b.String()
}

// PlainBoard draws cells with one ASCII character each.
func PlainBoard(cells [][]Category) string {
	var b strings.Builder
	for _, row := range cells {
		for _, c := range row {
			b.WriteByte(plainGlyphs[c])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
