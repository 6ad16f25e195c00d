package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/pathviz/internal/viz"
)

var svgFill = map[viz.Category]string{
	viz.CellNone:     "#1c1c24",
	viz.CellWall:     "#0c3547",
	viz.CellStart:    "#00c853",
	viz.CellFinish:   "#d50000",
	viz.CellExplored: "#40cee3",
	viz.CellPath:     "#fffe6a",
}

// BoardToSVG renders cell categories as a grid of squares of side scale.
func BoardToSVG(cells [][]viz.Category, scale float64) string {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}

	width := float64(len(cells[0])) * scale
	height := float64(len(cells)) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g stroke="#2a2a38" stroke-width="%.2f">
`, width, height, width, height, svgFill[viz.CellNone], scale*0.04))

	for row, line := range cells {
		for col, cat := range line {
			if cat == viz.CellNone {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" class="%s"/>
`, float64(col)*scale, float64(row)*scale, scale, scale, svgFill[cat], cat))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
