package render

import (
	"strings"

	"github.com/xkilldash9x/dashgrid/internal/grid"
	"github.com/xkilldash9x/dashgrid/internal/solver"
)

const glyphs = "0123456789abcdefghijklmnopqrstuvwxyz"

// Free and Conflict mark unclaimed cells and cells claimed by more than one
// visible dashlet. Dashlets past the last glyph render as Overflow.
const (
	Free     = '.'
	Conflict = '#'
	Overflow = '*'
)

// Map draws the raster one character per cell, one line per row. Each cell
// shows the index of the visible dashlet covering it in base 36.
func Map(placements []solver.Placement, raster grid.Vec) string {
	if raster.X <= 0 || raster.Y <= 0 {
		return ""
	}

	rows := make([][]byte, raster.Y)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(string(Free), raster.X))
	}

	for id, p := range placements {
		if !p.Visible {
			continue
		}
		for y := max(p.Top, 0); y < min(p.Bottom, raster.Y); y++ {
			for x := max(p.Left, 0); x < min(p.Right, raster.X); x++ {
				if rows[y][x] == Free {
					rows[y][x] = glyph(id)
				} else {
					rows[y][x] = Conflict
				}
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func glyph(id int) byte {
	if id < len(glyphs) {
		return glyphs[id]
	}
	return Overflow
}
