// internal/editor/editor.go
package editor

import (
	"strconv"

	"github.com/xkilldash9x/dashgrid/internal/grid"
	"github.com/xkilldash9x/dashgrid/internal/layout"
)

// Footprint converts a rendered pixel rectangle into its top left grid cell and
// its size in grid units (both truncated).
func Footprint(px layout.Rect, cell grid.Vec) (topLeft, size grid.Vec) {
	topLeft = grid.V(px.X, px.Y).Divide(cell)
	size = grid.V(px.Width, px.Height).Divide(cell)
	return topLeft, size
}

// Retarget re-expresses the dashlet's position relative to another corner so
// that the next solve reproduces the rendered footprint. footprint is the
// dashlet's current pixel rectangle; only its size is used, the position is
// derived from the declaration. It returns false when the dashlet is already
// anchored at the requested corner. A Max axis keeps its footprint only when
// its anchor is flush with the raster edge.
func Retarget(d *grid.Dashlet, to grid.Corner, footprint layout.Rect, cell, raster grid.Vec) bool {
	if d.Anchor() == to {
		return false
	}
	_, size := Footprint(footprint, cell)
	tl := topLeft(*d, size, raster)

	pos := relativeTo(to, tl, size, raster)
	d.X, d.Y = pos.X, pos.Y
	return true
}

// topLeft reverses MakeAbsolute using the current anchor: for a far edge
// anchor the absolute coordinate marks the exclusive high edge.
func topLeft(d grid.Dashlet, size, raster grid.Vec) grid.Vec {
	rel := d.Position()
	abs := rel.MakeAbsolute(raster)
	tl := abs
	if rel.X <= 0 {
		tl.X = abs.X - size.X
	}
	if rel.Y <= 0 {
		tl.Y = abs.Y - size.Y
	}
	return tl
}

// relativeTo expresses a top left cell and size as 1-based coordinates relative
// to corner c. Far edge coordinates never reach zero, so a footprint hanging
// over the raster edge is pulled back flush with it.
func relativeTo(c grid.Corner, tl, size, raster grid.Vec) grid.Vec {
	pos := grid.V(tl.X+1, tl.Y+1)
	if c.FarX() {
		pos.X = (tl.X + size.X) - (raster.X + 2) + 1
		if pos.X > -1 {
			pos.X = -1
		}
	} else if pos.X < 1 {
		pos.X = 1
	}
	if c.FarY() {
		pos.Y = (tl.Y + size.Y) - (raster.Y + 2) + 1
		if pos.Y > -1 {
			pos.Y = -1
		}
	} else if pos.Y < 1 {
		pos.Y = 1
	}
	return pos
}

// CycleSizeMode advances the sizing mode of one axis: fixed -> Grow -> Max ->
// fixed. Leaving Max needs the size the dashlet currently renders at, in grid
// units, because Max has no stored extent.
func CycleSizeMode(d *grid.Dashlet, axis grid.Axis, rendered int) {
	switch s := d.SizeOn(axis); {
	case s.Fixed():
		d.SetSize(axis, grid.Grow)
	case s == grid.Grow:
		d.SetSize(axis, grid.Max)
	default:
		if rendered < 1 {
			rendered = 1
		}
		d.SetSize(axis, grid.Size(rendered))
	}
}

// MoveTo writes a dragged position into the declaration. px is the pixel top
// left corner the pointer dragged the dashlet to, footprint the rendered
// rectangle. The position is snapped to the grid and kept relative to the
// dashlet's current anchor. It returns false when the snapped position did not
// change.
func MoveTo(d *grid.Dashlet, px grid.Vec, footprint layout.Rect, cell, raster grid.Vec) bool {
	if px.X < 0 {
		px.X = 0
	}
	if px.Y < 0 {
		px.Y = 0
	}
	tl := px.Divide(cell)
	_, size := Footprint(footprint, cell)

	pos := relativeTo(d.Anchor(), tl, size, raster)
	if pos == d.Position() {
		return false
	}
	d.X, d.Y = pos.X, pos.Y
	return true
}

// -- Edit controls --

// Sizer describes the size-mode toggle of one axis.
type Sizer struct {
	Axis  grid.Axis
	Mode  string
	Label string
}

// Controls is the state the edit surface renders for one dashlet.
type Controls struct {
	Anchor grid.Corner
	Sizers [2]Sizer
}

// Describe derives the edit control state from a declaration.
func Describe(d grid.Dashlet) Controls {
	c := Controls{Anchor: d.Anchor()}
	for i, axis := range []grid.Axis{grid.X, grid.Y} {
		s := d.SizeOn(axis)
		sz := Sizer{Axis: axis, Mode: s.Mode()}
		switch s {
		case grid.Grow:
			sz.Label = "GROW"
		case grid.Max:
			sz.Label = "MAX"
		default:
			sz.Label = strconv.Itoa(int(s))
		}
		c.Sizers[i] = sz
	}
	return c
}
