// internal/layout/geometry.go
package layout

import "fmt"

// -- Pixel geometry --

// Rect is a pixel rectangle: position of the top left corner plus size.
type Rect struct {
	X, Y, Width, Height int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Shrink returns the rectangle with the edges removed from each side. The
// resulting size is clamped to zero, never negative.
func (r Rect) Shrink(e Edges) Rect {
	out := Rect{
		X:      r.X + e.Left,
		Y:      r.Y + e.Top,
		Width:  r.Width - e.Left - e.Right,
		Height: r.Height - e.Top - e.Bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Overlaps reports whether two rectangles share any pixel.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Edges holds a four-sided inset in pixels.
type Edges struct {
	Top    int `mapstructure:"top" yaml:"top"`
	Right  int `mapstructure:"right" yaml:"right"`
	Bottom int `mapstructure:"bottom" yaml:"bottom"`
	Left   int `mapstructure:"left" yaml:"left"`
}

// Horizontal returns Left + Right.
func (e Edges) Horizontal() int { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e Edges) Vertical() int { return e.Top + e.Bottom }

// Geometry is the pixel outcome of a solve for one dashlet.
type Geometry struct {
	Visible bool
	Rect    Rect
}
