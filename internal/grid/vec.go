// internal/grid/vec.go
package grid

import (
	"fmt"
)

// Axis selects one component of a Vec.
type Axis int

const (
	// X is the horizontal axis.
	X Axis = iota
	// Y is the vertical axis.
	Y
)

// String returns "x" or "y".
func (a Axis) String() string {
	if a == Y {
		return "y"
	}
	return "x"
}

// ParseAxis accepts "x" or "y" (also "w"/"h", "width"/"height").
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "w", "width":
		return X, nil
	case "y", "h", "height":
		return Y, nil
	}
	return X, fmt.Errorf("unknown axis %q (want x or y)", s)
}

// Vec is a 2D integer vector. Depending on context it holds grid units or pixels.
type Vec struct {
	X, Y int
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y int) Vec {
	return Vec{X: x, Y: y}
}

// Divide performs component-wise integer division, truncating toward zero.
// A zero divisor component yields zero for that component.
func (v Vec) Divide(o Vec) Vec {
	return Vec{X: div(v.X, o.X), Y: div(v.Y, o.Y)}
}

func div(a, b int) int {
	if b == 0 {
		return 0
	}
	return a / b
}

// Add returns the component-wise sum.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul returns the component-wise product.
func (v Vec) Mul(o Vec) Vec {
	return Vec{X: v.X * o.X, Y: v.Y * o.Y}
}

// Abs returns the vector with both components made non-negative.
func (v Vec) Abs() Vec {
	return Vec{X: abs(v.X), Y: abs(v.Y)}
}

// Get is an axis-agnostic accessor.
func (v Vec) Get(axis Axis) int {
	if axis == Y {
		return v.Y
	}
	return v.X
}

// With returns a copy of v with the given axis replaced.
func (v Vec) With(axis Axis, n int) Vec {
	if axis == Y {
		v.Y = n
	} else {
		v.X = n
	}
	return v
}

// MakeAbsolute converts an anchor-relative 1-based coordinate into a 0-based
// absolute grid coordinate. Negative components count from the far edge of size.
func (v Vec) MakeAbsolute(size Vec) Vec {
	return Vec{X: absolute(v.X, size.X), Y: absolute(v.Y, size.Y)}
}

func absolute(c, size int) int {
	if c < 0 {
		return c + size + 1
	}
	return c - 1
}

// InitialSize computes the starting footprint of a dashlet whose declared size
// is v (components are Size values). Max consumes everything from the anchor to
// the opposite raster edge, Grow starts at one unit.
func (v Vec) InitialSize(pos, raster Vec) Vec {
	return Vec{
		X: initialAxis(Size(v.X), pos.X, raster.X),
		Y: initialAxis(Size(v.Y), pos.Y, raster.Y),
	}
}

func initialAxis(s Size, pos, raster int) int {
	switch s {
	case Max:
		return raster - abs(pos) + 1
	case Grow:
		return 1
	}
	return int(s)
}

// ComputeGrowBy returns the growth direction per axis for an anchor-relative
// position v and declared size. 0 means the axis does not grow, 1 grows
// right/down, -1 grows left/up.
func (v Vec) ComputeGrowBy(size Vec) Vec {
	return Vec{X: growAxis(v.X, Size(size.X)), Y: growAxis(v.Y, Size(size.Y))}
}

func growAxis(pos int, s Size) int {
	if s != Grow {
		return 0
	}
	if pos < 0 {
		return -1
	}
	return 1
}

// String renders the vector as "x/y".
func (v Vec) String() string {
	return fmt.Sprintf("%d/%d", v.X, v.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
