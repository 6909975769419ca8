// internal/grid/dashlet.go
package grid

import (
	"errors"
	"fmt"
)

// ErrZeroAnchor is returned when a declared coordinate is zero, which leaves
// the anchor edge undefined.
var ErrZeroAnchor = errors.New("anchor coordinate must not be zero")

// Dashlet is the declarative placement of one panel. Coordinates are 1-based
// and anchor-relative: positive values count from the left/top edge, negative
// values from the right/bottom edge.
type Dashlet struct {
	X int  `mapstructure:"x" yaml:"x"`
	Y int  `mapstructure:"y" yaml:"y"`
	W Size `mapstructure:"w" yaml:"w"`
	H Size `mapstructure:"h" yaml:"h"`
}

// Position returns the relative position vector.
func (d Dashlet) Position() Vec {
	return Vec{X: d.X, Y: d.Y}
}

// SizeVec returns the declared size vector (components are Size values).
func (d Dashlet) SizeVec() Vec {
	return Vec{X: int(d.W), Y: int(d.H)}
}

// Anchor returns the corner the declaration is relative to.
func (d Dashlet) Anchor() Corner {
	return AnchorOf(d.X, d.Y)
}

// SizeOn returns the declared size on one axis.
func (d Dashlet) SizeOn(axis Axis) Size {
	if axis == Y {
		return d.H
	}
	return d.W
}

// SetSize replaces the declared size on one axis.
func (d *Dashlet) SetSize(axis Axis, s Size) {
	if axis == Y {
		d.H = s
	} else {
		d.W = s
	}
}

// Validate reports malformed declarations. The solver assumes validated input;
// configuration loading is where this gets called.
func (d Dashlet) Validate() error {
	if d.X == 0 || d.Y == 0 {
		return fmt.Errorf("%w: position %d/%d", ErrZeroAnchor, d.X, d.Y)
	}
	if !d.W.Valid() {
		return fmt.Errorf("%w: w=%d", ErrInvalidSize, int(d.W))
	}
	if !d.H.Valid() {
		return fmt.Errorf("%w: h=%d", ErrInvalidSize, int(d.H))
	}
	return nil
}

func (d Dashlet) String() string {
	return fmt.Sprintf("pos=%d/%d size=%s/%s", d.X, d.Y, d.W, d.H)
}
