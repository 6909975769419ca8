// internal/grid/corner.go
package grid

import (
	"fmt"
	"strings"
)

// Corner is the screen corner a dashlet's coordinates are relative to.
// The numbering follows the edit controls: clockwise from the top left.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

var cornerNames = [...]string{"topleft", "topright", "bottomright", "bottomleft"}

// Corners lists all corners in control order.
var Corners = []Corner{TopLeft, TopRight, BottomRight, BottomLeft}

func (c Corner) String() string {
	if c < TopLeft || c > BottomLeft {
		return fmt.Sprintf("corner(%d)", int(c))
	}
	return cornerNames[c]
}

// ParseCorner accepts the names printed by String, their dashed/short forms
// ("top-left", "tl") or the control index 0-3.
func ParseCorner(s string) (Corner, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	switch norm {
	case "topleft", "tl", "0":
		return TopLeft, nil
	case "topright", "tr", "1":
		return TopRight, nil
	case "bottomright", "br", "2":
		return BottomRight, nil
	case "bottomleft", "bl", "3":
		return BottomLeft, nil
	}
	return TopLeft, fmt.Errorf("unknown corner %q", s)
}

// AnchorOf infers the anchor corner from the sign pattern of x and y.
func AnchorOf(x, y int) Corner {
	switch {
	case x < 0 && y >= 0:
		return TopRight
	case x < 0 && y < 0:
		return BottomRight
	case x >= 0 && y < 0:
		return BottomLeft
	}
	return TopLeft
}

// FarX reports whether the corner is anchored to the right edge.
func (c Corner) FarX() bool {
	return c == TopRight || c == BottomRight
}

// FarY reports whether the corner is anchored to the bottom edge.
func (c Corner) FarY() bool {
	return c == BottomRight || c == BottomLeft
}
