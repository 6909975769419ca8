// internal/solver/occupancy.go
package solver

import "github.com/xkilldash9x/dashgrid/internal/grid"

// occupancy is the set of claimed grid cells for a single solve pass.
type occupancy map[grid.Vec]struct{}

func (o occupancy) used(x, y int) bool {
	_, ok := o[grid.Vec{X: x, Y: y}]
	return ok
}

func (o occupancy) mark(x, y int) {
	o[grid.Vec{X: x, Y: y}] = struct{}{}
}

// claim marks every cell of the rectangle in column-major order and stops at
// the first cell that is already taken. Cells marked before the collision stay
// marked. It reports whether the whole rectangle was claimed.
func (o occupancy) claim(left, top, right, bottom int) bool {
	for x := left; x < right; x++ {
		for y := top; y < bottom; y++ {
			if o.used(x, y) {
				return false
			}
			o.mark(x, y)
		}
	}
	return true
}

// tryAllocate claims the rectangle only if every cell in it is free.
func (o occupancy) tryAllocate(left, top, right, bottom int) bool {
	for x := left; x < right; x++ {
		for y := top; y < bottom; y++ {
			if o.used(x, y) {
				return false
			}
		}
	}
	for x := left; x < right; x++ {
		for y := top; y < bottom; y++ {
			o.mark(x, y)
		}
	}
	return true
}
