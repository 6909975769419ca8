// internal/solver/solver.go
package solver

import (
	"go.uber.org/zap"

	"github.com/xkilldash9x/dashgrid/internal/grid"
	"github.com/xkilldash9x/dashgrid/internal/layout"
)

// -- Inputs --

// Metrics describes the layout region in pixels and the size of one grid cell.
type Metrics struct {
	Screen grid.Vec
	Cell   grid.Vec
}

// Raster returns the number of whole grid cells that fit the screen.
func (m Metrics) Raster() grid.Vec {
	return m.Screen.Divide(m.Cell)
}

// -- Outputs --

// Placement is the solved grid rectangle of one dashlet. Right and Bottom are
// exclusive.
type Placement struct {
	Visible bool
	Left    int
	Top     int
	Right   int
	Bottom  int
	// GrowBy is the direction each axis may still expand, components in {-1, 0, 1}.
	GrowBy grid.Vec
	// Frozen marks a dashlet whose initial rectangle collided with an earlier
	// one. It keeps its rectangle but never grows.
	Frozen bool
}

// Width returns the width in grid units.
func (p Placement) Width() int { return p.Right - p.Left }

// Height returns the height in grid units.
func (p Placement) Height() int { return p.Bottom - p.Top }

// Contains reports whether the grid cell lies inside the rectangle.
func (p Placement) Contains(x, y int) bool {
	return x >= p.Left && x < p.Right && y >= p.Top && y < p.Bottom
}

// Pixels converts the grid rectangle to pixels. The size never drops below one
// cell, which keeps presentation sane when the screen is smaller than a cell.
func (p Placement) Pixels(cell grid.Vec) layout.Rect {
	r := layout.Rect{
		X:      p.Left * cell.X,
		Y:      p.Top * cell.Y,
		Width:  p.Width() * cell.X,
		Height: p.Height() * cell.Y,
	}
	if r.Width < cell.X {
		r.Width = cell.X
	}
	if r.Height < cell.Y {
		r.Height = cell.Y
	}
	return r
}

// Geometries converts placements into the form the layout applier consumes.
func Geometries(placements []Placement, cell grid.Vec) []layout.Geometry {
	out := make([]layout.Geometry, len(placements))
	for i, p := range placements {
		out[i] = layout.Geometry{Visible: p.Visible, Rect: p.Pixels(cell)}
	}
	return out
}

// Stats summarises one solve.
type Stats struct {
	Raster     grid.Vec
	Passes     int
	Expansions int
	Collisions int
}

// -- Solver --

// Solver computes dashlet placements. The zero value is not usable; use New.
type Solver struct {
	logger *zap.Logger
}

// New creates a solver that reports degraded placements through logger.
func New(logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{logger: logger.Named("solver")}
}

// Solve places the dashlets without logging.
func Solve(dashlets []grid.Dashlet, m Metrics) []Placement {
	placements, _ := New(nil).SolveWithStats(dashlets, m)
	return placements
}

// Solve computes one placement per dashlet, in declaration order.
func (s *Solver) Solve(dashlets []grid.Dashlet, m Metrics) []Placement {
	placements, _ := s.SolveWithStats(dashlets, m)
	return placements
}

// SolveWithStats is Solve plus a summary of the work done.
//
// Dashlets are first placed at their declared positions in declaration order.
// A dashlet whose rectangle hits an already claimed cell is frozen in place.
// Then every growing dashlet is widened by one row or column per pass,
// x before y, until a full pass changes nothing.
func (s *Solver) SolveWithStats(dashlets []grid.Dashlet, m Metrics) ([]Placement, Stats) {
	raster := m.Raster()
	used := make(occupancy)
	stats := Stats{Raster: raster}

	placements := make([]Placement, 0, len(dashlets))
	for i, d := range dashlets {
		p := initialPlacement(d, raster)
		if !used.claim(p.Left, p.Top, p.Right, p.Bottom) {
			p.GrowBy = grid.Vec{}
			p.Frozen = true
			stats.Collisions++
			s.logger.Warn("Dashlet collides with an earlier dashlet, placing it without growth",
				zap.Int("dashlet", i),
				zap.Stringer("declaration", d),
				zap.Stringer("raster", raster),
			)
		}
		placements = append(placements, p)
	}

	for expanded := true; expanded; {
		expanded = false
		stats.Passes++
		for i := range placements {
			n := expand(&placements[i], used, raster)
			if n > 0 {
				expanded = true
				stats.Expansions += n
			}
		}
	}

	s.logger.Debug("Layout solved",
		zap.Int("dashlets", len(dashlets)),
		zap.Stringer("raster", raster),
		zap.Int("passes", stats.Passes),
		zap.Int("expansions", stats.Expansions),
	)
	return placements, stats
}

// initialPlacement computes the rectangle a dashlet occupies before growth.
// The sign of the relative coordinate decides whether the absolute coordinate
// is the low or the high edge.
func initialPlacement(d grid.Dashlet, raster grid.Vec) Placement {
	rel := d.Position()
	abs := rel.MakeAbsolute(raster)
	size := d.SizeVec()
	used := size.InitialSize(rel, raster)

	p := Placement{Visible: true, GrowBy: rel.ComputeGrowBy(size)}
	if rel.X > 0 {
		p.Left = abs.X
		p.Right = p.Left + used.X
	} else {
		p.Right = abs.X
		p.Left = p.Right - used.X
	}
	if rel.Y > 0 {
		p.Top = abs.Y
		p.Bottom = p.Top + used.Y
	} else {
		p.Bottom = abs.Y
		p.Top = p.Bottom - used.Y
	}
	return p
}

// expand grows p by at most one unit per axis and returns how many axes grew.
func expand(p *Placement, used occupancy, raster grid.Vec) int {
	if !p.Visible {
		return 0
	}
	n := 0

	switch {
	case p.GrowBy.X > 0 && p.Right < raster.X && used.tryAllocate(p.Right, p.Top, p.Right+1, p.Bottom):
		p.Right++
		n++
	case p.GrowBy.X < 0 && p.Left > 0 && used.tryAllocate(p.Left-1, p.Top, p.Left, p.Bottom):
		p.Left--
		n++
	}

	switch {
	case p.GrowBy.Y > 0 && p.Bottom < raster.Y && used.tryAllocate(p.Left, p.Bottom, p.Right, p.Bottom+1):
		p.Bottom++
		n++
	case p.GrowBy.Y < 0 && p.Top > 0 && used.tryAllocate(p.Left, p.Top-1, p.Right, p.Top):
		p.Top--
		n++
	}
	return n
}
