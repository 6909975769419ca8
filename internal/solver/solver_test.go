// internal/solver/solver_test.go
package solver

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/dashgrid/internal/grid"
	"github.com/xkilldash9x/dashgrid/internal/layout"
)

// -- Test Helpers --

func metrics(rasterW, rasterH int) Metrics {
	return Metrics{Screen: grid.V(rasterW*10, rasterH*10), Cell: grid.V(10, 10)}
}

func rect(l, t, r, b int) Placement {
	return Placement{Visible: true, Left: l, Top: t, Right: r, Bottom: b}
}

// bounds strips growth bookkeeping so tests can compare rectangles only.
func bounds(ps []Placement) []Placement {
	out := make([]Placement, len(ps))
	for i, p := range ps {
		out[i] = rect(p.Left, p.Top, p.Right, p.Bottom)
	}
	return out
}

// assertNoOverlap checks that no grid cell belongs to two growing-capable
// (non-frozen) visible placements.
func assertNoOverlap(t *testing.T, ps []Placement) {
	t.Helper()
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			a, b := ps[i], ps[j]
			if !a.Visible || !b.Visible || a.Frozen || b.Frozen {
				continue
			}
			overlap := a.Left < b.Right && b.Left < a.Right && a.Top < b.Bottom && b.Top < a.Bottom &&
				a.Width() > 0 && a.Height() > 0 && b.Width() > 0 && b.Height() > 0
			if overlap {
				t.Fatalf("placements %d %+v and %d %+v overlap", i, a, j, b)
			}
		}
	}
}

// -- Test Cases --

// TestSolve_CanonicalScenario is the regression fixture: a fixed 3x3 block in
// the top left and a doubly growing dashlet anchored bottom right.
func TestSolve_CanonicalScenario(t *testing.T) {
	dashlets := []grid.Dashlet{
		{X: 1, Y: 1, W: 3, H: 3},
		{X: -1, Y: -1, W: grid.Grow, H: grid.Grow},
	}

	got := Solve(dashlets, metrics(10, 10))
	require.Len(t, got, 2)

	assert.Equal(t, rect(0, 0, 3, 3), bounds(got)[0])
	assert.Equal(t, grid.V(0, 0), got[0].GrowBy)
	assert.Equal(t, grid.V(-1, -1), got[1].GrowBy)

	// Grows diagonally to (3,3); on the next pass the x step into column 2 still
	// fits below the block, the y step into row 2 does not.
	if diff := cmp.Diff(rect(0, 3, 10, 10), bounds(got)[1]); diff != "" {
		t.Errorf("growing dashlet mismatch (-want +got):\n%s", diff)
	}
	assertNoOverlap(t, got)
}

// TestSolve_CanonicalScenarioWideRaster pins the x-before-y pass order on a
// raster wider than tall: the growing dashlet reaches row 0 while its left edge
// is still at column 10, then grows left until the block stops it at column 3.
func TestSolve_CanonicalScenarioWideRaster(t *testing.T) {
	dashlets := []grid.Dashlet{
		{X: 1, Y: 1, W: 3, H: 3},
		{X: -1, Y: -1, W: grid.Grow, H: grid.Grow},
	}

	got := Solve(dashlets, metrics(20, 10))
	require.Len(t, got, 2)

	want := []Placement{rect(0, 0, 3, 3), rect(3, 0, 20, 10)}
	if diff := cmp.Diff(want, bounds(got)); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
	assertNoOverlap(t, got)
}

func TestSolve_InitialGrowingRectangle(t *testing.T) {
	// A raster where the grower has no room at all keeps its 1x1 seed.
	dashlets := []grid.Dashlet{
		{X: 1, Y: 1, W: 9, H: grid.Max},
		{X: -1, Y: -1, W: grid.Grow, H: grid.Grow},
	}
	got := Solve(dashlets, metrics(10, 10))
	assert.Equal(t, rect(0, 0, 9, 10), bounds(got)[0])
	assert.Equal(t, rect(9, 0, 10, 10), bounds(got)[1])
}

func TestSolve_MaxSizing(t *testing.T) {
	dashlets := []grid.Dashlet{{X: 1, Y: 1, W: grid.Max, H: 5}}

	got, stats := New(zaptest.NewLogger(t)).SolveWithStats(dashlets, metrics(10, 10))

	assert.Equal(t, rect(0, 0, 10, 5), bounds(got)[0])
	assert.Equal(t, grid.V(0, 0), got[0].GrowBy, "max must not take part in incremental growth")
	assert.Zero(t, stats.Expansions)
	assert.Equal(t, 1, stats.Passes)
}

func TestSolve_MaxFromFarEdge(t *testing.T) {
	dashlets := []grid.Dashlet{{X: -2, Y: -1, W: grid.Max, H: grid.Max}}
	got := Solve(dashlets, metrics(10, 6))

	// Absolute right edge is column 9; max spans back to the left edge.
	assert.Equal(t, rect(0, 0, 9, 6), bounds(got)[0])
}

func TestSolve_GrowthMonotonicityAndIdempotence(t *testing.T) {
	dashlets := []grid.Dashlet{{X: 3, Y: 2, W: grid.Grow, H: 2}}
	m := metrics(12, 8)

	first := Solve(dashlets, m)
	assert.Equal(t, rect(2, 1, 12, 3), bounds(first)[0], "grows right until the raster edge")

	for i := 0; i < 3; i++ {
		again := Solve(dashlets, m)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("solve is not idempotent (-first +again):\n%s", diff)
		}
	}
}

func TestSolve_GrowLeftAndUp(t *testing.T) {
	dashlets := []grid.Dashlet{{X: -1, Y: -1, W: grid.Grow, H: grid.Grow}}
	got := Solve(dashlets, metrics(7, 5))
	assert.Equal(t, rect(0, 0, 7, 5), bounds(got)[0])
}

func TestSolve_PriorityDeterminism(t *testing.T) {
	left := grid.Dashlet{X: 1, Y: 1, W: grid.Grow, H: 1}
	right := grid.Dashlet{X: -1, Y: 1, W: grid.Grow, H: 1}
	// An odd raster width leaves exactly one contested column (4).
	m := metrics(9, 3)

	got := Solve([]grid.Dashlet{left, right}, m)
	assert.Equal(t, rect(0, 0, 5, 1), bounds(got)[0], "earlier dashlet wins the contested cell")
	assert.Equal(t, rect(5, 0, 9, 1), bounds(got)[1])
	assertNoOverlap(t, got)

	got = Solve([]grid.Dashlet{right, left}, m)
	assert.Equal(t, rect(4, 0, 9, 1), bounds(got)[0], "reordering hands the cell to the new first dashlet")
	assert.Equal(t, rect(0, 0, 4, 1), bounds(got)[1])
	assertNoOverlap(t, got)
}

func TestSolve_CollisionFreezesLaterDashlet(t *testing.T) {
	dashlets := []grid.Dashlet{
		{X: 1, Y: 1, W: 4, H: 4},
		{X: 3, Y: 3, W: grid.Grow, H: grid.Grow},
		{X: -1, Y: -1, W: grid.Grow, H: 1},
	}

	got, stats := New(zaptest.NewLogger(t)).SolveWithStats(dashlets, metrics(10, 10))

	assert.Equal(t, 1, stats.Collisions)
	assert.True(t, got[1].Frozen)
	assert.True(t, got[1].Visible, "a colliding dashlet is frozen, not hidden")
	assert.Equal(t, grid.V(0, 0), got[1].GrowBy)
	assert.Equal(t, rect(2, 2, 3, 3), bounds(got)[1], "frozen dashlet keeps its computed rectangle")

	assert.False(t, got[2].Frozen)
	assert.Equal(t, rect(0, 9, 10, 10), bounds(got)[2])
}

func TestSolve_NoDashlets(t *testing.T) {
	got, stats := New(nil).SolveWithStats(nil, metrics(10, 10))
	assert.Empty(t, got)
	assert.Equal(t, 1, stats.Passes)
}

func TestSolve_RandomDeclarationsNeverOverlap(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	sizes := []grid.Size{grid.Grow, grid.Max, 1, 2, 3, 5, 8}

	for round := 0; round < 200; round++ {
		n := 1 + rng.IntN(8)
		dashlets := make([]grid.Dashlet, n)
		for i := range dashlets {
			dashlets[i] = grid.Dashlet{
				X: nonZero(rng, 12),
				Y: nonZero(rng, 12),
				W: sizes[rng.IntN(len(sizes))],
				H: sizes[rng.IntN(len(sizes))],
			}
		}
		m := metrics(4+rng.IntN(20), 4+rng.IntN(20))

		got := Solve(dashlets, m)
		require.Len(t, got, n)
		assertNoOverlap(t, got)
		assert.Equal(t, got, Solve(dashlets, m), "solve must be deterministic")
	}
}

func nonZero(rng *rand.Rand, limit int) int {
	v := 1 + rng.IntN(limit)
	if rng.IntN(2) == 0 {
		return -v
	}
	return v
}

func TestPlacement_Pixels(t *testing.T) {
	p := rect(2, 1, 5, 4)
	assert.Equal(t, layout.Rect{X: 20, Y: 10, Width: 30, Height: 30}, p.Pixels(grid.V(10, 10)))
	assert.Equal(t, layout.Rect{X: 16, Y: 12, Width: 24, Height: 36}, p.Pixels(grid.V(8, 12)))
}

func TestPlacement_PixelsClampDegenerateRaster(t *testing.T) {
	// The screen is smaller than a single cell: the raster is empty.
	m := Metrics{Screen: grid.V(5, 5), Cell: grid.V(10, 10)}
	require.Equal(t, grid.V(0, 0), m.Raster())

	got := Solve([]grid.Dashlet{{X: 1, Y: 1, W: grid.Max, H: grid.Max}}, m)
	px := got[0].Pixels(m.Cell)
	assert.Equal(t, 10, px.Width, "width never drops below one cell")
	assert.Equal(t, 10, px.Height, "height never drops below one cell")
}

func TestGeometries(t *testing.T) {
	ps := []Placement{rect(0, 0, 2, 2), {Visible: false, Left: 3, Top: 3, Right: 4, Bottom: 4}}
	gs := Geometries(ps, grid.V(10, 10))
	require.Len(t, gs, 2)
	assert.True(t, gs[0].Visible)
	assert.Equal(t, layout.Rect{Width: 20, Height: 20}, gs[0].Rect)
	assert.False(t, gs[1].Visible)
}

func TestPlacement_Contains(t *testing.T) {
	p := rect(1, 1, 3, 3)
	assert.True(t, p.Contains(1, 1))
	assert.True(t, p.Contains(2, 2))
	assert.False(t, p.Contains(3, 1), "right edge is exclusive")
	assert.False(t, p.Contains(0, 1))
}
