package engine

import (
	"github.com/xkilldash9x/dashgrid/internal/config"
	"github.com/xkilldash9x/dashgrid/internal/grid"
	"github.com/xkilldash9x/dashgrid/internal/layout"
	"github.com/xkilldash9x/dashgrid/internal/solver"
)

// Viewport is the page region dashlets are laid out in. X and Y locate its top
// left corner on the page; dashlet geometry is relative to it.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// ComputeViewport derives the dashboard region from the page size: a margin on
// every side plus the header above. Sizes never go negative.
func ComputeViewport(pageWidth, pageHeight int, screen config.ScreenConfig) Viewport {
	v := Viewport{
		X:      screen.Margin,
		Y:      screen.HeaderHeight + screen.Margin,
		Width:  pageWidth - 2*screen.Margin,
		Height: pageHeight - 2*screen.Margin - screen.HeaderHeight,
	}
	if v.Width < 0 {
		v.Width = 0
	}
	if v.Height < 0 {
		v.Height = 0
	}
	return v
}

// Size returns the viewport extent as a vector.
func (v Viewport) Size() grid.Vec {
	return grid.V(v.Width, v.Height)
}

// Drag tracks an in-progress move of one dashlet.
type Drag struct {
	ID int
	// Pointer is the page position the drag started at.
	Pointer grid.Vec
	// Footprint is the rendered rectangle when the drag started.
	Footprint layout.Rect
}

// Context is the layout state the event loop works against. It is owned by
// the loop goroutine.
type Context struct {
	Page     grid.Vec
	Viewport Viewport
	Metrics  solver.Metrics
	Editing  bool
	Drag     *Drag
}

// Resize recomputes the viewport and metrics for a new page size.
func (c *Context) Resize(page grid.Vec, screen config.ScreenConfig) {
	c.Page = page
	c.Viewport = ComputeViewport(page.X, page.Y, screen)
	c.Metrics.Screen = c.Viewport.Size()
}
