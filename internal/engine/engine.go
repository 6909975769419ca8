package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/xkilldash9x/dashgrid/internal/config"
	"github.com/xkilldash9x/dashgrid/internal/editor"
	"github.com/xkilldash9x/dashgrid/internal/grid"
	"github.com/xkilldash9x/dashgrid/internal/layout"
	"github.com/xkilldash9x/dashgrid/internal/solver"
)

// DefaultQueueSize is used when the configured queue size is not positive.
const DefaultQueueSize = 256

var (
	ErrEngineRunning = errors.New("engine is already running")
	ErrNotRunning    = errors.New("engine is not running")
	ErrQueueFull     = errors.New("engine event queue is full")
)

// -- Interfaces for Dependency Inversion --

// Applier pushes solved geometry to the presentation layer.
type Applier interface {
	Apply(ctx context.Context, geometries []layout.Geometry)
}

// Snapshot is the published result of the latest solve. Its slices are never
// mutated after publication.
type Snapshot struct {
	Sequence   uint64
	Cause      Kind
	Dashlets   []grid.Dashlet
	Placements []solver.Placement
	Geometries []layout.Geometry
	Metrics    solver.Metrics
	Viewport   Viewport
	Editing    bool
	// Dragging is the id of the dashlet being dragged, or -1.
	Dragging int
	Stats    solver.Stats
}

// Engine serialises every layout mutation and solve on a single goroutine.
// Events come in through Submit or Do; the declarations are owned by the loop.
type Engine struct {
	cfg     config.Interface
	logger  *zap.Logger
	solver  *solver.Solver
	applier Applier
	events  chan Event

	// Owned by the loop goroutine.
	lctx       Context
	dashlets   []grid.Dashlet
	placements []solver.Placement
	seq        uint64

	// resizePending is the busy flag: set while a resize is queued or being
	// solved. page always holds the newest page size, dropped or not. pageGen
	// counts page updates, solvedGen is the newest one a solve has used and
	// solved is closed and replaced whenever solvedGen moves.
	resizePending atomic.Bool
	pageMu        sync.Mutex
	page          grid.Vec
	pageGen       uint64
	solvedGen     uint64
	solved        chan struct{}

	snapMu   sync.RWMutex
	snapshot Snapshot
	onLayout func(Snapshot)

	// stateLock protects the running state of the engine.
	stateLock sync.Mutex
	isRunning bool
	quit      chan struct{}
	stopped   chan struct{}
	wg        sync.WaitGroup
}

// New creates an engine over a copy of the declarations. The initial page size
// comes from the screen configuration.
func New(cfg config.Interface, applier Applier, dashlets []grid.Dashlet, logger *zap.Logger) (*Engine, error) {
	if cfg == nil {
		return nil, errors.New("engine requires a configuration")
	}
	if applier == nil {
		return nil, errors.New("engine requires an applier")
	}
	cell := cfg.Grid().Cell()
	if cell.X <= 0 || cell.Y <= 0 {
		return nil, fmt.Errorf("invalid cell size %s", cell)
	}
	for i, d := range dashlets {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("dashlet %d: %w", i, err)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	queue := cfg.Engine().QueueSize
	if queue <= 0 {
		queue = DefaultQueueSize
	}
	screen := cfg.Screen()

	e := &Engine{
		cfg:      cfg,
		logger:   logger.Named("engine"),
		solver:   solver.New(logger),
		applier:  applier,
		events:   make(chan Event, queue),
		dashlets: append([]grid.Dashlet(nil), dashlets...),
		page:     grid.V(screen.Width, screen.Height),
		solved:   make(chan struct{}),
	}
	e.lctx.Metrics.Cell = cell
	e.snapshot.Dragging = -1
	return e, nil
}

// OnLayout registers a callback invoked on the loop goroutine after every
// solve. It must not block.
func (e *Engine) OnLayout(fn func(Snapshot)) {
	e.snapMu.Lock()
	defer e.snapMu.Unlock()
	e.onLayout = fn
}

// Snapshot returns the result of the latest solve.
func (e *Engine) Snapshot() Snapshot {
	e.snapMu.RLock()
	defer e.snapMu.RUnlock()
	return e.snapshot
}

// Start launches the layout loop and performs the initial solve on it.
func (e *Engine) Start(ctx context.Context) error {
	e.stateLock.Lock()
	defer e.stateLock.Unlock()
	if e.isRunning {
		e.logger.Warn("Engine.Start called, but engine is already running.")
		return ErrEngineRunning
	}
	e.isRunning = true
	e.quit = make(chan struct{})
	e.stopped = make(chan struct{})

	// The initial layout counts as a pending resize.
	e.resizePending.Store(true)

	e.logger.Info("Starting layout engine", zap.Int("dashlets", len(e.dashlets)), zap.Int("queue_size", cap(e.events)))
	e.wg.Add(1)
	go e.run(ctx, e.quit, e.stopped)
	return nil
}

// Stop shuts the loop down and waits for it to exit. Events still queued are
// discarded.
func (e *Engine) Stop() {
	e.stateLock.Lock()
	if e.isRunning {
		close(e.quit)
		e.isRunning = false
	}
	e.stateLock.Unlock()

	e.wg.Wait()
	e.logger.Info("Layout engine stopped.")
}

// Submit queues an event without waiting for it. A resize submitted while
// another resize is pending is dropped, but its page size is still the one the
// pending solve uses.
func (e *Engine) Submit(ev Event) error {
	_, _, err := e.submit(ev)
	return err
}

// Do queues an event and waits until the loop has processed it. A dropped
// resize waits for the pending resize solve that picks up its page size.
func (e *Engine) Do(ctx context.Context, ev Event) error {
	ev.done = make(chan struct{})
	stopped, wait, err := e.submit(ev)
	if err != nil {
		return err
	}
	if wait > 0 {
		return e.waitSolved(ctx, wait, stopped)
	}

	select {
	case <-ev.done:
		return nil
	case <-stopped:
		select {
		case <-ev.done:
			return nil
		default:
			return ErrNotRunning
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// submit queues ev. For a dropped resize it returns the page generation the
// pending solve has to reach instead of queueing.
func (e *Engine) submit(ev Event) (<-chan struct{}, uint64, error) {
	e.stateLock.Lock()
	running, stopped := e.isRunning, e.stopped
	e.stateLock.Unlock()
	if !running {
		return nil, 0, ErrNotRunning
	}

	if ev.Kind == KindResize {
		gen := e.setPage(ev.Point)
		if !e.resizePending.CompareAndSwap(false, true) {
			e.logger.Debug("Layout busy, resize dropped", zap.String("event_id", ev.ID.String()), zap.Stringer("page", ev.Point))
			return stopped, gen, nil
		}
	}

	select {
	case e.events <- ev:
		return stopped, 0, nil
	default:
		if ev.Kind == KindResize {
			e.resizePending.Store(false)
		}
		return nil, 0, ErrQueueFull
	}
}

// waitSolved blocks until a solve has used page generation gen.
func (e *Engine) waitSolved(ctx context.Context, gen uint64, stopped <-chan struct{}) error {
	for {
		done, ch := e.solvedThrough(gen)
		if done {
			return nil
		}
		select {
		case <-ch:
		case <-stopped:
			if done, _ := e.solvedThrough(gen); done {
				return nil
			}
			return ErrNotRunning
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// -- Handler --

var _ Handler = (*Engine)(nil)

// OnAnchor queues a re-anchor of dashlet id.
func (e *Engine) OnAnchor(id int, corner grid.Corner) {
	e.dispatch(SetAnchor(id, corner))
}

// OnSizer queues a size mode change of dashlet id.
func (e *Engine) OnSizer(id int, axis grid.Axis) {
	e.dispatch(CycleSize(id, axis))
}

func (e *Engine) dispatch(ev Event) {
	if err := e.Submit(ev); err != nil {
		e.logger.Warn("Dropping edit control event", zap.Stringer("kind", ev.Kind), zap.Int("dashlet", ev.Dashlet), zap.Error(err))
	}
}

// -- Loop --

func (e *Engine) run(ctx context.Context, quit, stopped chan struct{}) {
	defer e.wg.Done()
	defer close(stopped)
	defer func() {
		e.stateLock.Lock()
		if e.quit == quit {
			e.isRunning = false
		}
		e.stateLock.Unlock()
	}()

	e.handleResize(ctx, newEvent(KindResize))

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Context cancelled, layout loop shutting down.", zap.Error(ctx.Err()))
			return
		case <-quit:
			return
		case ev := <-e.events:
			e.process(ctx, ev)
			if ev.done != nil {
				close(ev.done)
			}
		}
	}
}

func (e *Engine) process(ctx context.Context, ev Event) {
	logger := e.logger.With(zap.String("event_id", ev.ID.String()), zap.Stringer("kind", ev.Kind))

	switch ev.Kind {
	case KindResize:
		e.handleResize(ctx, ev)
	case KindRerender:
		e.relayout(ctx, ev)
	case KindToggleEdit:
		e.lctx.Editing = ev.Editing
		if !ev.Editing {
			e.lctx.Drag = nil
		}
		logger.Debug("Edit mode changed", zap.Bool("editing", ev.Editing))
		e.relayout(ctx, ev)
	case KindAnchor, KindSizer, KindDragStart:
		if !e.lctx.Editing {
			logger.Debug("Ignoring edit event outside edit mode")
			return
		}
		if ev.Dashlet < 0 || ev.Dashlet >= len(e.dashlets) {
			logger.Warn("Edit event for unknown dashlet", zap.Int("dashlet", ev.Dashlet))
			return
		}
		e.edit(ctx, ev, logger)
	case KindDragMove, KindDragEnd:
		e.drag(ctx, ev, logger)
	default:
		logger.Warn("Unknown event kind")
	}
}

// handleResize solves for the newest page size. If the page changed while the
// solve ran and no other resize claimed the busy flag, it solves again so the
// final layout always matches the last reported viewport.
func (e *Engine) handleResize(ctx context.Context, ev Event) {
	for {
		page, gen := e.latestPage()
		e.lctx.Resize(page, e.cfg.Screen())
		e.relayout(ctx, ev)
		e.markSolved(gen)
		e.resizePending.Store(false)

		latest, latestGen := e.latestPage()
		if latestGen == gen || !e.resizePending.CompareAndSwap(false, true) {
			return
		}
		e.logger.Debug("Page changed during layout, solving again", zap.Stringer("page", latest))
	}
}

func (e *Engine) edit(ctx context.Context, ev Event, logger *zap.Logger) {
	d := &e.dashlets[ev.Dashlet]
	footprint := e.footprint(ev.Dashlet)
	cell := e.lctx.Metrics.Cell
	raster := e.lctx.Metrics.Raster()

	switch ev.Kind {
	case KindAnchor:
		if !editor.Retarget(d, ev.Corner, footprint, cell, raster) {
			logger.Debug("Dashlet already anchored there", zap.Int("dashlet", ev.Dashlet))
			return
		}
		logger.Info("Dashlet re-anchored", zap.Int("dashlet", ev.Dashlet), zap.Stringer("anchor", ev.Corner), zap.Stringer("declaration", *d))
	case KindSizer:
		_, size := editor.Footprint(footprint, cell)
		editor.CycleSizeMode(d, ev.Axis, size.Get(ev.Axis))
		logger.Info("Dashlet size mode changed", zap.Int("dashlet", ev.Dashlet), zap.Stringer("axis", ev.Axis), zap.Stringer("declaration", *d))
	case KindDragStart:
		if e.lctx.Drag != nil {
			logger.Debug("Drag already in progress", zap.Int("dragging", e.lctx.Drag.ID))
			return
		}
		e.lctx.Drag = &Drag{ID: ev.Dashlet, Pointer: ev.Point, Footprint: footprint}
	}
	e.relayout(ctx, ev)
}

// drag moves the dragged dashlet by the pointer delta since the drag started.
func (e *Engine) drag(ctx context.Context, ev Event, logger *zap.Logger) {
	drag := e.lctx.Drag
	if drag == nil {
		logger.Debug("No drag in progress")
		return
	}

	target := grid.V(drag.Footprint.X, drag.Footprint.Y).Add(ev.Point.Sub(drag.Pointer))
	moved := editor.MoveTo(&e.dashlets[drag.ID], target, drag.Footprint, e.lctx.Metrics.Cell, e.lctx.Metrics.Raster())

	if ev.Kind == KindDragEnd {
		e.lctx.Drag = nil
		logger.Info("Dashlet dropped", zap.Int("dashlet", drag.ID), zap.Stringer("declaration", e.dashlets[drag.ID]))
	} else if !moved {
		return
	}
	e.relayout(ctx, ev)
}

// footprint is the rendered pixel rectangle of dashlet id from the last solve.
func (e *Engine) footprint(id int) layout.Rect {
	if id >= len(e.placements) {
		return layout.Rect{}
	}
	return e.placements[id].Pixels(e.lctx.Metrics.Cell)
}

func (e *Engine) relayout(ctx context.Context, cause Event) {
	placements, stats := e.solver.SolveWithStats(e.dashlets, e.lctx.Metrics)
	geometries := solver.Geometries(placements, e.lctx.Metrics.Cell)
	e.applier.Apply(ctx, geometries)

	e.placements = placements
	e.seq++
	snap := Snapshot{
		Sequence:   e.seq,
		Cause:      cause.Kind,
		Dashlets:   append([]grid.Dashlet(nil), e.dashlets...),
		Placements: placements,
		Geometries: geometries,
		Metrics:    e.lctx.Metrics,
		Viewport:   e.lctx.Viewport,
		Editing:    e.lctx.Editing,
		Dragging:   -1,
		Stats:      stats,
	}
	if e.lctx.Drag != nil {
		snap.Dragging = e.lctx.Drag.ID
	}

	e.snapMu.Lock()
	e.snapshot = snap
	fn := e.onLayout
	e.snapMu.Unlock()

	e.logger.Debug("Layout applied",
		zap.String("event_id", cause.ID.String()),
		zap.Stringer("kind", cause.Kind),
		zap.Uint64("sequence", snap.Sequence),
		zap.Stringer("raster", stats.Raster),
	)
	if fn != nil {
		fn(snap)
	}
}

func (e *Engine) setPage(p grid.Vec) uint64 {
	e.pageMu.Lock()
	defer e.pageMu.Unlock()
	e.page = p
	e.pageGen++
	return e.pageGen
}

func (e *Engine) latestPage() (grid.Vec, uint64) {
	e.pageMu.Lock()
	defer e.pageMu.Unlock()
	return e.page, e.pageGen
}

func (e *Engine) markSolved(gen uint64) {
	e.pageMu.Lock()
	defer e.pageMu.Unlock()
	if gen > e.solvedGen {
		e.solvedGen = gen
		close(e.solved)
		e.solved = make(chan struct{})
	}
}

func (e *Engine) solvedThrough(gen uint64) (bool, <-chan struct{}) {
	e.pageMu.Lock()
	defer e.pageMu.Unlock()
	return e.solvedGen >= gen, e.solved
}
