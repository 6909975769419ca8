package engine

import (
	"github.com/google/uuid"

	"github.com/xkilldash9x/dashgrid/internal/grid"
)

// Kind identifies what an Event asks the engine to do.
type Kind int

const (
	KindResize Kind = iota
	KindRerender
	KindToggleEdit
	KindAnchor
	KindSizer
	KindDragStart
	KindDragMove
	KindDragEnd
)

var kindNames = [...]string{"resize", "rerender", "toggle_edit", "anchor", "sizer", "drag_start", "drag_move", "drag_end"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Event is one unit of work for the layout loop. Use the constructors below;
// the fields that matter depend on Kind.
type Event struct {
	ID   uuid.UUID
	Kind Kind

	Dashlet int
	Corner  grid.Corner
	Axis    grid.Axis
	// Point is the page size for resize events and the pointer position for
	// drag events, in pixels.
	Point   grid.Vec
	Editing bool

	done chan struct{}
}

func newEvent(kind Kind) Event {
	return Event{ID: uuid.New(), Kind: kind}
}

// Resize reports a new page size.
func Resize(width, height int) Event {
	ev := newEvent(KindResize)
	ev.Point = grid.V(width, height)
	return ev
}

// Rerender asks for a solve with the current metrics.
func Rerender() Event {
	return newEvent(KindRerender)
}

// ToggleEdit enters or leaves edit mode.
func ToggleEdit(editing bool) Event {
	ev := newEvent(KindToggleEdit)
	ev.Editing = editing
	return ev
}

// SetAnchor re-anchors a dashlet at corner.
func SetAnchor(id int, corner grid.Corner) Event {
	ev := newEvent(KindAnchor)
	ev.Dashlet = id
	ev.Corner = corner
	return ev
}

// CycleSize advances the sizing mode of one axis of a dashlet.
func CycleSize(id int, axis grid.Axis) Event {
	ev := newEvent(KindSizer)
	ev.Dashlet = id
	ev.Axis = axis
	return ev
}

// DragStart begins moving a dashlet from the pointer position (x, y).
func DragStart(id, x, y int) Event {
	ev := newEvent(KindDragStart)
	ev.Dashlet = id
	ev.Point = grid.V(x, y)
	return ev
}

// DragMove reports the pointer position during a drag.
func DragMove(x, y int) Event {
	ev := newEvent(KindDragMove)
	ev.Point = grid.V(x, y)
	return ev
}

// DragEnd drops the dragged dashlet at the pointer position.
func DragEnd(x, y int) Event {
	ev := newEvent(KindDragEnd)
	ev.Point = grid.V(x, y)
	return ev
}

// Handler receives edit control activations. Engine implements it by queueing
// the matching event.
type Handler interface {
	OnAnchor(id int, corner grid.Corner)
	OnSizer(id int, axis grid.Axis)
}
