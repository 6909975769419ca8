// internal/render/canvas.go
package render

import (
	"sync"

	"github.com/xkilldash9x/dashgrid/internal/layout"
)

// Box is an in-memory presentation node. It is safe for concurrent use.
type Box struct {
	mu      sync.RWMutex
	visible bool
	rect    layout.Rect
}

func (b *Box) Show(visible bool) {
	b.mu.Lock()
	b.visible = visible
	b.mu.Unlock()
}

func (b *Box) Move(x, y int) {
	b.mu.Lock()
	b.rect.X, b.rect.Y = x, y
	b.mu.Unlock()
}

func (b *Box) Resize(width, height int) {
	b.mu.Lock()
	b.rect.Width, b.rect.Height = width, height
	b.mu.Unlock()
}

// SetWidth makes Box usable as a title bar.
func (b *Box) SetWidth(width int) {
	b.mu.Lock()
	b.rect.Width = width
	b.mu.Unlock()
}

// State returns the visibility and rectangle last pushed to the box.
func (b *Box) State() (bool, layout.Rect) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.visible, b.rect
}

type panel struct {
	title    string
	titleBar *Box
	outer    *Box
	inner    *Box
	contents []byte
}

// Canvas is an in-memory dashboard. It implements layout.Presenter for the
// applier and network.Sink for fetched content.
type Canvas struct {
	mu     sync.RWMutex
	panels map[int]*panel
}

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{panels: make(map[int]*panel)}
}

// AddDashlet creates the nodes of dashlet id. A dashlet with an empty title
// has no title bar.
func (c *Canvas) AddDashlet(id int, title string) {
	p := &panel{title: title, outer: &Box{}, inner: &Box{}}
	if title != "" {
		p.titleBar = &Box{}
	}
	c.mu.Lock()
	c.panels[id] = p
	c.mu.Unlock()
}

// RemoveDashlet drops every node of dashlet id.
func (c *Canvas) RemoveDashlet(id int) {
	c.mu.Lock()
	delete(c.panels, id)
	c.mu.Unlock()
}

func (c *Canvas) get(id int) (*panel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.panels[id]
	return p, ok
}

func (c *Canvas) Title(id int) (layout.TitleBar, bool) {
	p, ok := c.get(id)
	if !ok || p.titleBar == nil {
		return nil, false
	}
	return p.titleBar, true
}

func (c *Canvas) Outer(id int) (layout.Element, bool) {
	p, ok := c.get(id)
	if !ok {
		return nil, false
	}
	return p.outer, true
}

func (c *Canvas) Inner(id int) (layout.Element, bool) {
	p, ok := c.get(id)
	if !ok {
		return nil, false
	}
	return p.inner, true
}

// Frame is a read-only view of one dashlet on the canvas.
type Frame struct {
	Title      string
	Visible    bool
	Outer      layout.Rect
	Inner      layout.Rect
	TitleWidth int
}

// Frame returns the current state of dashlet id.
func (c *Canvas) Frame(id int) (Frame, bool) {
	p, ok := c.get(id)
	if !ok {
		return Frame{}, false
	}
	f := Frame{Title: p.title}
	f.Visible, f.Outer = p.outer.State()
	_, f.Inner = p.inner.State()
	if p.titleBar != nil {
		_, tr := p.titleBar.State()
		f.TitleWidth = tr.Width
	}
	return f, true
}

// UpdateContents implements network.Sink.
func (c *Canvas) UpdateContents(id int, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.panels[id]; ok {
		p.contents = append([]byte(nil), body...)
	}
}

// Contents returns the last body delivered for dashlet id.
func (c *Canvas) Contents(id int) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.panels[id]
	if !ok || p.contents == nil {
		return nil, false
	}
	return append([]byte(nil), p.contents...), true
}
