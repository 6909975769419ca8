// internal/layout/applier.go
package layout

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

// Legacy presentation floors for the title bar.
const (
	DefaultMinWidth   = 21
	DefaultTitleInset = 14
)

// -- Collaborator interfaces --

// Element is one presentation node (title bar, outer frame or content area).
type Element interface {
	Show(visible bool)
	Move(x, y int)
	Resize(width, height int)
}

// TitleBar is the header strip of a dashlet; only its width follows the layout.
type TitleBar interface {
	Show(visible bool)
	SetWidth(width int)
}

// Presenter resolves the presentation nodes of a dashlet. A false return means
// the node does not exist; layout of that node is skipped.
type Presenter interface {
	Title(id int) (TitleBar, bool)
	Outer(id int) (Element, bool)
	Inner(id int) (Element, bool)
}

// Fetcher re-requests the content of a dashlet whose body depends on its size.
type Fetcher interface {
	Reload(ctx context.Context, id int, url string) error
}

// Options tunes the applier. A zero MinWidth or TitleInset selects the
// default.
type Options struct {
	Padding    Edges
	MinWidth   int
	TitleInset int
}

// DefaultOptions returns the legacy title floors and no padding.
func DefaultOptions() Options {
	return Options{MinWidth: DefaultMinWidth, TitleInset: DefaultTitleInset}
}

// Applier pushes solved geometry to a Presenter.
type Applier struct {
	presenter Presenter
	registry  *Registry
	fetcher   Fetcher
	opts      Options
	logger    *zap.Logger
}

// NewApplier wires an applier. registry and fetcher may be nil when no dashlet
// needs size-dependent content.
func NewApplier(presenter Presenter, registry *Registry, fetcher Fetcher, opts Options, logger *zap.Logger) *Applier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MinWidth <= 0 {
		opts.MinWidth = DefaultMinWidth
	}
	if opts.TitleInset <= 0 {
		opts.TitleInset = DefaultTitleInset
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &Applier{
		presenter: presenter,
		registry:  registry,
		fetcher:   fetcher,
		opts:      opts,
		logger:    logger.Named("applier"),
	}
}

// Registry returns the reload registry the applier consults.
func (a *Applier) Registry() *Registry {
	return a.registry
}

// Apply pushes the geometry of every dashlet, in order. A missing presentation
// node only affects the dashlet it belongs to.
func (a *Applier) Apply(ctx context.Context, geometries []Geometry) {
	for id, g := range geometries {
		a.applyOne(ctx, id, g)
	}
}

func (a *Applier) applyOne(ctx context.Context, id int, g Geometry) {
	outer := g.Rect

	if title, ok := a.presenter.Title(id); ok {
		width := outer.Width
		if width < a.opts.MinWidth {
			width = a.opts.MinWidth
		}
		title.SetWidth(width - a.opts.TitleInset)
		title.Show(g.Visible)
	}

	if el, ok := a.presenter.Outer(id); ok {
		el.Show(g.Visible)
		el.Move(outer.X, outer.Y)
		el.Resize(outer.Width, outer.Height)
	} else {
		a.logger.Debug("No outer element for dashlet, skipping", zap.Int("dashlet", id))
	}

	// The content area is positioned relative to the outer frame.
	inner := Rect{Width: outer.Width, Height: outer.Height}.Shrink(a.opts.Padding)
	el, ok := a.presenter.Inner(id)
	if !ok {
		a.logger.Debug("No inner element for dashlet, skipping", zap.Int("dashlet", id))
		return
	}
	el.Show(g.Visible)
	el.Move(inner.X, inner.Y)
	el.Resize(inner.Width, inner.Height)

	a.reload(ctx, id, inner)
}

func (a *Applier) reload(ctx context.Context, id int, inner Rect) {
	base, ok := a.registry.Lookup(id)
	if !ok || a.fetcher == nil {
		return
	}
	target, err := SizedURL(base, inner.Width, inner.Height)
	if err != nil {
		a.logger.Warn("Invalid reload endpoint", zap.Int("dashlet", id), zap.String("url", base), zap.Error(err))
		return
	}
	if err := a.fetcher.Reload(ctx, id, target); err != nil {
		a.logger.Warn("Content reload failed", zap.Int("dashlet", id), zap.Error(err))
	}
}

// SizedURL appends width and height query parameters to an endpoint template.
func SizedURL(base string, width, height int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("width", strconv.Itoa(width))
	q.Set("height", strconv.Itoa(height))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
