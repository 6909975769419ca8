package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/dashgrid/internal/config"
	"github.com/xkilldash9x/dashgrid/internal/engine"
	"github.com/xkilldash9x/dashgrid/internal/layout"
	"github.com/xkilldash9x/dashgrid/internal/network"
	"github.com/xkilldash9x/dashgrid/internal/render"
)

// dashboard wires the configured dashlets to an in-memory canvas, the layout
// engine and, when any dashlet has a reload URL, a content fetcher.
type dashboard struct {
	cfg     *config.Config
	canvas  *render.Canvas
	fetcher *network.ContentFetcher
	engine  *engine.Engine
	titles  []string
}

func newDashboard(cfg *config.Config, logger *zap.Logger) (*dashboard, error) {
	decls := cfg.Dashlets()
	canvas := render.NewCanvas()
	registry := layout.NewRegistry()
	titles := make([]string, len(decls))
	for i, d := range decls {
		canvas.AddDashlet(i, d.Title)
		titles[i] = d.Title
		if d.ReloadURL != "" {
			registry.Register(i, d.ReloadURL)
		}
	}

	d := &dashboard{cfg: cfg, canvas: canvas, titles: titles}

	var fetcher layout.Fetcher
	if registry.Len() > 0 {
		d.fetcher = network.NewContentFetcher(nil, canvas, cfg.Network(), logger)
		fetcher = d.fetcher
	}

	opts := layout.Options{
		Padding:    cfg.Padding(),
		MinWidth:   cfg.Grid().MinWidth,
		TitleInset: cfg.Grid().TitleInset,
	}
	applier := layout.NewApplier(canvas, registry, fetcher, opts, logger)

	eng, err := engine.New(cfg, applier, config.Declarations(decls), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create layout engine: %w", err)
	}
	d.engine = eng
	return d, nil
}

// start runs the engine and waits for the initial layout.
func (d *dashboard) start(ctx context.Context) error {
	if err := d.engine.Start(ctx); err != nil {
		return err
	}
	if err := d.engine.Do(ctx, engine.Rerender()); err != nil {
		d.engine.Stop()
		return fmt.Errorf("initial layout failed: %w", err)
	}
	return nil
}

// declarations returns the configured dashlets with the engine's current
// placement declarations.
func (d *dashboard) declarations() []config.DashletConfig {
	snap := d.engine.Snapshot()
	out := append([]config.DashletConfig(nil), d.cfg.Dashlets()...)
	for i := range out {
		if i < len(snap.Dashlets) {
			out[i].Dashlet = snap.Dashlets[i]
		}
	}
	return out
}

// declarationsYAML renders the current declarations as a `dashlets:` document.
func (d *dashboard) declarationsYAML() ([]byte, error) {
	doc := struct {
		Dashlets []config.DashletConfig `yaml:"dashlets"`
	}{Dashlets: d.declarations()}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize declarations: %w", err)
	}
	return out, nil
}
