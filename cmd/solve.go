// File: cmd/solve.go
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/dashgrid/internal/config"
	"github.com/xkilldash9x/dashgrid/internal/observability"
	"github.com/xkilldash9x/dashgrid/internal/render"
)

type solveOptions struct {
	Width  int
	Height int
	Format string
	Fetch  bool
}

// newSolveCmd creates and configures the `solve` command.
func newSolveCmd() *cobra.Command {
	var opts solveOptions

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the configured layout for a page size and print it",
		Long: `Lays out the configured dashlets for the given page size and prints the
grid map with per-dashlet geometry, or a JSON snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}

			return runSolve(ctx, logger, cfg, opts, cmd.OutOrStdout())
		},
	}

	solveCmd.Flags().IntVar(&opts.Width, "width", 0, "Page width in pixels (default from screen.width)")
	solveCmd.Flags().IntVar(&opts.Height, "height", 0, "Page height in pixels (default from screen.height)")
	solveCmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format: 'text' or 'json'")
	solveCmd.Flags().BoolVar(&opts.Fetch, "fetch", false, "Fetch size-dependent content once after layout")

	return solveCmd
}

// runSolve contains the core, testable logic of the solve command.
func runSolve(ctx context.Context, logger *zap.Logger, cfg *config.Config, opts solveOptions, out io.Writer) error {
	if opts.Format != "text" && opts.Format != "json" {
		return fmt.Errorf("unsupported output format %q", opts.Format)
	}
	applyPageSize(cfg, opts.Width, opts.Height)

	d, err := newDashboard(cfg, logger)
	if err != nil {
		return err
	}
	if err := d.start(ctx); err != nil {
		return err
	}
	defer d.engine.Stop()

	if opts.Fetch && d.fetcher != nil {
		if err := d.fetcher.Flush(ctx); err != nil {
			return fmt.Errorf("content fetch failed: %w", err)
		}
	}

	snap := d.engine.Snapshot()
	logger.Debug("Layout solved", zap.Int("dashlets", len(snap.Placements)), zap.Int("collisions", snap.Stats.Collisions))

	if opts.Format == "json" {
		return render.WriteJSON(out, render.Snapshot(snap, d.titles))
	}
	if err := render.WriteText(out, snap, d.titles); err != nil {
		return err
	}
	if opts.Fetch {
		for i := range d.titles {
			if body, ok := d.canvas.Contents(i); ok {
				fmt.Fprintf(out, "content %d: %d bytes\n", i, len(body))
			}
		}
	}
	return nil
}

// applyPageSize overrides the configured page size with positive flag values.
func applyPageSize(cfg *config.Config, width, height int) {
	screen := cfg.Screen()
	if width > 0 {
		screen.Width = width
	}
	if height > 0 {
		screen.Height = height
	}
	cfg.SetScreenSize(screen.Width, screen.Height)
}
