// File: cmd/edit.go
package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/dashgrid/internal/config"
	"github.com/xkilldash9x/dashgrid/internal/engine"
	"github.com/xkilldash9x/dashgrid/internal/grid"
	"github.com/xkilldash9x/dashgrid/internal/observability"
)

// newEditCmd creates the `edit` command group. Edits are applied to a solved
// layout and the resulting declarations are printed; nothing is persisted.
func newEditCmd() *cobra.Command {
	var width, height int

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Apply an edit to the solved layout and print the new declarations",
	}
	editCmd.PersistentFlags().IntVar(&width, "width", 0, "Page width in pixels (default from screen.width)")
	editCmd.PersistentFlags().IntVar(&height, "height", 0, "Page height in pixels (default from screen.height)")

	anchorCmd := &cobra.Command{
		Use:   "anchor <id> <corner>",
		Short: "Re-anchor a dashlet at topleft, topright, bottomright or bottomleft",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDashletID(args[0])
			if err != nil {
				return err
			}
			corner, err := grid.ParseCorner(args[1])
			if err != nil {
				return err
			}
			return runEditCommand(cmd, width, height, id, engine.SetAnchor(id, corner))
		},
	}

	sizeCmd := &cobra.Command{
		Use:   "size <id> <x|y>",
		Short: "Cycle the size mode of one axis: fixed, grow, max, fixed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDashletID(args[0])
			if err != nil {
				return err
			}
			axis, err := grid.ParseAxis(args[1])
			if err != nil {
				return err
			}
			return runEditCommand(cmd, width, height, id, engine.CycleSize(id, axis))
		},
	}

	editCmd.AddCommand(anchorCmd, sizeCmd)
	return editCmd
}

func runEditCommand(cmd *cobra.Command, width, height, id int, ev engine.Event) error {
	ctx := cmd.Context()
	cfg, err := getConfigFromContext(ctx)
	if err != nil {
		return err
	}
	applyPageSize(cfg, width, height)
	return runEdit(ctx, observability.GetLogger(), cfg, id, ev, cmd.OutOrStdout())
}

// runEdit solves the layout, applies ev in edit mode and writes the resulting
// declarations as YAML.
func runEdit(ctx context.Context, logger *zap.Logger, cfg *config.Config, id int, ev engine.Event, out io.Writer) error {
	if id >= len(cfg.Dashlets()) {
		return fmt.Errorf("dashlet %d does not exist (%d configured)", id, len(cfg.Dashlets()))
	}

	d, err := newDashboard(cfg, logger)
	if err != nil {
		return err
	}
	if err := d.start(ctx); err != nil {
		return err
	}
	defer d.engine.Stop()

	for _, step := range []engine.Event{engine.ToggleEdit(true), ev} {
		if err := d.engine.Do(ctx, step); err != nil {
			return fmt.Errorf("edit failed: %w", err)
		}
	}

	doc, err := d.declarationsYAML()
	if err != nil {
		return err
	}
	_, err = out.Write(doc)
	return err
}

func parseDashletID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid dashlet id %q", s)
	}
	return id, nil
}
