// File: cmd/session.go
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/dashgrid/internal/config"
	"github.com/xkilldash9x/dashgrid/internal/editor"
	"github.com/xkilldash9x/dashgrid/internal/engine"
	"github.com/xkilldash9x/dashgrid/internal/grid"
	"github.com/xkilldash9x/dashgrid/internal/observability"
	"github.com/xkilldash9x/dashgrid/internal/render"
)

const sessionPrompt = "dashgrid> "

const sessionHelp = `commands:
  show                  print the grid map and geometry
  json                  print the layout snapshot as JSON
  decl                  print the current declarations as YAML
  resize <w> <h>        set the page size in pixels
  edit on|off           enter or leave edit mode
  anchor <id> <corner>  re-anchor a dashlet (edit mode)
  size <id> <x|y>       cycle a size mode (edit mode)
  controls <id>         show the edit controls of a dashlet
  drag <id> <x> <y>     start dragging at a page position (edit mode)
  move <x> <y>          move the pointer while dragging
  drop <x> <y>          drop the dragged dashlet
  content <id>          print fetched content of a dashlet
  quit                  leave the session
`

var errQuit = errors.New("quit")

// newSessionCmd creates the interactive `session` command.
func newSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Drive a live layout interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runSession(ctx, observability.GetLogger(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runSession runs the line-oriented REPL until EOF, quit, or cancellation.
func runSession(ctx context.Context, logger *zap.Logger, cfg *config.Config, in io.Reader, out io.Writer) error {
	d, err := newDashboard(cfg, logger)
	if err != nil {
		return err
	}
	if err := d.start(ctx); err != nil {
		return err
	}
	defer d.engine.Stop()

	if d.fetcher != nil {
		fetchCtx, cancel := context.WithCancel(ctx)
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.fetcher.Run(fetchCtx); err != nil {
				logger.Warn("Content fetcher stopped", zap.Error(err))
			}
		}()
		defer wg.Wait()
		defer cancel()
	}

	s := &session{d: d, out: out}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, sessionPrompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		err := s.exec(ctx, strings.Fields(line))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

type session struct {
	d   *dashboard
	out io.Writer
}

func (s *session) exec(ctx context.Context, args []string) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		_, err := io.WriteString(s.out, sessionHelp)
		return err
	case "show":
		return render.WriteText(s.out, s.d.engine.Snapshot(), s.d.titles)
	case "json":
		return render.WriteJSON(s.out, render.Snapshot(s.d.engine.Snapshot(), s.d.titles))
	case "decl":
		doc, err := s.d.declarationsYAML()
		if err != nil {
			return err
		}
		_, err = s.out.Write(doc)
		return err
	case "controls":
		return s.controls(args)
	case "content":
		return s.content(args)
	}

	ev, err := parseEvent(cmd, args)
	if err != nil {
		return err
	}
	return s.d.engine.Do(ctx, ev)
}

func (s *session) controls(args []string) error {
	ids, err := parseInts(args, 1)
	if err != nil {
		return err
	}
	snap := s.d.engine.Snapshot()
	if ids[0] < 0 || ids[0] >= len(snap.Dashlets) {
		return fmt.Errorf("dashlet %d does not exist", ids[0])
	}
	c := editor.Describe(snap.Dashlets[ids[0]])
	_, err = fmt.Fprintf(s.out, "anchor %s  width %s  height %s\n", c.Anchor, c.Sizers[0].Label, c.Sizers[1].Label)
	return err
}

func (s *session) content(args []string) error {
	ids, err := parseInts(args, 1)
	if err != nil {
		return err
	}
	body, ok := s.d.canvas.Contents(ids[0])
	if !ok {
		_, err = fmt.Fprintf(s.out, "no content for dashlet %d\n", ids[0])
		return err
	}
	_, err = fmt.Fprintf(s.out, "%s\n", body)
	return err
}

// parseEvent maps a REPL command to an engine event.
func parseEvent(cmd string, args []string) (engine.Event, error) {
	switch cmd {
	case "resize":
		n, err := parseInts(args, 2)
		if err != nil {
			return engine.Event{}, err
		}
		return engine.Resize(n[0], n[1]), nil
	case "edit":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return engine.Event{}, errors.New("usage: edit on|off")
		}
		return engine.ToggleEdit(args[0] == "on"), nil
	case "anchor":
		if len(args) != 2 {
			return engine.Event{}, errors.New("usage: anchor <id> <corner>")
		}
		id, err := parseDashletID(args[0])
		if err != nil {
			return engine.Event{}, err
		}
		corner, err := grid.ParseCorner(args[1])
		if err != nil {
			return engine.Event{}, err
		}
		return engine.SetAnchor(id, corner), nil
	case "size":
		if len(args) != 2 {
			return engine.Event{}, errors.New("usage: size <id> <x|y>")
		}
		id, err := parseDashletID(args[0])
		if err != nil {
			return engine.Event{}, err
		}
		axis, err := grid.ParseAxis(args[1])
		if err != nil {
			return engine.Event{}, err
		}
		return engine.CycleSize(id, axis), nil
	case "drag":
		n, err := parseInts(args, 3)
		if err != nil {
			return engine.Event{}, err
		}
		return engine.DragStart(n[0], n[1], n[2]), nil
	case "move", "drop":
		n, err := parseInts(args, 2)
		if err != nil {
			return engine.Event{}, err
		}
		if cmd == "move" {
			return engine.DragMove(n[0], n[1]), nil
		}
		return engine.DragEnd(n[0], n[1]), nil
	}
	return engine.Event{}, fmt.Errorf("unknown command %q (try help)", cmd)
}

func parseInts(args []string, want int) ([]int, error) {
	if len(args) != want {
		return nil, fmt.Errorf("expected %d numeric arguments, got %d", want, len(args))
	}
	out := make([]int, want)
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = n
	}
	return out, nil
}
