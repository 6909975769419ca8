package render

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	json "github.com/json-iterator/go"

	"github.com/xkilldash9x/dashgrid/api/schemas"
	"github.com/xkilldash9x/dashgrid/internal/engine"
	"github.com/xkilldash9x/dashgrid/internal/grid"
)

// Snapshot converts an engine snapshot into its wire form. titles is indexed
// by dashlet id and may be shorter than the dashlet list.
func Snapshot(s engine.Snapshot, titles []string) schemas.LayoutSnapshot {
	raster := s.Metrics.Raster()
	out := schemas.LayoutSnapshot{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Origin:    schemas.Point{X: s.Viewport.X, Y: s.Viewport.Y},
		Screen:    extent(s.Metrics.Screen),
		Cell:      extent(s.Metrics.Cell),
		Raster:    extent(raster),
		Editing:   s.Editing,
		Dashlets:  make([]schemas.DashletGeometry, 0, len(s.Placements)),
	}

	for i, p := range s.Placements {
		g := schemas.DashletGeometry{
			ID:      i,
			Visible: p.Visible,
			Frozen:  p.Frozen,
			Grid:    schemas.GridRect{Left: p.Left, Top: p.Top, Right: p.Right, Bottom: p.Bottom},
		}
		if i < len(titles) {
			g.Title = titles[i]
		}
		if i < len(s.Dashlets) {
			g.Declaration = declaration(s.Dashlets[i])
		}
		if i < len(s.Geometries) {
			r := s.Geometries[i].Rect
			g.Pixels = schemas.PixelRect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
		}
		out.Dashlets = append(out.Dashlets, g)
	}
	return out
}

func extent(v grid.Vec) schemas.Extent {
	return schemas.Extent{Width: v.X, Height: v.Y}
}

func declaration(d grid.Dashlet) schemas.Declaration {
	return schemas.Declaration{X: d.X, Y: d.Y, W: d.W.String(), H: d.H.String(), Anchor: d.Anchor().String()}
}

// WriteJSON writes the snapshot as indented JSON followed by a newline.
func WriteJSON(w io.Writer, snapshot schemas.LayoutSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize layout snapshot: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write layout snapshot: %w", err)
	}
	return nil
}

// WriteText writes a summary line, the grid map and one table row per dashlet.
func WriteText(w io.Writer, s engine.Snapshot, titles []string) error {
	snapshot := Snapshot(s, titles)
	if _, err := fmt.Fprintf(w, "viewport %dx%d+%d+%d  cell %dx%d  raster %dx%d\n",
		snapshot.Screen.Width, snapshot.Screen.Height, snapshot.Origin.X, snapshot.Origin.Y,
		snapshot.Cell.Width, snapshot.Cell.Height, snapshot.Raster.Width, snapshot.Raster.Height); err != nil {
		return err
	}
	if _, err := io.WriteString(w, Map(s.Placements, s.Metrics.Raster())); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDECLARED\tANCHOR\tGRID\tPIXELS\tSTATE")
	for _, d := range snapshot.Dashlets {
		fmt.Fprintf(tw, "%d\t%s\t%d/%d %sx%s\t%s\t%d,%d-%d,%d\t%dx%d+%d+%d\t%s\n",
			d.ID, orDash(d.Title),
			d.Declaration.X, d.Declaration.Y, d.Declaration.W, d.Declaration.H,
			d.Declaration.Anchor,
			d.Grid.Left, d.Grid.Top, d.Grid.Right, d.Grid.Bottom,
			d.Pixels.Width, d.Pixels.Height, d.Pixels.X, d.Pixels.Y,
			state(d),
		)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func state(d schemas.DashletGeometry) string {
	switch {
	case !d.Visible:
		return "hidden"
	case d.Frozen:
		return "frozen"
	}
	return "ok"
}
