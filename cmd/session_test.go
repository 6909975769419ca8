package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/dashgrid/internal/engine"
	"github.com/xkilldash9x/dashgrid/internal/grid"
)

func runScript(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, runSession(context.Background(), zaptest.NewLogger(t), newTestConfig(), in, &out))
	return out.String()
}

func TestRunSession_EditFlow(t *testing.T) {
	out := runScript(t,
		"edit on",
		"anchor 0 br",
		"controls 0",
		"size 1 y",
		"controls 1",
		"decl",
		"quit",
		"show",
	)

	assert.Contains(t, out, "anchor bottomright  width 3  height 3\n")
	assert.Contains(t, out, "anchor bottomright  width GROW  height MAX\n")
	assert.Contains(t, out, "x: -8")
	assert.Contains(t, out, "h: max")
	assert.NotContains(t, out, "viewport", "nothing runs after quit")
}

func TestRunSession_ResizeAndDrag(t *testing.T) {
	out := runScript(t,
		"resize 210 135",
		"edit on",
		"drag 0 10 40",
		"move 30 60",
		"drop 30 60",
		"show",
	)

	assert.Contains(t, out, "raster 20x10")
	assert.Contains(t, out, ".....111111111111111\n..000111111111111111\n")
	assert.True(t, strings.HasSuffix(out, sessionPrompt+"\n"), "EOF ends the session")
}

func TestRunSession_Errors(t *testing.T) {
	out := runScript(t,
		"bogus",
		"resize 10",
		"edit maybe",
		"controls 9",
		"content 0",
		"",
		"help",
	)

	assert.Contains(t, out, `error: unknown command "bogus" (try help)`)
	assert.Contains(t, out, "error: expected 2 numeric arguments, got 1")
	assert.Contains(t, out, "error: usage: edit on|off")
	assert.Contains(t, out, "error: dashlet 9 does not exist")
	assert.Contains(t, out, "no content for dashlet 0")
	assert.Contains(t, out, "resize <w> <h>")
}

func TestParseEvent(t *testing.T) {
	tests := map[string]struct {
		cmd  string
		args []string
		kind engine.Kind
	}{
		"resize": {cmd: "resize", args: []string{"800", "600"}, kind: engine.KindResize},
		"edit":   {cmd: "edit", args: []string{"off"}, kind: engine.KindToggleEdit},
		"anchor": {cmd: "anchor", args: []string{"1", "tl"}, kind: engine.KindAnchor},
		"size":   {cmd: "size", args: []string{"1", "x"}, kind: engine.KindSizer},
		"drag":   {cmd: "drag", args: []string{"1", "5", "5"}, kind: engine.KindDragStart},
		"move":   {cmd: "move", args: []string{"5", "5"}, kind: engine.KindDragMove},
		"drop":   {cmd: "drop", args: []string{"5", "5"}, kind: engine.KindDragEnd},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ev, err := parseEvent(tc.cmd, tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, ev.Kind)
		})
	}

	ev, err := parseEvent("anchor", []string{"2", "bl"})
	require.NoError(t, err)
	assert.Equal(t, 2, ev.Dashlet)
	assert.Equal(t, grid.BottomLeft, ev.Corner)

	_, err = parseEvent("anchor", []string{"-1", "bl"})
	assert.Error(t, err)
}
