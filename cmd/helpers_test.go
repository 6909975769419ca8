package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/dashgrid/internal/config"
	"github.com/xkilldash9x/dashgrid/internal/grid"
)

// canonicalConfig lays out on a 100x100 viewport with 10px cells: a fixed
// block in the top left and a doubly growing dashlet anchored bottom right.
const canonicalConfig = `
logger:
  level: error
screen:
  width: 110
  height: 135
dashlets:
  - {x: 1, y: 1, w: 3, h: 3, title: cpu}
  - {x: -1, y: -1, w: grow, h: grow}
`

// newTestConfig mirrors canonicalConfig without going through a file.
func newTestConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.LoggerCfg.Level = "error"
	cfg.SetScreenSize(110, 135)
	cfg.DashletsCfg = []config.DashletConfig{
		{Dashlet: grid.Dashlet{X: 1, Y: 1, W: 3, H: 3}, Title: "cpu"},
		{Dashlet: grid.Dashlet{X: -1, Y: -1, W: grid.Grow, H: grid.Grow}},
	}
	return cfg
}

// writeConfig writes content to a temporary config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// executeCommand runs a fresh root command and returns what it printed.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}
