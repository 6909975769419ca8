package network

import (
	"io"
	"sync"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/dashgrid/internal/config"
	"github.com/xkilldash9x/dashgrid/internal/observability"
)

// SetupObservability installs a quiet global logger for the test.
func SetupObservability(t *testing.T) {
	t.Helper()
	observability.ResetForTest()
	observability.Initialize(config.LoggerConfig{Level: "error", Format: "json"}, zapcore.AddSync(io.Discard))
	t.Cleanup(observability.ResetForTest)
}

// recordingSink collects delivered bodies.
type recordingSink struct {
	mu     sync.Mutex
	bodies map[int][]string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{bodies: make(map[int][]string)}
}

func (s *recordingSink) UpdateContents(id int, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies[id] = append(s.bodies[id], string(body))
}

func (s *recordingSink) get(id int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bodies[id]...)
}
