//go:build !windows

package terminal

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/GriffinCanCode/termhost/internal/infrastructure/logging"
)

const waitTimeout = 5 * time.Second

// recordingSink keeps every emitted chunk per topic.
type recordingSink struct {
	mu     sync.Mutex
	chunks map[string][]string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{chunks: make(map[string][]string)}
}

func (s *recordingSink) Emit(topic, payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[topic] = append(s.chunks[topic], payload)
}

func (s *recordingSink) output(topic string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.chunks[topic], "")
}

func (s *recordingSink) count(topic string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chunks[topic])
}

func (s *recordingSink) contains(topic, want string) func() bool {
	return func() bool {
		return strings.Contains(s.output(topic), want)
	}
}

// newTestManager returns a manager running shell whose children are killed
// when the test ends.
func newTestManager(t *testing.T, shell string, mutate ...func(*Config)) *Manager {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Shell = shell
	cfg.KillOnClose = true
	for _, f := range mutate {
		f(&cfg)
	}

	m := NewManager(cfg, logging.NewNop())
	t.Cleanup(func() { m.CloseAll() })
	return m
}

// relayOf returns the relay of a live session.
func relayOf(t *testing.T, m *Manager, sessionID string) *relay {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		t.Fatalf("session %s not in table", sessionID)
	}
	return sess.relay
}
