//go:build !windows

package terminal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/termhost/internal/infrastructure/monitoring"
)

func TestCreateThenWriteReachesShell(t *testing.T) {
	m := newTestManager(t, "/bin/sh")
	sink := newRecordingSink()

	require.NoError(t, m.Create("echo", 80, 24, sink))
	require.NoError(t, m.Write("echo", []byte("echo marker_$((40+2))\n")))

	// The tty echoes the command line verbatim; only the shell prints 42.
	assert.Eventually(t, sink.contains(Topic("echo"), "marker_42"), waitTimeout, 20*time.Millisecond)
}

func TestWriteUnknownSession(t *testing.T) {
	m := newTestManager(t, "/bin/sh")

	err := m.Write("missing", []byte("ls\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestWriteAfterClose(t *testing.T) {
	m := newTestManager(t, "/bin/sh")
	sink := newRecordingSink()

	require.NoError(t, m.Create("gone", 80, 24, sink))
	require.NoError(t, m.Close("gone"))

	err := m.Write("gone", []byte("ls\n"))
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	_, err = m.Get("gone")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestResizeAndCloseUnknownSucceed(t *testing.T) {
	m := newTestManager(t, "/bin/sh")

	assert.NoError(t, m.Resize("missing", 100, 40))
	assert.NoError(t, m.Close("missing"))
	assert.Equal(t, 0, m.Count())
}

func TestResizeUpdatesChildSize(t *testing.T) {
	m := newTestManager(t, "/bin/sh")
	sink := newRecordingSink()

	require.NoError(t, m.Create("size", 80, 24, sink))
	require.NoError(t, m.Resize("size", 132, 43))

	info, err := m.Get("size")
	require.NoError(t, err)
	assert.Equal(t, uint16(132), info.Cols)
	assert.Equal(t, uint16(43), info.Rows)

	require.NoError(t, m.Write("size", []byte("stty size\n")))
	assert.Eventually(t, sink.contains(Topic("size"), "43 132"), waitTimeout, 20*time.Millisecond)
}

func TestResizeDisabledIsNoop(t *testing.T) {
	m := newTestManager(t, "/bin/sh", func(cfg *Config) { cfg.ResizeEnabled = false })
	sink := newRecordingSink()

	require.NoError(t, m.Create("fixed", 80, 24, sink))
	require.NoError(t, m.Resize("fixed", 132, 43))

	info, err := m.Get("fixed")
	require.NoError(t, err)
	assert.Equal(t, uint16(80), info.Cols)
	assert.Equal(t, uint16(24), info.Rows)

	m.mu.Lock()
	rows, cols, err := pty.Getsize(m.sessions["fixed"].input)
	m.mu.Unlock()
	require.NoError(t, err)
	assert.Equal(t, 24, rows)
	assert.Equal(t, 80, cols)
}

// writeScript creates an executable shell script in a temp dir.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shell.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestCreateTwiceKeepsOneEntry(t *testing.T) {
	// Each child prints its pid after a delay, then echoes input.
	script := writeScript(t, "sleep 0.3\necho \"late-$$\"\nexec cat\n")
	m := newTestManager(t, script, func(cfg *Config) { cfg.KillOnClose = false })
	sink := newRecordingSink()
	topic := Topic("dup")

	require.NoError(t, m.Create("dup", 80, 24, sink))
	first, err := m.Get("dup")
	require.NoError(t, err)
	defer syscall.Kill(first.PID, syscall.SIGKILL)
	firstRelay := relayOf(t, m, "dup")

	require.NoError(t, m.Create("dup", 80, 24, sink))
	second, err := m.Get("dup")
	require.NoError(t, err)
	defer syscall.Kill(second.PID, syscall.SIGKILL)

	assert.Equal(t, 1, m.Count())
	assert.NotEqual(t, first.PID, second.PID)
	assert.NotSame(t, firstRelay, relayOf(t, m, "dup"))

	// Replacing stops neither the previous shell nor its relay.
	assert.NoError(t, syscall.Kill(first.PID, 0))
	assert.True(t, firstRelay.active())

	// Output the first child writes after being replaced still reaches the topic.
	assert.Eventually(t, sink.contains(topic, fmt.Sprintf("late-%d", first.PID)), waitTimeout, 20*time.Millisecond)
	assert.Eventually(t, sink.contains(topic, fmt.Sprintf("late-%d", second.PID)), waitTimeout, 20*time.Millisecond)
	assert.True(t, firstRelay.active())

	require.NoError(t, m.Write("dup", []byte("routed-to-second\n")))
	assert.Eventually(t, sink.contains(topic, "routed-to-second"), waitTimeout, 20*time.Millisecond)
}

func TestActiveGaugeMatchesTable(t *testing.T) {
	metrics := monitoring.NewMetrics()
	m := newTestManager(t, "cat").WithMetrics(metrics)
	sink := newRecordingSink()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("g%d", i%4)
			assert.NoError(t, m.Create(id, 80, 24, sink))
			if i%2 == 0 {
				assert.NoError(t, m.Close(id))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, float64(m.Count()), testutil.ToFloat64(metrics.SessionsActive))

	require.NoError(t, m.CloseAll())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SessionsActive))
}

func TestConcurrentWritesAreNotInterleaved(t *testing.T) {
	m := newTestManager(t, "cat")
	sink := newRecordingSink()

	require.NoError(t, m.Create("busy", 200, 50, sink))

	const writers = 8
	const perWriter = 5

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				line := fmt.Sprintf("writer-%02d-line-%02d-abcdefghijklmnopqrstuvwxyz\n", w, i)
				assert.NoError(t, m.Write("busy", []byte(line)))
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < writers; w++ {
		for i := 0; i < perWriter; i++ {
			want := fmt.Sprintf("writer-%02d-line-%02d-abcdefghijklmnopqrstuvwxyz", w, i)
			assert.Eventually(t, sink.contains(Topic("busy"), want), waitTimeout, 20*time.Millisecond, want)
		}
	}
}

func TestNoOutputAfterShellExits(t *testing.T) {
	m := newTestManager(t, "/bin/sh")
	sink := newRecordingSink()
	topic := Topic("short")

	require.NoError(t, m.Create("short", 80, 24, sink))
	rl := relayOf(t, m, "short")

	require.NoError(t, m.Write("short", []byte("exit\n")))

	select {
	case <-rl.done:
	case <-time.After(waitTimeout):
		t.Fatal("relay did not stop after shell exit")
	}

	seen := sink.count(topic)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, seen, sink.count(topic))

	// Output-side termination leaves the table untouched.
	info, err := m.Get("short")
	require.NoError(t, err)
	assert.False(t, info.RelayActive)
}

func TestKillOnCloseEndsRelay(t *testing.T) {
	m := newTestManager(t, "/bin/sh")
	sink := newRecordingSink()

	require.NoError(t, m.Create("killme", 80, 24, sink))
	rl := relayOf(t, m, "killme")

	require.NoError(t, m.Close("killme"))

	select {
	case <-rl.done:
	case <-time.After(waitTimeout):
		t.Fatal("relay still running after kill on close")
	}
}

func TestCreatePtyAllocationFailure(t *testing.T) {
	m := newTestManager(t, "/bin/sh")
	m.WithBackend(BackendFunc(func(Size) (*Pair, error) {
		return nil, errors.New("out of ptys")
	}))

	err := m.Create("nope", 80, 24, newRecordingSink())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPtyAllocation))
	assert.Contains(t, err.Error(), "out of ptys")
	assert.Equal(t, 0, m.Count())
}

func TestCreateSpawnFailure(t *testing.T) {
	m := newTestManager(t, "/nonexistent/shell")

	err := m.Create("nope", 80, 24, newRecordingSink())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpawnFailure))
	assert.Equal(t, 0, m.Count())
}

func TestListOrderedByStart(t *testing.T) {
	m := newTestManager(t, "cat")
	sink := newRecordingSink()

	require.NoError(t, m.Create("a", 80, 24, sink))
	require.NoError(t, m.Create("b", 100, 30, sink))

	sessions := m.List()
	require.Len(t, sessions, 2)
	assert.Equal(t, "a", sessions[0].ID)
	assert.Equal(t, "b", sessions[1].ID)
	assert.Equal(t, uint16(100), sessions[1].Cols)
	assert.NotZero(t, sessions[1].PID)
	assert.True(t, sessions[1].RelayActive)

	require.NoError(t, m.CloseAll())
	assert.Equal(t, 0, m.Count())
}
