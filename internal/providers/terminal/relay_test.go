//go:build !windows

package terminal

import (
	"io"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/termhost/internal/infrastructure/logging"
)

func runRelay(t *testing.T, src io.ReadCloser, bufSize int) *recordingSink {
	t.Helper()
	sink := newRecordingSink()
	rl := newRelay("r", src, sink, bufSize, logging.NewNop(), nil)
	go rl.run()

	select {
	case <-rl.done:
	case <-time.After(waitTimeout):
		t.Fatal("relay did not finish")
	}
	return sink
}

func TestRelayReplacesInvalidBytes(t *testing.T) {
	src := io.NopCloser(strings.NewReader("ok\xffok"))
	sink := runRelay(t, src, 64)

	assert.Equal(t, "ok�ok", sink.output(Topic("r")))
}

func TestRelayJoinsSplitRunes(t *testing.T) {
	pr, pw := io.Pipe()
	go func() {
		pw.Write([]byte("price: \xe2\x82"))
		pw.Write([]byte("\xac5\n"))
		pw.Close()
	}()

	sink := runRelay(t, pr, 64)

	out := sink.output(Topic("r"))
	assert.Equal(t, "price: €5\n", out)
	assert.NotContains(t, out, "�")
}

// scriptedReader returns each chunk in turn, then err.
type scriptedReader struct {
	chunks []string
	err    error
}

func (s *scriptedReader) Read(p []byte) (int, error) {
	if len(s.chunks) == 0 {
		return 0, s.err
	}
	n := copy(p, s.chunks[0])
	s.chunks = s.chunks[1:]
	return n, nil
}

func (s *scriptedReader) Close() error { return nil }

func TestRelayFlushesPartialRuneAtEndOfStream(t *testing.T) {
	src := &scriptedReader{chunks: []string{"ok\xe2\x82"}, err: syscall.EIO}
	sink := runRelay(t, src, 64)

	assert.Equal(t, "ok\uFFFD", sink.output(Topic("r")))
}

func TestRelaySkipsEmptyReads(t *testing.T) {
	src := io.NopCloser(strings.NewReader(""))
	sink := runRelay(t, src, 64)

	assert.Equal(t, 0, sink.count(Topic("r")))
}

func TestRelayChunksBySize(t *testing.T) {
	src := io.NopCloser(strings.NewReader(strings.Repeat("x", 100)))
	sink := runRelay(t, src, 16)

	require.Greater(t, sink.count(Topic("r")), 1)
	assert.Equal(t, strings.Repeat("x", 100), sink.output(Topic("r")))
}
