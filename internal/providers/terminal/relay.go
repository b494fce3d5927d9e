//go:build !windows

package terminal

import (
	"errors"
	"io"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/GriffinCanCode/termhost/internal/infrastructure/logging"
	"github.com/GriffinCanCode/termhost/internal/infrastructure/monitoring"
)

const defaultReadBuffer = 8192

// relay copies PTY output to a Sink until the stream ends. It is never
// cancelled: it stops on end-of-stream or on the first read error, and it
// does not touch the session table on the way out.
type relay struct {
	topic   string
	src     io.ReadCloser
	sink    Sink
	bufSize int
	done    chan struct{}
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

func newRelay(sessionID string, src io.ReadCloser, sink Sink, bufSize int, logger *logging.Logger, metrics *monitoring.Metrics) *relay {
	if bufSize <= 0 {
		bufSize = defaultReadBuffer
	}
	return &relay{
		topic:   Topic(sessionID),
		src:     src,
		sink:    sink,
		bufSize: bufSize,
		done:    make(chan struct{}),
		logger:  logger,
		metrics: metrics,
	}
}

// run is the relay goroutine body.
func (r *relay) run() {
	defer close(r.done)
	defer r.src.Close()

	// Invalid UTF-8 becomes U+FFFD; sequences split across reads are held
	// back until the rest arrives, or flushed as U+FFFD at end of stream.
	reader := transform.NewReader(eofReader{r.src}, unicode.UTF8.NewDecoder())
	buf := make([]byte, r.bufSize)

	for {
		n, err := reader.Read(buf)
		if n > 0 {
			r.sink.Emit(r.topic, string(buf[:n]))
			if r.metrics != nil {
				r.metrics.RecordOutputChunk(n)
			}
		}
		if err != nil {
			r.finish(err)
			return
		}
	}
}

// eofReader reports PTY end-of-stream as io.EOF. The decoder only flushes a
// held partial sequence on io.EOF; any other error discards it.
type eofReader struct {
	io.Reader
}

func (e eofReader) Read(p []byte) (int, error) {
	n, err := e.Reader.Read(p)
	if err != nil && isEndOfStream(err) {
		err = io.EOF
	}
	return n, err
}

func (r *relay) finish(err error) {
	reason := monitoring.RelayEOF
	if !errors.Is(err, io.EOF) && !isEndOfStream(err) {
		reason = monitoring.RelayError
		r.logger.Warn("Relay stopped on read error", zap.Error(err))
	} else {
		r.logger.Debug("Relay reached end of stream")
	}
	if r.metrics != nil {
		r.metrics.RecordRelayExit(reason)
	}
}

// active reports whether the relay is still reading.
func (r *relay) active() bool {
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}
