//go:build !windows

package terminal

import (
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/creack/pty"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/termhost/internal/infrastructure/logging"
	"github.com/GriffinCanCode/termhost/internal/infrastructure/monitoring"
)

// Config controls how sessions are spawned and torn down.
type Config struct {
	// Shell overrides DetectShell when non-empty.
	Shell string
	// Term is exported to the child as TERM.
	Term string
	// WorkingDir is the child's initial directory; empty inherits ours.
	WorkingDir string
	// ReadBufferSize is the relay's read chunk size.
	ReadBufferSize int
	// ResizeEnabled applies Resize to the PTY. When false Resize only logs.
	ResizeEnabled bool
	// KillOnClose kills the child when its session is closed or replaced.
	KillOnClose bool
}

// DefaultConfig returns the configuration matching the desktop app.
func DefaultConfig() Config {
	return Config{
		Term:           "xterm-256color",
		ReadBufferSize: defaultReadBuffer,
		ResizeEnabled:  true,
	}
}

// Manager owns the session table and routes I/O to PTY sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session

	cfg     Config
	backend Backend
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewManager creates a session manager using the native PTY backend.
func NewManager(cfg Config, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*session),
		cfg:      cfg,
		backend:  NativeBackend{},
		logger:   logger.Component("terminal"),
	}
}

// WithBackend swaps the PTY backend.
func (m *Manager) WithBackend(backend Backend) *Manager {
	m.backend = backend
	return m
}

// WithMetrics attaches a metrics collector.
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Create opens a PTY of the given size, starts a shell on it and registers
// the session under sessionID, replacing any previous entry. Output is
// emitted to sink under Topic(sessionID).
func (m *Manager) Create(sessionID string, cols, rows uint16, sink Sink) error {
	log := m.logger.Session(sessionID)
	size := Size{Cols: cols, Rows: rows}

	pair, err := m.backend.Open(size)
	if err != nil {
		m.recordFailure("pty_allocation")
		return fmt.Errorf("%w: %w", ErrPtyAllocation, err)
	}

	shell, err := DetectShell(m.cfg.Shell)
	if err != nil {
		pair.Close()
		m.recordFailure("spawn")
		return fmt.Errorf("%w: %w", ErrSpawnFailure, err)
	}

	cmd := exec.Command(shell)
	cmd.Env = shellEnv(m.cfg.Term)
	cmd.Dir = m.cfg.WorkingDir

	if err := pair.Spawn(cmd); err != nil {
		pair.Close()
		m.recordFailure("spawn")
		return fmt.Errorf("%w: %s: %w", ErrSpawnFailure, shell, err)
	}

	if err := pair.ReleaseSlave(); err != nil {
		log.Warn("Failed to release slave handle", zap.Error(err))
	}

	input, err := dupFile(pair.Master)
	if err != nil {
		pair.Master.Close()
		cmd.Process.Kill()
		go cmd.Wait()
		m.recordFailure("pty_allocation")
		return fmt.Errorf("%w: duplicate master: %w", ErrPtyAllocation, err)
	}

	rl := newRelay(sessionID, pair.Master, sink, m.cfg.ReadBufferSize, log, m.metrics)
	go rl.run()

	sess := &session{
		id:        sessionID,
		shell:     shell,
		size:      size,
		startedAt: time.Now(),
		input:     input,
		relay:     rl,
		process:   cmd.Process,
	}

	m.mu.Lock()
	prev := m.sessions[sessionID]
	m.sessions[sessionID] = sess
	m.publishActive()
	m.mu.Unlock()

	if prev != nil {
		log.Info("Replacing existing session", zap.Int("previous_pid", prev.process.Pid))
		m.release(prev)
	}

	go m.reap(sessionID, cmd)

	if m.metrics != nil {
		m.metrics.IncSessionsCreated()
	}

	log.Info("Spawned shell",
		zap.String("shell", shell),
		zap.Int("pid", cmd.Process.Pid),
		zap.Uint16("cols", cols),
		zap.Uint16("rows", rows),
	)
	return nil
}

// Write sends data to the session's input. The table lock is held for the
// whole write, so writes to one session never interleave.
func (m *Manager) Write(sessionID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	// os.File is unbuffered: a returned Write has reached the PTY.
	if _, err := sess.input.Write(data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailure, sessionID, err)
	}

	if m.metrics != nil {
		m.metrics.AddInputBytes(len(data))
	}
	return nil
}

// Resize changes the PTY window size. Unknown sessions are a logged no-op,
// as is every call when resizing is disabled.
func (m *Manager) Resize(sessionID string, cols, rows uint16) error {
	log := m.logger.Session(sessionID)

	if !m.cfg.ResizeEnabled {
		log.Info("Resize requested", zap.Uint16("cols", cols), zap.Uint16("rows", rows))
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		log.Debug("Resize for unknown session ignored")
		return nil
	}

	if err := pty.Setsize(sess.input, &pty.Winsize{Cols: cols, Rows: rows}); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrResizeFailure, sessionID, err)
	}
	sess.size = Size{Cols: cols, Rows: rows}

	log.Debug("Resized session", zap.Uint16("cols", cols), zap.Uint16("rows", rows))
	return nil
}

// Close removes the session. Removing an unknown session is not an error.
// The shell and relay keep running until the shell exits on its own unless
// KillOnClose is set.
func (m *Manager) Close(sessionID string) error {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
		m.publishActive()
	}
	m.mu.Unlock()

	if !ok {
		m.logger.Session(sessionID).Debug("Close for unknown session ignored")
		return nil
	}

	m.release(sess)

	m.logger.Session(sessionID).Info("Closed session")
	return nil
}

// CloseAll closes every session. Used on shutdown.
func (m *Manager) CloseAll() error {
	var errs []error
	for _, id := range m.ids() {
		errs = append(errs, m.Close(id))
	}
	return errors.Join(errs...)
}

// Get returns information about one session.
func (m *Manager) Get(sessionID string) (SessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return SessionInfo{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return sess.info(), nil
}

// List returns all sessions in the table, ordered by start time.
func (m *Manager) List() []SessionInfo {
	m.mu.Lock()
	infos := make([]SessionInfo, 0, len(m.sessions))
	for _, sess := range m.sessions {
		infos = append(infos, sess.info())
	}
	m.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].StartedAt.Before(infos[j].StartedAt)
	})
	return infos
}

// Count returns the number of sessions in the table.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) ids() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// release drops a session that is no longer in the table.
func (m *Manager) release(sess *session) {
	log := m.logger.Session(sess.id)

	if err := sess.input.Close(); err != nil {
		log.Warn("Failed to close session input", zap.Error(err))
	}

	if m.cfg.KillOnClose && sess.process != nil {
		if err := sess.process.Kill(); err != nil {
			log.Debug("Kill on close", zap.Int("pid", sess.process.Pid), zap.Error(err))
		}
	}
}

// reap waits for the shell so it never lingers as a zombie. The exit status
// only feeds logs and metrics.
func (m *Manager) reap(sessionID string, cmd *exec.Cmd) {
	err := cmd.Wait()

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	if m.metrics != nil {
		m.metrics.RecordProcessExit(outcome)
	}

	m.logger.Session(sessionID).Debug("Shell exited",
		zap.Int("pid", cmd.Process.Pid),
		zap.NamedError("status", err),
	)
}

// publishActive sets the active-session gauge. Callers hold m.mu, so the
// last value published always matches the table.
func (m *Manager) publishActive() {
	if m.metrics != nil {
		m.metrics.SetSessionsActive(len(m.sessions))
	}
}

func (m *Manager) recordFailure(reason string) {
	if m.metrics != nil {
		m.metrics.IncSessionsFailed(reason)
	}
}
