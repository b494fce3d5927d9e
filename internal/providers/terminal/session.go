//go:build !windows

package terminal

import (
	"os"
	"time"
)

// session is one entry of the session table. The table entry exclusively
// owns input; the relay owns the read side independently.
type session struct {
	id        string
	shell     string
	size      Size
	startedAt time.Time

	input   *os.File
	relay   *relay
	process *os.Process
}

func (s *session) info() SessionInfo {
	info := SessionInfo{
		ID:          s.id,
		Shell:       s.shell,
		Cols:        s.size.Cols,
		Rows:        s.size.Rows,
		StartedAt:   s.startedAt,
		RelayActive: s.relay.active(),
	}
	if s.process != nil {
		info.PID = s.process.Pid
	}
	return info
}

// SessionInfo is the public representation of a session
type SessionInfo struct {
	ID          string    `json:"id"`
	Shell       string    `json:"shell"`
	Cols        uint16    `json:"cols"`
	Rows        uint16    `json:"rows"`
	PID         int       `json:"pid"`
	StartedAt   time.Time `json:"started_at"`
	RelayActive bool      `json:"relay_active"`
}
