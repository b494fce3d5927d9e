//go:build !windows

package terminal

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size is a terminal size in character cells.
type Size struct {
	Cols uint16 `json:"cols"`
	Rows uint16 `json:"rows"`
}

// Backend allocates PTY pairs.
type Backend interface {
	Open(size Size) (*Pair, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(size Size) (*Pair, error)

// Open calls f(size).
func (f BackendFunc) Open(size Size) (*Pair, error) {
	return f(size)
}

// Pair is a freshly opened master/slave pseudo-terminal.
type Pair struct {
	Master *os.File
	Slave  *os.File
}

// NativeBackend opens PTYs through the host OS.
type NativeBackend struct{}

// Open allocates a pair and applies size. Zero dimensions are passed through.
func (NativeBackend) Open(size Size) (*Pair, error) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, err
	}

	if err := pty.Setsize(ptmx, &pty.Winsize{Cols: size.Cols, Rows: size.Rows}); err != nil {
		ptmx.Close()
		tty.Close()
		return nil, fmt.Errorf("set initial size: %w", err)
	}

	return &Pair{Master: ptmx, Slave: tty}, nil
}

// Spawn starts cmd with the slave side as its stdio and controlling terminal.
func (p *Pair) Spawn(cmd *exec.Cmd) error {
	cmd.Stdin = p.Slave
	cmd.Stdout = p.Slave
	cmd.Stderr = p.Slave
	attachTerminal(cmd)
	return cmd.Start()
}

// ReleaseSlave drops this process's handle on the slave. The child keeps its
// own copy; holding ours would keep the master from ever seeing end-of-stream.
func (p *Pair) ReleaseSlave() error {
	if p.Slave == nil {
		return nil
	}
	err := p.Slave.Close()
	p.Slave = nil
	return err
}

// Close releases both sides.
func (p *Pair) Close() error {
	var errs []error
	if p.Master != nil {
		errs = append(errs, p.Master.Close())
	}
	errs = append(errs, p.ReleaseSlave())
	return errors.Join(errs...)
}
