//go:build !windows

package terminal

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// attachTerminal makes the child a session leader whose controlling terminal
// is its stdin.
func attachTerminal(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true
	cmd.SysProcAttr.Setctty = true
}

// dupFile returns an independent handle on the same open file description,
// so the writer and the relay's reader can be released separately.
func dupFile(f *os.File) (*os.File, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return nil, err
	}

	var (
		nfd    int
		dupErr error
	)
	if err := rc.Control(func(fd uintptr) {
		nfd, dupErr = unix.FcntlInt(fd, unix.F_DUPFD_CLOEXEC, 0)
	}); err != nil {
		return nil, err
	}
	if dupErr != nil {
		return nil, dupErr
	}

	return os.NewFile(uintptr(nfd), f.Name()), nil
}

// isEndOfStream reports whether a master read error means the slave is gone.
// Linux returns EIO rather than EOF once every slave handle is closed.
func isEndOfStream(err error) bool {
	return errors.Is(err, unix.EIO) || errors.Is(err, os.ErrClosed)
}
