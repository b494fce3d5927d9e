//go:build !windows

package terminal

import "errors"

// Error kinds returned by the Manager. Callers match them with errors.Is;
// the returned errors wrap these with the session identifier and the cause.
var (
	ErrPtyAllocation   = errors.New("pty allocation failed")
	ErrSpawnFailure    = errors.New("shell spawn failed")
	ErrSessionNotFound = errors.New("session not found")
	ErrWriteFailure    = errors.New("write to session failed")
	ErrResizeFailure   = errors.New("resize failed")
)
