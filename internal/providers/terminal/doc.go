//go:build !windows

// Package terminal manages interactive shell sessions on pseudo-terminals.
//
// A Manager owns one session table keyed by caller-chosen identifiers. Each
// session pairs a PTY with a shell process and runs two goroutines: a relay
// that copies decoded output to a Sink under the topic
// "terminal-data-<session_id>", and a reaper that waits on the shell.
//
// Lifecycle:
//   - Create opens a PTY, spawns the shell, starts relay and reaper, and
//     inserts the session (last write wins on an existing identifier)
//   - Write routes bytes to the session's input under the table lock
//   - Resize applies a new window size (or only logs, when disabled)
//   - Close drops the session's input handle; the shell and relay run until
//     the shell exits unless Config.KillOnClose is set
//
// Relay and reaper are not tied to table membership. A session whose shell
// has exited stays in the table, still accepting writes, until closed.
//
// The package builds only on Unix-like systems; Windows has no PTY backend.
//
// Tools:
//   - terminal.spawn_shell
//   - terminal.write_to_shell
//   - terminal.resize_terminal
//   - terminal.close_session
//   - terminal.list_sessions
package terminal
