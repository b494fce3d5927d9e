//go:build !windows

package terminal

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// posixShells are tried in order when $SHELL is unset or unusable.
var posixShells = []string{
	"/bin/bash",
	"/bin/zsh",
	"/bin/sh",
}

// DetectShell picks the shell for a new session. A non-empty override wins
// and may be a bare command name resolved through PATH. Otherwise $SHELL is
// used when executable, then the first of posixShells found.
func DetectShell(override string) (string, error) {
	if override != "" {
		path, err := exec.LookPath(override)
		if err != nil {
			return "", fmt.Errorf("configured shell %q: %w", override, err)
		}
		return path, nil
	}

	if shell := os.Getenv("SHELL"); shell != "" && isExecutable(shell) {
		return shell, nil
	}

	for _, candidate := range posixShells {
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no shell found: checked $SHELL, %s", strings.Join(posixShells, ", "))
}

// isExecutable checks if path is a regular file with an execute bit set.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	mode := info.Mode()
	return mode.IsRegular() && mode&0111 != 0
}

// shellEnv returns the parent environment with TERM replaced by term.
func shellEnv(term string) []string {
	parent := os.Environ()
	env := make([]string, 0, len(parent)+1)
	for _, kv := range parent {
		if strings.HasPrefix(kv, "TERM=") {
			continue
		}
		env = append(env, kv)
	}
	if term != "" {
		env = append(env, "TERM="+term)
	}
	return env
}
