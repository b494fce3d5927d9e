package filesystem

import (
	"errors"
	"time"
)

// Defaults for directory trees.
const (
	DefaultMaxDepth = 5
)

// DefaultIgnore lists the name globs skipped by ReadDirectory.
var DefaultIgnore = []string{".*", "node_modules", "target", "dist"}

// ErrNotDirectory is returned when a tree is requested for a regular file.
var ErrNotDirectory = errors.New("path is not a directory")

// Config tunes directory listing.
type Config struct {
	// MaxDepth is the deepest level listed below the root; the root's own
	// entries are level 0.
	MaxDepth int
	// Ignore holds doublestar globs matched against entry names.
	Ignore []string
}

// DefaultConfig returns the settings used by the desktop app.
func DefaultConfig() Config {
	return Config{
		MaxDepth: DefaultMaxDepth,
		Ignore:   append([]string(nil), DefaultIgnore...),
	}
}

// Node is one entry of a directory tree
type Node struct {
	Name        string  `json:"name"`
	Path        string  `json:"path"`
	IsDirectory bool    `json:"is_directory"`
	Children    []*Node `json:"children,omitempty"`
}

// FileInfo represents file metadata
type FileInfo struct {
	Size        int64     `json:"size"`
	IsDirectory bool      `json:"is_directory"`
	IsReadonly  bool      `json:"is_readonly"`
	Modified    time.Time `json:"modified"`
	MimeType    string    `json:"mime_type,omitempty"`
	Charset     string    `json:"charset,omitempty"`
}
