// Package filesystem provides local file access for the terminal host.
//
// This package is organized into small modules:
//   - directory: bounded directory tree for file explorers
//   - basic: whole-file read and write
//   - metadata: size, permissions, MIME type and charset
//   - formats: structured reads (JSON, YAML, TOML)
//
// Directory trees stop descending at a configured depth and skip names
// matching ignore globs (dotfiles, node_modules, target and dist by
// default). Entries are ordered directories first, then by name ignoring
// case.
//
// Example Usage:
//
//	fsys := filesystem.NewProvider(filesystem.DefaultConfig(), logger)
//	tree, err := fsys.ReadDirectory(ctx, "/home/me/project")
package filesystem
