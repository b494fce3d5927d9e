// Package config provides 12-factor configuration management for termhost.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags in cmd/server can override environment variables.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Terminal: Shell, TERM value, read buffer, resize and close policy
//   - Events: Per-subscriber event buffer
//   - Filesystem: Directory tree depth and ignore globs
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - TERMINAL_SHELL, TERMINAL_TERM, TERMINAL_WORKDIR, TERMINAL_READ_BUFFER
//   - TERMINAL_RESIZE_ENABLED, TERMINAL_KILL_ON_CLOSE
//   - EVENTS_BUFFER, FS_MAX_DEPTH, FS_IGNORE
package config
