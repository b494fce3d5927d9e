package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
	Terminal   TerminalConfig
	Events     EventsConfig
	Filesystem FilesystemConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
	// CORSOrigins lists browser origins allowed to call the API and open
	// /stream. Same-host pages are always allowed; "*" allows any page.
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"tauri://localhost,http://localhost:1420,http://127.0.0.1:1420"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// TerminalConfig holds PTY session configuration.
type TerminalConfig struct {
	// Shell overrides shell detection when set.
	Shell         string `envconfig:"TERMINAL_SHELL"`
	Term          string `envconfig:"TERMINAL_TERM" default:"xterm-256color"`
	WorkingDir    string `envconfig:"TERMINAL_WORKDIR"`
	ReadBuffer    int    `envconfig:"TERMINAL_READ_BUFFER" default:"8192"`
	ResizeEnabled bool   `envconfig:"TERMINAL_RESIZE_ENABLED" default:"true"`
	KillOnClose   bool   `envconfig:"TERMINAL_KILL_ON_CLOSE" default:"false"`
}

// EventsConfig holds event hub configuration.
type EventsConfig struct {
	Buffer int `envconfig:"EVENTS_BUFFER" default:"256"`
}

// FilesystemConfig holds file browsing configuration.
type FilesystemConfig struct {
	MaxDepth int      `envconfig:"FS_MAX_DEPTH" default:"5"`
	Ignore   []string `envconfig:"FS_IGNORE" default:".*,node_modules,target,dist"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// DefaultOrigins returns the desktop shell and its dev server origins.
func DefaultOrigins() []string {
	return []string{"tauri://localhost", "http://localhost:1420", "http://127.0.0.1:1420"}
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8000",
			Host:        "127.0.0.1",
			CORSOrigins: DefaultOrigins(),
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Terminal: TerminalConfig{
			Term:          "xterm-256color",
			ReadBuffer:    8192,
			ResizeEnabled: true,
			KillOnClose:   false,
		},
		Events: EventsConfig{
			Buffer: 256,
		},
		Filesystem: FilesystemConfig{
			MaxDepth: 5,
			Ignore:   []string{".*", "node_modules", "target", "dist"},
		},
	}
}
