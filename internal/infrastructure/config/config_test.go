package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, []string{"tauri://localhost", "http://localhost:1420", "http://127.0.0.1:1420"}, cfg.Server.CORSOrigins)
	assert.NotContains(t, cfg.Server.CORSOrigins, "*")

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	// Terminal config
	assert.Empty(t, cfg.Terminal.Shell)
	assert.Equal(t, "xterm-256color", cfg.Terminal.Term)
	assert.Equal(t, 8192, cfg.Terminal.ReadBuffer)
	assert.True(t, cfg.Terminal.ResizeEnabled)
	assert.False(t, cfg.Terminal.KillOnClose)

	assert.Equal(t, 256, cfg.Events.Buffer)
	assert.Equal(t, 5, cfg.Filesystem.MaxDepth)
	assert.Equal(t, []string{".*", "node_modules", "target", "dist"}, cfg.Filesystem.Ignore)
}

func TestLoadMatchesDefault(t *testing.T) {
	for _, key := range []string{"PORT", "HOST", "LOG_LEVEL", "LOG_DEV", "TERMINAL_SHELL", "TERMINAL_WORKDIR", "CORS_ORIGINS"} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                    "9000",
		"HOST":                    "0.0.0.0",
		"LOG_LEVEL":               "debug",
		"LOG_DEV":                 "true",
		"RATE_LIMIT_RPS":          "500",
		"RATE_LIMIT_BURST":        "1000",
		"RATE_LIMIT_ENABLED":      "false",
		"TERMINAL_SHELL":          "/bin/sh",
		"CORS_ORIGINS":            "http://localhost:1420,tauri://localhost",
		"TERMINAL_TERM":           "xterm",
		"TERMINAL_WORKDIR":        "/tmp",
		"TERMINAL_READ_BUFFER":    "1024",
		"TERMINAL_RESIZE_ENABLED": "false",
		"TERMINAL_KILL_ON_CLOSE":  "true",
		"EVENTS_BUFFER":           "16",
		"FS_MAX_DEPTH":            "2",
		"FS_IGNORE":               "vendor,*.log",
	}

	for key, value := range envVars {
		err := os.Setenv(key, value)
		require.NoError(t, err)
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"http://localhost:1420", "tauri://localhost"}, cfg.Server.CORSOrigins)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)

	assert.Equal(t, "/bin/sh", cfg.Terminal.Shell)
	assert.Equal(t, "xterm", cfg.Terminal.Term)
	assert.Equal(t, "/tmp", cfg.Terminal.WorkingDir)
	assert.Equal(t, 1024, cfg.Terminal.ReadBuffer)
	assert.False(t, cfg.Terminal.ResizeEnabled)
	assert.True(t, cfg.Terminal.KillOnClose)

	assert.Equal(t, 16, cfg.Events.Buffer)
	assert.Equal(t, 2, cfg.Filesystem.MaxDepth)
	assert.Equal(t, []string{"vendor", "*.log"}, cfg.Filesystem.Ignore)
}

func TestLoadInvalidValue(t *testing.T) {
	require.NoError(t, os.Setenv("TERMINAL_READ_BUFFER", "lots"))
	defer os.Unsetenv("TERMINAL_READ_BUFFER")

	_, err := Load()
	assert.Error(t, err)

	// LoadOrDefault falls back instead of failing
	cfg := LoadOrDefault()
	assert.Equal(t, 8192, cfg.Terminal.ReadBuffer)
}

func TestTerminalConfig(t *testing.T) {
	tests := []struct {
		name        string
		resize      string
		killOnClose string
		wantResize  bool
		wantKill    bool
	}{
		{
			name:       "default values",
			wantResize: true,
			wantKill:   false,
		},
		{
			name:       "parity no-op resize",
			resize:     "false",
			wantResize: false,
			wantKill:   false,
		},
		{
			name:        "terminate on close",
			killOnClose: "true",
			wantResize:  true,
			wantKill:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("TERMINAL_RESIZE_ENABLED")
			os.Unsetenv("TERMINAL_KILL_ON_CLOSE")

			if tt.resize != "" {
				require.NoError(t, os.Setenv("TERMINAL_RESIZE_ENABLED", tt.resize))
				defer os.Unsetenv("TERMINAL_RESIZE_ENABLED")
			}
			if tt.killOnClose != "" {
				require.NoError(t, os.Setenv("TERMINAL_KILL_ON_CLOSE", tt.killOnClose))
				defer os.Unsetenv("TERMINAL_KILL_ON_CLOSE")
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantResize, cfg.Terminal.ResizeEnabled)
			assert.Equal(t, tt.wantKill, cfg.Terminal.KillOnClose)
		})
	}
}

func TestLoggingConfig(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		dev       string
		wantLevel string
		wantDev   bool
	}{
		{
			name:      "default values",
			wantLevel: "info",
			wantDev:   false,
		},
		{
			name:      "debug level",
			level:     "debug",
			wantLevel: "debug",
			wantDev:   false,
		},
		{
			name:      "development mode",
			dev:       "true",
			wantLevel: "info",
			wantDev:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("LOG_LEVEL")
			os.Unsetenv("LOG_DEV")

			if tt.level != "" {
				require.NoError(t, os.Setenv("LOG_LEVEL", tt.level))
				defer os.Unsetenv("LOG_LEVEL")
			}
			if tt.dev != "" {
				require.NoError(t, os.Setenv("LOG_DEV", tt.dev))
				defer os.Unsetenv("LOG_DEV")
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantLevel, cfg.Logging.Level)
			assert.Equal(t, tt.wantDev, cfg.Logging.Development)
		})
	}
}
