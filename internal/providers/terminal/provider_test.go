//go:build !windows

package terminal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/termhost/internal/shared/types"
)

func newTestProvider(t *testing.T) (*Provider, *Manager, *recordingSink) {
	t.Helper()
	m := newTestManager(t, "/bin/sh")
	sink := newRecordingSink()
	return NewProvider(m, sink), m, sink
}

func TestProviderDefinition(t *testing.T) {
	p, _, _ := newTestProvider(t)

	def := p.Definition()
	assert.Equal(t, "terminal", def.ID)
	assert.Equal(t, types.CategoryTerminal, def.Category)
	require.Len(t, def.Tools, 5)

	ids := make([]string, 0, len(def.Tools))
	for _, tool := range def.Tools {
		ids = append(ids, tool.ID)
	}
	assert.ElementsMatch(t, []string{
		"terminal.spawn_shell",
		"terminal.write_to_shell",
		"terminal.resize_terminal",
		"terminal.close_session",
		"terminal.list_sessions",
	}, ids)
}

func TestProviderSessionLifecycle(t *testing.T) {
	p, m, sink := newTestProvider(t)
	ctx := context.Background()

	result, err := p.Execute(ctx, "terminal.spawn_shell", map[string]interface{}{
		"session_id": "tool",
		"cols":       float64(100),
		"rows":       float64(30),
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "terminal-data-tool", result.Data["topic"])
	assert.Equal(t, uint16(100), result.Data["cols"])

	result, err = p.Execute(ctx, "terminal.write_to_shell", map[string]interface{}{
		"session_id": "tool",
		"data":       "echo via_$((2*21))\n",
	}, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Eventually(t, sink.contains(Topic("tool"), "via_42"), waitTimeout, 20*time.Millisecond)

	result, err = p.Execute(ctx, "terminal.list_sessions", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Data["count"])

	result, err = p.Execute(ctx, "terminal.resize_terminal", map[string]interface{}{
		"session_id": "tool",
		"cols":       120,
		"rows":       40,
	}, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)

	info, err := m.Get("tool")
	require.NoError(t, err)
	assert.Equal(t, uint16(120), info.Cols)

	result, err = p.Execute(ctx, "terminal.close_session", map[string]interface{}{"session_id": "tool"}, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 0, m.Count())
}

func TestProviderSpawnGeneratesSessionID(t *testing.T) {
	p, m, _ := newTestProvider(t)

	result, err := p.Execute(context.Background(), "terminal.spawn_shell", nil, nil)
	require.NoError(t, err)

	id, ok := result.Data["session_id"].(string)
	require.True(t, ok)
	assert.Len(t, id, 36)

	info, err := m.Get(id)
	require.NoError(t, err)
	assert.Equal(t, uint16(DefaultCols), info.Cols)
	assert.Equal(t, uint16(DefaultRows), info.Rows)
}

func TestProviderWriteUnknownSession(t *testing.T) {
	p, _, _ := newTestProvider(t)

	_, err := p.Execute(context.Background(), "terminal.write_to_shell", map[string]interface{}{
		"session_id": "ghost",
		"data":       "ls\n",
	}, nil)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestProviderMissingParameters(t *testing.T) {
	p, _, _ := newTestProvider(t)
	ctx := context.Background()

	_, err := p.Execute(ctx, "terminal.write_to_shell", map[string]interface{}{"data": "x"}, nil)
	assert.EqualError(t, err, "session_id is required")

	_, err = p.Execute(ctx, "terminal.write_to_shell", map[string]interface{}{"session_id": "x"}, nil)
	assert.EqualError(t, err, "data is required")

	_, err = p.Execute(ctx, "terminal.resize_terminal", map[string]interface{}{"session_id": "x", "cols": 80}, nil)
	assert.EqualError(t, err, "rows is required")

	_, err = p.Execute(ctx, "terminal.close_session", map[string]interface{}{}, nil)
	assert.EqualError(t, err, "session_id is required")
	assert.ErrorIs(t, err, types.ErrInvalidParams)
}

func TestProviderUnknownTool(t *testing.T) {
	p, _, _ := newTestProvider(t)

	_, err := p.Execute(context.Background(), "terminal.unknown", nil, nil)
	assert.EqualError(t, err, "unknown tool: terminal.unknown")
	assert.ErrorIs(t, err, types.ErrUnknownTool)
}

func TestDimension(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]interface{}
		fallback int
		want     uint16
		wantErr  bool
	}{
		{name: "float", params: map[string]interface{}{"cols": float64(132)}, fallback: 80, want: 132},
		{name: "int", params: map[string]interface{}{"cols": 90}, fallback: 80, want: 90},
		{name: "int64", params: map[string]interface{}{"cols": int64(91)}, fallback: 80, want: 91},
		{name: "uint16", params: map[string]interface{}{"cols": uint16(92)}, fallback: 80, want: 92},
		{name: "zero", params: map[string]interface{}{"cols": 0}, fallback: 80, want: 0},
		{name: "max", params: map[string]interface{}{"cols": 65535}, fallback: 80, want: 65535},
		{name: "missing uses fallback", params: map[string]interface{}{}, fallback: 80, want: 80},
		{name: "nil uses fallback", params: map[string]interface{}{"cols": nil}, fallback: 80, want: 80},
		{name: "missing required", params: map[string]interface{}{}, fallback: -1, wantErr: true},
		{name: "negative", params: map[string]interface{}{"cols": -1}, fallback: 80, wantErr: true},
		{name: "too large", params: map[string]interface{}{"cols": 70000}, fallback: 80, wantErr: true},
		{name: "fraction", params: map[string]interface{}{"cols": 80.5}, fallback: 80, wantErr: true},
		{name: "string", params: map[string]interface{}{"cols": "80"}, fallback: 80, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dimension(tt.params, "cols", tt.fallback)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
