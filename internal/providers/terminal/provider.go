//go:build !windows

package terminal

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/GriffinCanCode/termhost/internal/shared/types"
)

// Default dimensions when a caller omits them.
const (
	DefaultCols = 80
	DefaultRows = 24
)

// Provider exposes the Manager as service tools
type Provider struct {
	manager *Manager
	sink    Sink
}

// NewProvider creates a new terminal provider emitting output to sink
func NewProvider(manager *Manager, sink Sink) *Provider {
	return &Provider{
		manager: manager,
		sink:    sink,
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "terminal",
		Name:        "Terminal Service",
		Description: "Interactive shell sessions on pseudo-terminals with output streamed per session topic",
		Category:    types.CategoryTerminal,
		Capabilities: []string{
			"pty",
			"shell",
			"interactive",
			"sessions",
			"resize",
		},
		Tools: p.getTools(),
	}
}

// Execute routes to appropriate operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "terminal.spawn_shell":
		return p.spawnShell(params)
	case "terminal.write_to_shell":
		return p.writeToShell(params)
	case "terminal.resize_terminal":
		return p.resizeTerminal(params)
	case "terminal.close_session":
		return p.closeSession(params)
	case "terminal.list_sessions":
		return p.listSessions()
	default:
		return nil, types.UnknownTool(toolID)
	}
}

func (p *Provider) getTools() []types.Tool {
	sessionParam := types.Parameter{
		Name:        "session_id",
		Type:        "string",
		Description: "Terminal session ID",
		Required:    true,
	}

	return []types.Tool{
		{
			ID:          "terminal.spawn_shell",
			Name:        "Spawn Shell",
			Description: "Start a shell on a new PTY and stream its output on terminal-data-<session_id>",
			Parameters: []types.Parameter{
				{
					Name:        "session_id",
					Type:        "string",
					Description: "Session ID chosen by the caller. A UUID is generated when omitted",
					Required:    false,
				},
				{Name: "cols", Type: "number", Description: "Terminal width in columns. Defaults to 80", Required: false},
				{Name: "rows", Type: "number", Description: "Terminal height in rows. Defaults to 24", Required: false},
			},
			Returns: "session_info",
		},
		{
			ID:          "terminal.write_to_shell",
			Name:        "Write to Shell",
			Description: "Send input to a terminal session",
			Parameters: []types.Parameter{
				sessionParam,
				{Name: "data", Type: "string", Description: "Input to send to the shell", Required: true},
			},
			Returns: "success",
		},
		{
			ID:          "terminal.resize_terminal",
			Name:        "Resize Terminal",
			Description: "Change terminal dimensions",
			Parameters: []types.Parameter{
				sessionParam,
				{Name: "cols", Type: "number", Description: "New width in columns", Required: true},
				{Name: "rows", Type: "number", Description: "New height in rows", Required: true},
			},
			Returns: "success",
		},
		{
			ID:          "terminal.close_session",
			Name:        "Close Session",
			Description: "Remove a terminal session",
			Parameters:  []types.Parameter{sessionParam},
			Returns:     "success",
		},
		{
			ID:          "terminal.list_sessions",
			Name:        "List Sessions",
			Description: "List all terminal sessions",
			Parameters:  []types.Parameter{},
			Returns:     "sessions_list",
		},
	}
}

func (p *Provider) spawnShell(params map[string]interface{}) (*types.Result, error) {
	sessionID, _ := params["session_id"].(string)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	cols, err := dimension(params, "cols", DefaultCols)
	if err != nil {
		return nil, err
	}
	rows, err := dimension(params, "rows", DefaultRows)
	if err != nil {
		return nil, err
	}

	if err := p.manager.Create(sessionID, cols, rows, p.sink); err != nil {
		return nil, err
	}

	return types.Success(map[string]interface{}{
		"session_id": sessionID,
		"topic":      Topic(sessionID),
		"cols":       cols,
		"rows":       rows,
	}), nil
}

func (p *Provider) writeToShell(params map[string]interface{}) (*types.Result, error) {
	sessionID, ok := params["session_id"].(string)
	if !ok || sessionID == "" {
		return nil, types.InvalidParam("session_id is required")
	}

	data, ok := params["data"].(string)
	if !ok {
		return nil, types.InvalidParam("data is required")
	}

	if err := p.manager.Write(sessionID, []byte(data)); err != nil {
		return nil, err
	}

	return types.Success(map[string]interface{}{"success": true}), nil
}

func (p *Provider) resizeTerminal(params map[string]interface{}) (*types.Result, error) {
	sessionID, ok := params["session_id"].(string)
	if !ok || sessionID == "" {
		return nil, types.InvalidParam("session_id is required")
	}

	cols, err := dimension(params, "cols", -1)
	if err != nil {
		return nil, err
	}
	rows, err := dimension(params, "rows", -1)
	if err != nil {
		return nil, err
	}

	if err := p.manager.Resize(sessionID, cols, rows); err != nil {
		return nil, err
	}

	return types.Success(map[string]interface{}{"success": true}), nil
}

func (p *Provider) closeSession(params map[string]interface{}) (*types.Result, error) {
	sessionID, ok := params["session_id"].(string)
	if !ok || sessionID == "" {
		return nil, types.InvalidParam("session_id is required")
	}

	if err := p.manager.Close(sessionID); err != nil {
		return nil, err
	}

	return types.Success(map[string]interface{}{"success": true}), nil
}

func (p *Provider) listSessions() (*types.Result, error) {
	sessions := p.manager.List()

	return types.Success(map[string]interface{}{
		"sessions": sessions,
		"count":    len(sessions),
	}), nil
}

// dimension reads a terminal dimension. A negative fallback makes the
// parameter required.
func dimension(params map[string]interface{}, name string, fallback int) (uint16, error) {
	raw, present := params[name]
	if !present || raw == nil {
		if fallback < 0 {
			return 0, types.InvalidParam("%s is required", name)
		}
		return uint16(fallback), nil
	}

	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case uint16:
		return n, nil
	default:
		return 0, types.InvalidParam("%s must be a number", name)
	}

	if v < 0 || v > math.MaxUint16 || v != math.Trunc(v) {
		return 0, types.InvalidParam("%s must be an integer between 0 and %d", name, math.MaxUint16)
	}
	return uint16(v), nil
}
