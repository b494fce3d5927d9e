package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params"`
}

// CreateTerminalRequest is the REST body for creating a session
type CreateTerminalRequest struct {
	SessionID string `json:"session_id"`
	Cols      int    `json:"cols"`
	Rows      int    `json:"rows"`
}

// TerminalInputRequest is the REST body for writing to a session
type TerminalInputRequest struct {
	Data string `json:"data"`
}

// ResizeTerminalRequest is the REST body for resizing a session
type ResizeTerminalRequest struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// WebSocket message types
const (
	WSInvoke   = "invoke"
	WSListen   = "listen"
	WSUnlisten = "unlisten"
	WSPing     = "ping"
	WSPong     = "pong"
	WSResult   = "result"
	WSEvent    = "event"
	WSError    = "error"
	WSSystem   = "system"
)

// WSMessage represents a client WebSocket message
type WSMessage struct {
	Type   string                 `json:"type"`
	ID     string                 `json:"id,omitempty"`
	Tool   string                 `json:"tool,omitempty"`
	Topic  string                 `json:"topic,omitempty"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// WSReply represents a server WebSocket message
type WSReply struct {
	Type    string                 `json:"type"`
	ID      string                 `json:"id,omitempty"`
	Topic   string                 `json:"topic,omitempty"`
	Payload string                 `json:"payload,omitempty"`
	Success *bool                  `json:"success,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Message string                 `json:"message,omitempty"`
}
