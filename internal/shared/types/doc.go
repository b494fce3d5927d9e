// Package types provides shared data structures for the termhost backend.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool: Service tool definition and parameters
//   - ParamError: Rejected tool parameters (matches ErrInvalidParams)
//   - Context: Execution context for operations
//   - Result: Standard operation result
//
// Request Types:
//   - ExecuteRequest: Service tool execution over REST
//   - WSMessage: WebSocket communication (invoke, listen, events)
//
// Example Usage:
//
//	result, err := registry.Execute(ctx, "terminal.write_to_shell", map[string]interface{}{
//	    "session_id": "abc",
//	    "data":       "ls -la\n",
//	}, nil)
package types
