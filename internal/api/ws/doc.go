// Package ws serves the /stream WebSocket used by terminal frontends.
//
// One socket carries both directions: tool invocations with their results,
// and event subscriptions that stream session output.
//
// Message Types (Client → Server):
//   - invoke: run a tool {"id", "tool", "params"}
//   - listen: subscribe to a topic, e.g. terminal-data-<session_id>
//   - unlisten: drop a subscription
//   - ping: keep-alive
//
// Message Types (Server → Client):
//   - system: greeting carrying the connection ID
//   - result: outcome of an invoke, matched by id
//   - event: {"topic", "payload"} output chunk
//   - pong: reply to ping
//   - error: malformed or unknown message
//
// Invocations from one connection run in arrival order. Subscriptions end
// with the connection.
//
// Example Usage:
//
//	handler := ws.NewHandler(registry, hub, logger)
//	router.GET("/stream", handler.HandleConnection)
package ws
