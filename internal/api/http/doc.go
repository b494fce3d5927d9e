// Package http implements the REST surface of the terminal host.
//
// Terminal sessions can be driven directly (/terminal/sessions) or through
// the generic tool endpoint (/services/execute). Output is never returned
// over REST; it is streamed on the session topic via the /stream WebSocket.
//
// Error mapping:
//   - unknown session, service, tool or path: 404
//   - invalid parameters or tool ID: 400
//   - anything else: 500
package http
