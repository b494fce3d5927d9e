// Package server assembles the termhost process: configuration, logging,
// metrics, the event hub, the terminal manager, service providers and the
// gin router serving REST, websocket and /metrics.
package server
