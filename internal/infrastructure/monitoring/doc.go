/*
Package monitoring provides Prometheus metrics for termhost.

# Overview

Metrics cover HTTP requests, service tool calls, PTY session lifecycle,
relayed bytes, event delivery and WebSocket traffic. Every Metrics value owns
its own registry.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "terminal", "terminal.spawn_shell")
	// ... perform operation ...
	timer.Stop("success")
*/
package monitoring
