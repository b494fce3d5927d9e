package http

import (
	"time"

	"github.com/GriffinCanCode/termhost/internal/infrastructure/monitoring"
)

// HandlerMetrics records REST operations that bypass the service registry
type HandlerMetrics struct {
	metrics *monitoring.Metrics
}

// NewHandlerMetrics creates a metrics wrapper. A nil collector disables it.
func NewHandlerMetrics(metrics *monitoring.Metrics) *HandlerMetrics {
	return &HandlerMetrics{metrics: metrics}
}

// TrackTerminalOperation starts timing a terminal operation. The returned
// func records it with the outcome.
func (hm *HandlerMetrics) TrackTerminalOperation(operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		if hm == nil || hm.metrics == nil {
			return
		}
		status := "success"
		if err != nil {
			status = "error"
		}
		hm.metrics.RecordServiceCall("terminal_rest", operation, status, time.Since(start))
	}
}
