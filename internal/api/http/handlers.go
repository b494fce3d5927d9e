package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/termhost/internal/api/middleware"
	"github.com/GriffinCanCode/termhost/internal/infrastructure/logging"
	"github.com/GriffinCanCode/termhost/internal/providers/terminal"
	"github.com/GriffinCanCode/termhost/internal/service"
	"github.com/GriffinCanCode/termhost/internal/shared/types"
	"github.com/GriffinCanCode/termhost/internal/shared/utils"
)

// Version is reported by Root.
const Version = "0.1.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry  *service.Registry
	terminals *terminal.Manager
	sink      terminal.Sink
	metrics   *HandlerMetrics
	logger    *logging.Logger
	startedAt time.Time
}

// NewHandlers creates a new handler set. Sessions created over REST emit
// their output to sink.
func NewHandlers(
	registry *service.Registry,
	terminals *terminal.Manager,
	sink terminal.Sink,
	metrics *HandlerMetrics,
	logger *logging.Logger,
) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		registry:  registry,
		terminals: terminals,
		sink:      sink,
		metrics:   metrics,
		logger:    logger.Component("http"),
		startedAt: time.Now(),
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "termhost",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"uptime_seconds":   int64(time.Since(h.startedAt).Seconds()),
		"service_registry": h.registry.Stats(),
		"terminal":         gin.H{"sessions": h.terminals.Count()},
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")
	if err := utils.ValidateCategory(categoryStr, false); err != nil {
		badRequest(c, err)
		return
	}

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := utils.ValidateToolID(req.ToolID, "tool_id", true); err != nil {
		badRequest(c, err)
		return
	}

	var appCtx *types.Context
	if rid := middleware.GetRequestID(c); rid != "" {
		appCtx = &types.Context{RequestID: &rid}
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		c.Error(err)
		c.JSON(statusFor(err), result)
		return
	}

	c.JSON(http.StatusOK, result)
}
