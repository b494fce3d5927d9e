package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the REST endpoints on router.
func RegisterRoutes(router gin.IRouter, h *Handlers) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	// Service management
	router.GET("/services", h.ListServices)
	router.POST("/services/execute", h.ExecuteService)

	// Terminal sessions
	sessions := router.Group("/terminal/sessions")
	sessions.GET("", h.ListSessions)
	sessions.POST("", h.CreateSession)
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.CloseSession)
	sessions.POST("/:id/input", h.WriteInput)
	sessions.POST("/:id/resize", h.ResizeSession)
}
