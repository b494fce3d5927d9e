package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/termhost/internal/infrastructure/tracing"
)

const corsMaxAge = 12 * time.Hour

var (
	corsMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsHeaders = []string{
		"Content-Type",
		"Content-Length",
		"Accept",
		"Origin",
		"Cache-Control",
		"X-Requested-With",
		RequestIDHeader,
		tracing.TraceHeader,
		tracing.SpanHeader,
	}
	corsExposed = []string{RequestIDHeader, tracing.TraceHeader, tracing.SpanHeader}
)

// CORS allows cross-origin calls from the origins accepted by policy.
// Unlisted origins get 403. Credentials are allowed only for listed origins.
func CORS(policy *OriginPolicy) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  corsMethods,
		AllowHeaders:  corsHeaders,
		ExposeHeaders: corsExposed,
		MaxAge:        corsMaxAge,
	}

	if policy.AllowsAny() {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOriginFunc = policy.Allowed
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
