// Package middleware provides the gin middleware stack for the terminal host.
//
// Middleware stack includes:
//   - CORS: Cross-origin access for listed frontend origins (OriginPolicy)
//   - RateLimit: Per-IP token bucket, idle clients evicted
//   - RequestID: ULID request IDs echoed in X-Request-ID
//   - Logger: Structured zap request logging
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	origins := middleware.NewOriginPolicy([]string{"tauri://localhost"})
//	router.Use(middleware.CORS(origins))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
