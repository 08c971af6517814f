// Package middleware provides the HTTP middleware stack for the liview server.
//
// Middleware stack includes:
//   - RequestID: ULID request identifiers, echoed in X-Request-ID
//   - Logger: zap access log carrying the request id
//   - CORS: Cross-origin resource sharing for the viewer front-end
//   - RateLimit: Per-IP token bucket rate limiting with idle eviction
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.Logger(log))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
