// Package health provides continuation-style HTTP handlers for service health monitoring.
//
// Handlers:
//   - Liveness: Process is running (no dependency checks)
//   - Readiness: All dependencies are available
//   - NoContent: Returns 204 for minimal overhead
//
// Usage:
//
//	mux.Handle("GET /health/live", httpadapter.MustEndpoint(health.Liveness))
//	mux.Handle("GET /health/ready", httpadapter.MustEndpoint(health.Readiness(
//		logger,
//		redis.Healthcheck(client),
//	)))
//	mux.Handle("GET /ping", httpadapter.MustEndpoint(health.NoContent))
//
// Dependency checks must follow func(context.Context) error signature:
//
//	func checkCache(ctx context.Context) error {
//		return cache.Ping(ctx).Err()
//	}
package health
