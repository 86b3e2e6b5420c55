// Package resilience provides fault tolerance patterns for database access.
//
// The package supports:
//   - A circuit breaker around the connection pool, so requests fail fast
//     while the store is down
//   - Retry with capped exponential backoff for the first connection, which
//     tells a store that is still booting from one that refuses the request
//
// Usage Example:
//
//	store := circuitbreaker.Wrap(conn, circuitbreaker.StoreSettings(), logger)
//	repo := postgres.NewNewsRepo(store)
//
//	err := retry.Startup(logger).Do(ctx, "ping database", conn.PingContext)
package resilience
