// Package metrics owns the Prometheus collectors of the News API. Collectors
// register with the default registry on import and are served on /metrics.
//
// http.go covers traffic, news.go the news operations and store.go the
// connection pool and the store circuit breaker.
package metrics
