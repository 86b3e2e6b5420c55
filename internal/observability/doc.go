// Package observability is the parent of logging (slog setup and
// request-scoped loggers), metrics (Prometheus collectors) and tracing
// (OpenTelemetry provider and server spans). It has no code of its own.
package observability
