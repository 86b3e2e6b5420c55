// Package tracing wires OpenTelemetry into the News API.
//
// Init installs the SDK provider with parent-based ratio sampling and the
// W3C propagators. Middleware opens the server span of each request and
// StartSpan opens the use case spans beneath it, for example:
//
//	ctx, span := tracing.StartSpan(ctx, "news.Create")
//	defer span.End()
package tracing
