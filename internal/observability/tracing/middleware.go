package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"news-api/internal/handler/http/pathutil"
	"news-api/internal/handler/http/responsewriter"
)

// TraceIDHeader is the response header carrying the trace ID.
const TraceIDHeader = "X-Trace-Id"

// Server span attribute keys, named after the OpenTelemetry HTTP conventions.
const (
	MethodKey = attribute.Key("http.request.method")
	RouteKey  = attribute.Key("http.route")
	StatusKey = attribute.Key("http.response.status_code")
)

// Middleware opens one server span per request named "<method> <route>".
// An incoming W3C traceparent becomes the parent, and the trace ID is echoed
// in X-Trace-Id before the handler writes anything. A 5xx marks the span
// failed; 4xx are the client's problem and leave it unset.
func Middleware(routes *pathutil.Routes) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parent := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			route := routes.Label(r.URL.Path)

			ctx, span := tracer.Start(parent, r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(MethodKey.String(r.Method), RouteKey.String(route)),
			)
			defer span.End()

			if id := span.SpanContext().TraceID(); id.IsValid() {
				w.Header().Set(TraceIDHeader, id.String())
			}

			rec := responsewriter.Wrap(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			span.SetAttributes(StatusKey.Int(rec.Status()))
			if rec.Failed() {
				span.SetStatus(codes.Error, http.StatusText(rec.Status()))
			}
		})
	}
}
