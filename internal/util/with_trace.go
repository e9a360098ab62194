package util

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// WithTrace returns a logger that tags every entry with the trace id found in ctx.
func WithTrace(ctx context.Context, l *zap.SugaredLogger) *zap.SugaredLogger {
	if id := TraceID(ctx); id != "" {
		l = l.With(zap.String("traceID", id))
	}
	return l
}

// TraceID returns the hex trace id of the span in ctx, or "" when there is none.
func TraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
