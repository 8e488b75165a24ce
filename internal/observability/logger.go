package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// WithContext decorates logger with the trace and span of the active span, if any.
func WithContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	tc := ExtractTrace(ctx)
	if tc == nil {
		return logger
	}

	return logger.With(
		zap.String("trace_id", tc.TraceID),
		zap.String("span_id", tc.SpanID),
	)
}

type TraceContext struct {
	TraceID string
	SpanID  string
}

// ExtractTrace returns the ids of the span carried by ctx, or nil when there is none.
func ExtractTrace(ctx context.Context) *TraceContext {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return nil
	}

	return &TraceContext{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}
