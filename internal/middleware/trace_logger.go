package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TraceLoggerMiddleware stores a request-scoped logger in locals. It always
// carries a request id and, when a span is recording, the trace and span ids.
func TraceLoggerMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestId := c.Get(fiber.HeaderXRequestID)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestId)

		fields := []zap.Field{zap.String("request_id", requestId)}

		spanContext := trace.SpanFromContext(c.UserContext()).SpanContext()
		if spanContext.IsValid() {
			fields = append(fields,
				zap.String("trace_id", spanContext.TraceID().String()),
				zap.String("span_id", spanContext.SpanID().String()),
			)
		}

		c.Locals("logger", logger.With(fields...))

		return c.Next()
	}
}
