package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetLoggerFromContext retrieves the request logger stored by TraceLoggerMiddleware,
// falling back to fallback when the middleware did not run.
func GetLoggerFromContext(c *fiber.Ctx, fallback *zap.Logger) *zap.Logger {
	loggerIf := c.Locals("logger")
	if loggerIf != nil {
		if logger, ok := loggerIf.(*zap.Logger); ok {
			return logger
		}
	}

	return fallback
}
