package middleware

import (
	"errors"
	"fmt"

	"github.com/ferdian3456/userregistry/internal/constant"
	logMiddleware "github.com/ferdian3456/userregistry/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func Recovery(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				var errMsg string
				switch v := r.(type) {
				case error:
					errMsg = v.Error()
				case string:
					errMsg = v
				default:
					errMsg = fmt.Sprintf("%v", v)
				}

				logMiddleware.GetLoggerFromContext(c, log).Error("panic occurred and recovered", zap.String("error", errMsg))

				_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": fiber.Map{
						"code":    constant.ERR_INTERNAL_SERVER_ERROR_CODE,
						"message": constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE,
					},
				})
			}
		}()

		return c.Next()
	}
}

// ErrorHandler answers errors that escape a handler (unknown routes, oversized
// bodies, malformed requests) with the same envelope the controllers use.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			code := constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE
			switch fiberErr.Code {
			case fiber.StatusNotFound:
				code = constant.ERR_NOT_FOUND_ERROR
			case fiber.StatusRequestEntityTooLarge:
				code = constant.ERR_ASSET_TOO_LARGE_CODE
			}

			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    code,
					"message": fiberErr.Message,
				},
			})
		}

		logMiddleware.GetLoggerFromContext(c, log).Error("unhandled error", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    constant.ERR_INTERNAL_SERVER_ERROR_CODE,
				"message": constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE,
			},
		})
	}
}
