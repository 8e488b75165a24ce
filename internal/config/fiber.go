package config

import (
	"time"

	httpMiddleware "github.com/ferdian3456/userregistry/internal/delivery/http/middleware"
	exception "github.com/ferdian3456/userregistry/internal/exception"
	"github.com/ferdian3456/userregistry/internal/middleware"

	"github.com/bytedance/sonic"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"go.uber.org/zap"
)

// bodyHeadroom leaves room for the text fields and multipart framing on top of the image limit.
const bodyHeadroom = 1024 * 1024

func NewFiber(maxAssetSize int64, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:               false,
		AppName:               "user-registry",
		BodyLimit:             int(maxAssetSize) + bodyHeadroom,
		ReadBufferSize:        8192,
		WriteBufferSize:       4096,
		Concurrency:           256 * 1024,
		IdleTimeout:           30 * time.Second,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		DisableKeepalive:      false,
		DisableStartupMessage: true,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          exception.ErrorHandler(log),
	})

	return app
}

// SetupMiddleware installs the global middleware chain. Order matters:
// recovery first, then tracing so the request logger can see the span.
func SetupMiddleware(app *fiber.App, log *zap.Logger, corsOrigins string, rateLimit int) {
	app.Use(exception.Recovery(log))
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/api/health"
	})))
	app.Use(middleware.TraceLoggerMiddleware(log))
	app.Use(httpMiddleware.SetupCORS(corsOrigins))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use("/api", httpMiddleware.SetupRateLimiter(log, rateLimit))
}
