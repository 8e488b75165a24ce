package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// SetupCORS configures CORS middleware for the application
func SetupCORS(allowOrigins string) fiber.Handler {
	if allowOrigins == "" {
		allowOrigins = "*"
	}

	return cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  "GET,POST,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept",
		ExposeHeaders: "Content-Length, X-Request-ID",
		MaxAge:        86400, // Pre-flight request can be cached for 1 day
	})
}
