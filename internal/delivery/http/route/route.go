package route

import (
	"github.com/ferdian3456/userregistry/internal/constant"
	"github.com/ferdian3456/userregistry/internal/delivery/http"
	"github.com/ferdian3456/userregistry/internal/model"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App             *fiber.App
	UserController  *http.UserController
	AssetController *http.AssetController
	UploadURLPrefix string
}

func (c *RouteConfig) SetupRoute() {
	api := c.App.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(model.HealthResponse{
			Status:  constant.HEALTH_STATUS_OK,
			Message: constant.HEALTH_RUNNING_MESSAGE,
		})
	})

	api.Get("/users", c.UserController.ListUsers)
	api.Post("/users", c.UserController.CreateUser)
	api.Delete("/users/:id", c.UserController.DeleteUser)

	uploadPrefix := c.UploadURLPrefix
	if uploadPrefix == "" {
		uploadPrefix = constant.DEFAULT_UPLOAD_PREFIX
	}
	c.App.Get(uploadPrefix+"/:name", c.AssetController.ServeAsset)
}
