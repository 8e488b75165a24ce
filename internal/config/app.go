package config

import (
	http "github.com/ferdian3456/userregistry/internal/delivery/http"
	"github.com/ferdian3456/userregistry/internal/delivery/http/route"
	"github.com/ferdian3456/userregistry/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Router          *fiber.App
	UserRepository  usecase.UserStore
	AssetRepository usecase.AssetStore
	Cache           usecase.UserListCache
	Log             *zap.Logger
	UploadURLPrefix string
}

func Server(config *ServerConfig) {
	userUsecase := usecase.NewUserUsecase(config.UserRepository, config.AssetRepository, config.Cache, config.Log)
	userQueryUsecase := usecase.NewUserQueryUsecase(config.UserRepository, config.Cache, config.Log)
	assetUsecase := usecase.NewAssetUsecase(config.AssetRepository, config.Log)

	userController := http.NewUserController(userUsecase, userQueryUsecase, config.Log)
	assetController := http.NewAssetController(assetUsecase, config.Log)

	routeConfig := route.RouteConfig{
		App:             config.Router,
		UserController:  userController,
		AssetController: assetController,
		UploadURLPrefix: config.UploadURLPrefix,
	}

	routeConfig.SetupRoute()
}
