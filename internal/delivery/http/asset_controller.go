package http

import (
	"errors"

	"github.com/ferdian3456/userregistry/internal/constant"
	"github.com/ferdian3456/userregistry/internal/middleware"
	"github.com/ferdian3456/userregistry/internal/model"
	"github.com/ferdian3456/userregistry/internal/usecase"
	"github.com/ferdian3456/userregistry/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AssetController struct {
	AssetUsecase *usecase.AssetUsecase
	Log          *zap.Logger
}

func NewAssetController(assetUsecase *usecase.AssetUsecase, zap *zap.Logger) *AssetController {
	return &AssetController{
		AssetUsecase: assetUsecase,
		Log:          zap,
	}
}

// ServeAsset streams a stored image read-only.
func (controller AssetController) ServeAsset(ctx *fiber.Ctx) error {
	var validationErr *model.ValidationError

	asset, err := controller.AssetUsecase.OpenAsset(ctx.UserContext(), ctx.Params("name"))
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendValidationErrorResponse(ctx, validationErr)
		}

		return util.SendErrorResponseInternalServer(ctx, middleware.GetLoggerFromContext(ctx, controller.Log), err)
	}

	ctx.Set(fiber.HeaderContentType, asset.ContentType)
	ctx.Set(fiber.HeaderCacheControl, constant.ASSET_CACHE_CONTROL)

	// fasthttp closes the body once it has been written
	return ctx.SendStream(asset.Body, int(asset.Size))
}
