package http

import (
	"errors"
	"io"

	"github.com/ferdian3456/userregistry/internal/constant"
	"github.com/ferdian3456/userregistry/internal/middleware"
	"github.com/ferdian3456/userregistry/internal/model"
	"github.com/ferdian3456/userregistry/internal/usecase"
	"github.com/ferdian3456/userregistry/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserController struct {
	UserUsecase      *usecase.UserUsecase
	UserQueryUsecase *usecase.UserQueryUsecase
	Log              *zap.Logger
}

func NewUserController(userUsecase *usecase.UserUsecase, userQueryUsecase *usecase.UserQueryUsecase, zap *zap.Logger) *UserController {
	return &UserController{
		UserUsecase:      userUsecase,
		UserQueryUsecase: userQueryUsecase,
		Log:              zap,
	}
}

func (controller UserController) ListUsers(ctx *fiber.Ctx) error {
	response, err := controller.UserQueryUsecase.ListUsers(ctx.UserContext())
	if err != nil {
		return util.SendErrorResponseInternalServer(ctx, middleware.GetLoggerFromContext(ctx, controller.Log), err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller UserController) CreateUser(ctx *fiber.Ctx) error {
	log := middleware.GetLoggerFromContext(ctx, controller.Log)

	payload := model.UserCreateRequest{
		Name: ctx.FormValue("name"),
		Age:  ctx.FormValue("age"),
	}

	// a missing or unreadable file part leaves Image nil and is reported by the usecase
	fileHeader, err := ctx.FormFile(constant.IMAGE_FIELD_NAME)
	if err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			return util.SendErrorResponseInternalServer(ctx, log, err)
		}
		defer src.Close()

		content, err := io.ReadAll(src)
		if err != nil {
			return util.SendErrorResponseInternalServer(ctx, log, err)
		}

		payload.Image = &model.ImageUpload{
			FieldName:   constant.IMAGE_FIELD_NAME,
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
			Content:     content,
		}
	}

	var validationErr *model.ValidationError

	response, err := controller.UserUsecase.CreateUser(ctx.UserContext(), payload)
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendValidationErrorResponse(ctx, validationErr)
		}

		return util.SendErrorResponseInternalServer(ctx, log, err)
	}

	return util.SendCreatedResponseWithData(ctx, response)
}

func (controller UserController) DeleteUser(ctx *fiber.Ctx) error {
	userId := ctx.Params("id")

	var validationErr *model.ValidationError

	err := controller.UserUsecase.DeleteUser(ctx.UserContext(), userId)
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendValidationErrorResponse(ctx, validationErr)
		}

		return util.SendErrorResponseInternalServer(ctx, middleware.GetLoggerFromContext(ctx, controller.Log), err)
	}

	return util.SendSuccessResponseWithData(ctx, model.UserDeleteResponse{
		Message: constant.USER_DELETED_MESSAGE,
	})
}
