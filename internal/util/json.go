package util

import (
	"github.com/ferdian3456/userregistry/internal/constant"
	"github.com/ferdian3456/userregistry/internal/model"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func SendSuccessResponseWithData(ctx *fiber.Ctx, data interface{}) error {
	err := ctx.Status(fiber.StatusOK).JSON(data)
	if err != nil {
		return err
	}

	return nil
}

func SendCreatedResponseWithData(ctx *fiber.Ctx, data interface{}) error {
	err := ctx.Status(fiber.StatusCreated).JSON(data)
	if err != nil {
		return err
	}

	return nil
}

func SendErrorResponse(ctx *fiber.Ctx, error error) error {
	err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": error,
	})
	if err != nil {
		return err
	}

	return nil
}

func SendErrorResponseNotFound(ctx *fiber.Ctx, error error) error {
	err := ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": error,
	})
	if err != nil {
		return err
	}

	return nil
}

func SendErrorResponseTooLarge(ctx *fiber.Ctx, error error) error {
	err := ctx.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
		"error": error,
	})
	if err != nil {
		return err
	}

	return nil
}

// SendValidationErrorResponse picks the status for a domain error by its code.
func SendValidationErrorResponse(ctx *fiber.Ctx, validationErr *model.ValidationError) error {
	switch validationErr.Code {
	case constant.ERR_NOT_FOUND_ERROR:
		return SendErrorResponseNotFound(ctx, validationErr)
	case constant.ERR_ASSET_TOO_LARGE_CODE:
		return SendErrorResponseTooLarge(ctx, validationErr)
	default:
		return SendErrorResponse(ctx, validationErr)
	}
}

func SendErrorResponseInternalServer(ctx *fiber.Ctx, log *zap.Logger, error error) error {
	log.Error("internal server error occured", zap.Error(error))
	err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    constant.ERR_INTERNAL_SERVER_ERROR_CODE,
			"message": constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE,
		},
	})

	if err != nil {
		return err
	}

	return err
}
