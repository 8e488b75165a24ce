package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ferdian3456/userregistry/internal/constant"
	"github.com/ferdian3456/userregistry/internal/model"
	"github.com/ferdian3456/userregistry/internal/observability"

	"go.uber.org/zap"
)

type UserUsecase struct {
	UserRepository  UserStore
	AssetRepository AssetStore
	Cache           UserListCache
	Log             *zap.Logger
}

// NewUserUsecase wires the registration flow. cache may be nil.
func NewUserUsecase(userRepository UserStore, assetRepository AssetStore, cache UserListCache, zap *zap.Logger) *UserUsecase {
	return &UserUsecase{
		UserRepository:  userRepository,
		AssetRepository: assetRepository,
		Cache:           cache,
		Log:             zap,
	}
}

func (usecase *UserUsecase) CreateUser(ctx context.Context, payload model.UserCreateRequest) (model.User, error) {
	log := observability.WithContext(ctx, usecase.Log)
	user := model.User{}

	// fields first, a rejected request must not leave an image behind
	name, age, err := validateUserFields(payload)
	if err != nil {
		return user, err
	}

	if payload.Image == nil || len(payload.Image.Content) == 0 {
		return user, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Image is required to not be empty",
			Param:   constant.IMAGE_FIELD_NAME,
		}
	}

	imageRef, err := usecase.AssetRepository.Put(ctx, payload.Image)
	if err != nil {
		return user, err
	}

	user, err = usecase.UserRepository.Insert(ctx, name, age, string(imageRef))
	if err != nil {
		cleanupErr := usecase.AssetRepository.Delete(context.WithoutCancel(ctx), imageRef)
		if cleanupErr != nil {
			log.Warn("failed to remove image after insert failure", zap.String("imagePath", string(imageRef)), zap.Error(cleanupErr))
		}
		return model.User{}, err
	}

	usecase.invalidateUserList(ctx, log)

	log.Info("user created", zap.Int64("userId", user.Id), zap.String("imagePath", user.ImagePath))

	return user, nil
}

// DeleteUser removes the row first, then its image. A failed image removal is
// only logged.
func (usecase *UserUsecase) DeleteUser(ctx context.Context, userId string) error {
	log := observability.WithContext(ctx, usecase.Log)

	id, err := strconv.ParseInt(userId, 10, 64)
	if err != nil || id <= 0 {
		return &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "User not found",
			Param:   "id",
		}
	}

	user, err := usecase.UserRepository.FindById(ctx, id)
	if err != nil {
		return err
	}

	err = usecase.UserRepository.DeleteById(ctx, id)
	if err != nil {
		if model.HasCode(err, constant.ERR_NOT_FOUND_ERROR) {
			// another request removed the row between lookup and delete, it owns the image cleanup
			log.Debug("user already deleted", zap.Int64("userId", id))
			return nil
		}
		return err
	}

	usecase.invalidateUserList(ctx, log)

	err = usecase.AssetRepository.Delete(ctx, model.AssetRef(user.ImagePath))
	if err != nil {
		log.Warn("failed to remove user image", zap.Int64("userId", id), zap.String("imagePath", user.ImagePath), zap.Error(err))
	}

	log.Info("user deleted", zap.Int64("userId", id))

	return nil
}

func (usecase *UserUsecase) invalidateUserList(ctx context.Context, log *zap.Logger) {
	if usecase.Cache == nil {
		return
	}

	err := usecase.Cache.Invalidate(ctx)
	if err != nil {
		log.Warn("failed to invalidate user list cache", zap.Error(err))
	}
}

func validateUserFields(payload model.UserCreateRequest) (string, int, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return "", 0, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Name is required to not be empty",
			Param:   "name",
		}
	} else if utf8.RuneCountInString(name) > constant.MAX_USER_NAME_LENGTH {
		return "", 0, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Name must be at most %d characters", constant.MAX_USER_NAME_LENGTH),
			Param:   "name",
		}
	}

	ageStr := strings.TrimSpace(payload.Age)
	if ageStr == "" {
		return "", 0, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Age is required to not be empty",
			Param:   "age",
		}
	}

	age, err := strconv.Atoi(ageStr)
	if err != nil {
		return "", 0, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Age must be a whole number",
			Param:   "age",
		}
	} else if age < constant.MIN_USER_AGE || age > constant.MAX_USER_AGE {
		return "", 0, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Age must be between %d and %d", constant.MIN_USER_AGE, constant.MAX_USER_AGE),
			Param:   "age",
		}
	}

	return name, age, nil
}
