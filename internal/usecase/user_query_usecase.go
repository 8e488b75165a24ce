package usecase

import (
	"context"

	"github.com/ferdian3456/userregistry/internal/model"
	"github.com/ferdian3456/userregistry/internal/observability"

	"go.uber.org/zap"
)

type UserQueryUsecase struct {
	UserRepository UserStore
	Cache          UserListCache
	Log            *zap.Logger
}

// NewUserQueryUsecase wires the read-only listing. cache may be nil.
func NewUserQueryUsecase(userRepository UserStore, cache UserListCache, zap *zap.Logger) *UserQueryUsecase {
	return &UserQueryUsecase{
		UserRepository: userRepository,
		Cache:          cache,
		Log:            zap,
	}
}

// ListUsers returns every user, newest first. A listing is cached only under
// the generation read before the store was queried.
func (usecase *UserQueryUsecase) ListUsers(ctx context.Context) ([]model.User, error) {
	log := observability.WithContext(ctx, usecase.Log)

	fill := false
	var generation int64
	if usecase.Cache != nil {
		users, hit, err := usecase.Cache.Get(ctx)
		if err != nil {
			log.Warn("failed to read user list cache", zap.Error(err))
		} else if hit {
			return users, nil
		}

		generation, err = usecase.Cache.Generation(ctx)
		if err != nil {
			log.Warn("failed to read user list cache generation", zap.Error(err))
		} else {
			fill = true
		}
	}

	users, err := usecase.UserRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if fill {
		_, err = usecase.Cache.Set(ctx, users, generation)
		if err != nil {
			log.Warn("failed to fill user list cache", zap.Error(err))
		}
	}

	return users, nil
}
