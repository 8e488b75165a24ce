package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ferdian3456/userregistry/internal/constant"
	"github.com/ferdian3456/userregistry/internal/model"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var errStaleListing = errors.New("user list generation changed")

// UserListCacheRepository caches the full, ordered user listing in Redis.
type UserListCacheRepository struct {
	Log     *zap.Logger
	DBCache *redis.Client
	TTL     time.Duration
}

func NewUserListCacheRepository(zap *zap.Logger, dbCache *redis.Client, ttl time.Duration) *UserListCacheRepository {
	return &UserListCacheRepository{
		Log:     zap,
		DBCache: dbCache,
		TTL:     ttl,
	}
}

func (repository *UserListCacheRepository) Get(ctx context.Context) ([]model.User, bool, error) {
	payload, err := repository.DBCache.Get(ctx, constant.USER_LIST_CACHE_KEY).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}

	users := []model.User{}
	err = sonic.Unmarshal(payload, &users)
	if err != nil {
		return nil, false, err
	}

	return users, true, nil
}

// Generation returns the invalidation counter a listing must be read under to be cached.
func (repository *UserListCacheRepository) Generation(ctx context.Context) (int64, error) {
	generation, err := repository.DBCache.Get(ctx, constant.USER_LIST_GENERATION_KEY).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	return generation, nil
}

// Set stores users only while generation is still current. It reports false,
// without error, when an invalidation landed after the listing was read.
func (repository *UserListCacheRepository) Set(ctx context.Context, users []model.User, generation int64) (bool, error) {
	payload, err := sonic.Marshal(users)
	if err != nil {
		return false, err
	}

	err = repository.DBCache.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, constant.USER_LIST_GENERATION_KEY).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleListing
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, constant.USER_LIST_CACHE_KEY, payload, repository.TTL)
			return nil
		})
		return err
	}, constant.USER_LIST_GENERATION_KEY)
	if errors.Is(err, errStaleListing) || errors.Is(err, redis.TxFailedErr) {
		repository.Log.Debug("skipped caching stale user list", zap.Int64("generation", generation))
		return false, nil
	} else if err != nil {
		return false, err
	}

	return true, nil
}

// Invalidate drops the cached listing and bumps the generation in one transaction.
func (repository *UserListCacheRepository) Invalidate(ctx context.Context) error {
	_, err := repository.DBCache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, constant.USER_LIST_GENERATION_KEY)
		pipe.Del(ctx, constant.USER_LIST_CACHE_KEY)
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}
