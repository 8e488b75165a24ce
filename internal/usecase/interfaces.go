package usecase

import (
	"context"

	"github.com/ferdian3456/userregistry/internal/model"
)

// UserStore is the record store. Missing rows are reported as a
// *model.ValidationError with code NOT_FOUND_ERROR, storage faults wrap model.ErrPersistence.
type UserStore interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, name string, age int, imagePath string) (model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
	FindById(ctx context.Context, id int64) (model.User, error)
	DeleteById(ctx context.Context, id int64) error
}

// AssetStore validates, names and keeps uploaded images. It knows nothing about users.
type AssetStore interface {
	Put(ctx context.Context, upload *model.ImageUpload) (model.AssetRef, error)
	Delete(ctx context.Context, ref model.AssetRef) error
	Open(ctx context.Context, name string) (*model.AssetObject, error)
}

// UserListCache holds the full listing. Invalidate bumps a generation counter;
// Set only stores a listing read under the generation that is still current.
type UserListCache interface {
	Get(ctx context.Context) ([]model.User, bool, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, users []model.User, generation int64) (bool, error)
	Invalidate(ctx context.Context) error
}
