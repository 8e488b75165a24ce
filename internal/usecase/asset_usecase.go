package usecase

import (
	"context"

	"github.com/ferdian3456/userregistry/internal/model"

	"go.uber.org/zap"
)

type AssetUsecase struct {
	AssetRepository AssetStore
	Log             *zap.Logger
}

func NewAssetUsecase(assetRepository AssetStore, zap *zap.Logger) *AssetUsecase {
	return &AssetUsecase{
		AssetRepository: assetRepository,
		Log:             zap,
	}
}

// OpenAsset returns the stored image for name. The caller closes Body.
func (usecase *AssetUsecase) OpenAsset(ctx context.Context, name string) (*model.AssetObject, error) {
	return usecase.AssetRepository.Open(ctx, name)
}
