package config

import (
	"os"

	"github.com/ferdian3456/userregistry/internal/constant"
	"github.com/ferdian3456/userregistry/internal/model"
	"github.com/ferdian3456/userregistry/internal/repository"
	"github.com/ferdian3456/userregistry/internal/usecase"
	"github.com/ferdian3456/userregistry/internal/util"

	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

func LoadAssetPolicy(config *koanf.Koanf) model.AssetPolicy {
	return model.AssetPolicy{
		MaxSize:      Int64(config, "ASSET_MAX_SIZE", constant.MAX_FILE_SIZE),
		AllowedTypes: List(config, "ASSET_ALLOWED_TYPES", util.DefaultImageTypes),
	}
}

func UploadURLPrefix(config *koanf.Koanf) string {
	return String(config, "UPLOAD_URL_PREFIX", constant.DEFAULT_UPLOAD_PREFIX)
}

// NewAssetStore picks the asset backend named by ASSET_BACKEND (disk or minio).
func NewAssetStore(config *koanf.Koanf, log *zap.Logger) usecase.AssetStore {
	policy := LoadAssetPolicy(config)
	urlPrefix := UploadURLPrefix(config)

	switch backend := String(config, "ASSET_BACKEND", "disk"); backend {
	case "minio":
		minioClient := NewMinIO(config, log)
		return repository.NewMinioAssetRepository(log, minioClient, config.String("MINIO_BUCKET_NAME"), urlPrefix, policy)
	case "disk":
		uploadDir := String(config, "UPLOAD_DIR", constant.DEFAULT_UPLOAD_DIR)
		err := os.MkdirAll(uploadDir, 0o755)
		if err != nil {
			log.Fatal("failed to create upload directory", zap.String("path", uploadDir), zap.Error(err))
		}
		return repository.NewAssetRepository(log, uploadDir, urlPrefix, policy)
	default:
		log.Fatal("unknown asset backend", zap.String("backend", backend))
		return nil
	}
}
