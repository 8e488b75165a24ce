package repository

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/ferdian3456/userregistry/internal/constant"
	"github.com/ferdian3456/userregistry/internal/model"
	"github.com/ferdian3456/userregistry/internal/util"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// MinioAssetRepository keeps uploaded images as objects in a single bucket.
type MinioAssetRepository struct {
	Log       *zap.Logger
	DBObject  *minio.Client
	Bucket    string
	URLPrefix string
	Policy    model.AssetPolicy
}

func NewMinioAssetRepository(zap *zap.Logger, minio *minio.Client, bucket string, urlPrefix string, policy model.AssetPolicy) *MinioAssetRepository {
	return &MinioAssetRepository{
		Log:       zap,
		DBObject:  minio,
		Bucket:    bucket,
		URLPrefix: urlPrefix,
		Policy:    policy,
	}
}

func (repository *MinioAssetRepository) Put(ctx context.Context, upload *model.ImageUpload) (model.AssetRef, error) {
	ext, err := util.ValidateImage(upload, repository.Policy)
	if err != nil {
		return "", err
	}

	name := util.GenerateAssetName(assetLabel(upload), ext)

	_, err = repository.DBObject.PutObject(ctx, repository.Bucket, name, bytes.NewReader(upload.Content), int64(len(upload.Content)),
		minio.PutObjectOptions{
			ContentType:  util.ContentTypeForExt(ext),
			CacheControl: constant.ASSET_CACHE_CONTROL,
		})
	if err != nil {
		return "", fmt.Errorf("%w: put object %s: %w", model.ErrAssetIO, name, err)
	}

	repository.Log.Debug("asset stored", zap.String("bucket", repository.Bucket), zap.String("name", name), zap.Int("size", len(upload.Content)))

	return model.AssetRef(util.AssetRefFor(repository.URLPrefix, name)), nil
}

// Delete removes the object behind ref. S3 semantics make removing a missing key a no-op.
func (repository *MinioAssetRepository) Delete(ctx context.Context, ref model.AssetRef) error {
	name, ok := util.AssetNameFromRef(repository.URLPrefix, string(ref))
	if !ok {
		return fmt.Errorf("%w: invalid asset reference %q", model.ErrAssetIO, ref)
	}

	err := repository.DBObject.RemoveObject(ctx, repository.Bucket, name, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("%w: remove object %s: %w", model.ErrAssetIO, name, err)
	}

	return nil
}

func (repository *MinioAssetRepository) Open(ctx context.Context, name string) (*model.AssetObject, error) {
	if !util.IsAssetName(name) {
		return nil, assetNotFound()
	}

	object, err := repository.DBObject.GetObject(ctx, repository.Bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: get object %s: %w", model.ErrAssetIO, name, err)
	}

	info, err := object.Stat()
	if err != nil {
		_ = object.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, assetNotFound()
		}
		return nil, fmt.Errorf("%w: stat object %s: %w", model.ErrAssetIO, name, err)
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = util.ContentTypeForExt(filepath.Ext(name))
	}

	return &model.AssetObject{
		Name:        name,
		ContentType: contentType,
		Size:        info.Size,
		Body:        object,
	}, nil
}
