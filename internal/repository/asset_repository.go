package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ferdian3456/userregistry/internal/constant"
	"github.com/ferdian3456/userregistry/internal/model"
	"github.com/ferdian3456/userregistry/internal/util"

	"go.uber.org/zap"
)

// AssetRepository keeps uploaded images as plain files under Root.
type AssetRepository struct {
	Log       *zap.Logger
	Root      string
	URLPrefix string
	Policy    model.AssetPolicy
}

func NewAssetRepository(zap *zap.Logger, root string, urlPrefix string, policy model.AssetPolicy) *AssetRepository {
	return &AssetRepository{
		Log:       zap,
		Root:      root,
		URLPrefix: urlPrefix,
		Policy:    policy,
	}
}

func (repository *AssetRepository) Put(ctx context.Context, upload *model.ImageUpload) (model.AssetRef, error) {
	ext, err := util.ValidateImage(upload, repository.Policy)
	if err != nil {
		return "", err
	}

	name := util.GenerateAssetName(assetLabel(upload), ext)
	path := filepath.Join(repository.Root, name)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %w", model.ErrAssetIO, name, err)
	}

	_, err = file.Write(upload.Content)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: write %s: %w", model.ErrAssetIO, name, err)
	}

	repository.Log.Debug("asset stored", zap.String("name", name), zap.Int("size", len(upload.Content)))

	return model.AssetRef(util.AssetRefFor(repository.URLPrefix, name)), nil
}

// Delete removes the file behind ref. A file that is already gone is not an error.
func (repository *AssetRepository) Delete(ctx context.Context, ref model.AssetRef) error {
	name, ok := util.AssetNameFromRef(repository.URLPrefix, string(ref))
	if !ok {
		return fmt.Errorf("%w: invalid asset reference %q", model.ErrAssetIO, ref)
	}

	err := os.Remove(filepath.Join(repository.Root, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %w", model.ErrAssetIO, name, err)
	}

	return nil
}

func (repository *AssetRepository) Open(ctx context.Context, name string) (*model.AssetObject, error) {
	if !util.IsAssetName(name) {
		return nil, assetNotFound()
	}

	file, err := os.Open(filepath.Join(repository.Root, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, assetNotFound()
		}
		return nil, fmt.Errorf("%w: open %s: %w", model.ErrAssetIO, name, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: stat %s: %w", model.ErrAssetIO, name, err)
	}

	return &model.AssetObject{
		Name:        name,
		ContentType: util.ContentTypeForExt(filepath.Ext(name)),
		Size:        info.Size(),
		Body:        file,
	}, nil
}

func assetLabel(upload *model.ImageUpload) string {
	if !util.IsAssetLabel(upload.FieldName) {
		return constant.IMAGE_FIELD_NAME
	}
	return upload.FieldName
}

func assetNotFound() error {
	return &model.ValidationError{
		Code:    constant.ERR_NOT_FOUND_ERROR,
		Message: "Asset not found",
		Param:   "name",
	}
}
