package util

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ferdian3456/userregistry/internal/constant"
	"github.com/ferdian3456/userregistry/internal/model"
)

type imageFormat struct {
	mimeTypes  []string
	extensions []string
}

var imageFormats = map[string]imageFormat{
	"jpeg": {mimeTypes: []string{"image/jpeg", "image/jpg"}, extensions: []string{".jpeg", ".jpg"}},
	"jpg":  {mimeTypes: []string{"image/jpeg", "image/jpg"}, extensions: []string{".jpeg", ".jpg"}},
	"png":  {mimeTypes: []string{"image/png"}, extensions: []string{".png"}},
	"gif":  {mimeTypes: []string{"image/gif"}, extensions: []string{".gif"}},
}

var DefaultImageTypes = []string{"jpeg", "png", "gif"}

// ImageAllowList expands format names (jpeg, png, gif) into the mime types and
// file extensions accepted for them. Unknown names are ignored.
func ImageAllowList(types []string) (map[string]bool, map[string]bool) {
	if len(types) == 0 {
		types = DefaultImageTypes
	}

	mimeTypes := make(map[string]bool)
	extensions := make(map[string]bool)
	for _, t := range types {
		format, ok := imageFormats[strings.ToLower(strings.TrimSpace(t))]
		if !ok {
			continue
		}
		for _, m := range format.mimeTypes {
			mimeTypes[m] = true
		}
		for _, e := range format.extensions {
			extensions[e] = true
		}
	}

	return mimeTypes, extensions
}

// ValidateImage checks the upload against policy and returns the lower-cased
// extension taken from the original filename.
func ValidateImage(upload *model.ImageUpload, policy model.AssetPolicy) (string, error) {
	fieldName := upload.FieldName
	if fieldName == "" {
		fieldName = constant.IMAGE_FIELD_NAME
	}

	maxSize := policy.MaxSize
	if maxSize <= 0 {
		maxSize = constant.MAX_FILE_SIZE
	}

	if int64(len(upload.Content)) > maxSize {
		return "", &model.ValidationError{
			Code:    constant.ERR_ASSET_TOO_LARGE_CODE,
			Message: fmt.Sprintf("Image size exceeded %dMB limit", maxSize/(1024*1024)),
			Param:   fieldName,
		}
	}

	allowedMimeTypes, allowedExts := ImageAllowList(policy.AllowedTypes)

	contentType, _, _ := strings.Cut(upload.ContentType, ";")
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !allowedMimeTypes[contentType] {
		return "", &model.ValidationError{
			Code:    constant.ERR_INVALID_ASSET_TYPE_CODE,
			Message: fmt.Sprintf("Invalid file type: %s. Only image files are allowed", upload.ContentType),
			Param:   fieldName,
		}
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedExts[ext] {
		return "", &model.ValidationError{
			Code:    constant.ERR_INVALID_ASSET_TYPE_CODE,
			Message: fmt.Sprintf("Invalid file extension: %s", ext),
			Param:   fieldName,
		}
	}

	return ext, nil
}

// ContentTypeForExt returns the canonical mime type of an accepted extension.
func ContentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
