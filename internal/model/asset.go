package model

import (
	"io"
)

// ImageUpload is a binary blob received from the client together with the
// metadata it declared for it.
type ImageUpload struct {
	FieldName   string
	Filename    string
	ContentType string
	Content     []byte
}

// AssetRef is the public path an asset is served under, e.g. /uploads/image-1700000000000-42.png
type AssetRef string

type AssetObject struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// AssetPolicy bounds what the asset store accepts.
type AssetPolicy struct {
	MaxSize      int64
	AllowedTypes []string
}
