package services

import (
	"context"
	"errors"
)

var ErrPhotosDisabled = errors.New("photo storage is not configured")

// PhotoStore keeps uploaded images and returns their public URL.
type PhotoStore interface {
	UploadDataURL(ctx context.Context, dataURL, folder, prefix string) (string, error)
}
