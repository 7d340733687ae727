package storage

import (
	"context"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService uploads media assets and returns their public URL. Used by
// the admin service-management flow for service images.
type StorageService interface {
	UploadImage(ctx context.Context, file multipart.File, destFolder string) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// StorageServiceImpl is the Cloudinary-backed implementation.
type StorageServiceImpl struct {
	cld *cloudinary.Cloudinary
}
