package utils

import (
	"context"
	"mime/multipart"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader pushes doctor photos to Cloudinary. Nil when unconfigured;
// callers then keep whatever image URL the request supplied.
type Uploader struct {
	client *cloudinary.Cloudinary
	folder string
}

// NewUploaderFromEnv returns nil unless Cloudinary credentials are set.
func NewUploaderFromEnv() (*Uploader, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	if cloudName == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromParams(
		cloudName,
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		return nil, err
	}
	return &Uploader{client: cld, folder: "doctors"}, nil
}

// UploadImage stores the file and returns its delivery URL.
func (u *Uploader) UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if u == nil {
		return "", nil
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	resp, err := u.client.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder: u.folder,
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
