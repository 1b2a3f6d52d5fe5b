package upload

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageUploader stores a client-submitted image (data URI or URL) and
// returns the hosted URL to persist.
type ImageUploader interface {
	Upload(ctx context.Context, image string) (string, error)
}

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cloudinaryURL string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, image string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, image, uploader.UploadParams{})
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	return resp.SecureURL, nil
}

// PassthroughUploader keeps already-hosted URLs as-is and rejects raw image
// data. Used when Cloudinary is not configured.
type PassthroughUploader struct{}

func (PassthroughUploader) Upload(_ context.Context, image string) (string, error) {
	if strings.HasPrefix(image, "data:") {
		return "", fmt.Errorf("image uploads are not configured")
	}
	return image, nil
}
