package media

import (
	"bytes"
	"context"

	"github.com/limitless-club/booking/pkg/cloudinary"
	"github.com/limitless-club/booking/pkg/storage"
)

// Cloudinary adapts the Cloudinary client.
type Cloudinary struct {
	client *cloudinary.Client
}

// NewCloudinary wraps client.
func NewCloudinary(client *cloudinary.Client) *Cloudinary {
	return &Cloudinary{client: client}
}

// Name implements Uploader.
func (c *Cloudinary) Name() string { return "cloudinary" }

// Upload implements Uploader.
func (c *Cloudinary) Upload(ctx context.Context, f File) (string, error) {
	res, err := c.client.Upload(ctx, f.Data, cloudinary.UploadParams{
		Folder:       f.Folder,
		Filename:     f.Filename,
		ResourceType: f.ResourceType,
		Extra:        f.Extra,
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

// S3 adapts the S3 store.
type S3 struct {
	store *storage.S3
}

// NewS3 wraps store.
func NewS3(store *storage.S3) *S3 {
	return &S3{store: store}
}

// Name implements Uploader.
func (s *S3) Name() string { return "s3" }

// Upload implements Uploader.
func (s *S3) Upload(ctx context.Context, f File) (string, error) {
	ct := f.ContentType
	if ct == "" || ct == "application/octet-stream" {
		ct = storage.ContentTypeForFilename(f.Filename)
	}
	key := storage.ObjectKey(f.Folder, f.Filename)
	return s.store.Upload(ctx, key, ct, bytes.NewReader(f.Data), int64(len(f.Data)))
}
