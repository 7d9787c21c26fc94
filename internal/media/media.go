// Package media stores uploaded slips and documents. The primary store is
// Cloudinary; S3 is tried next when configured.
package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/limitless-club/booking/internal/metrics"
	"github.com/limitless-club/booking/pkg/imageutil"
)

// Resource types understood by the media store.
const (
	ResourceImage = "image"
	ResourceRaw   = "raw"
	ResourceAuto  = "auto"
)

// Folders used by the actions.
const (
	FolderSlips     = "slips"
	FolderDocuments = "documents"
)

// File is one upload.
type File struct {
	Folder       string
	Filename     string
	ContentType  string
	ResourceType string
	Data         []byte
	// Extra provider params, e.g. format=pdf for documents.
	Extra map[string]string
	// Shrink downscales large photos before upload.
	Shrink bool
}

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Name() string
	Upload(ctx context.Context, f File) (string, error)
}

// ErrNoUploader is returned when no provider is configured.
var ErrNoUploader = errors.New("media: no upload provider configured")

// ResourceTypeFor picks the resource type from the file extension:
// pdf is raw, common image formats are image, anything else auto.
func ResourceTypeFor(filename string) string {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(filename), ".")) {
	case "pdf":
		return ResourceRaw
	case "jpg", "jpeg", "png", "gif", "webp", "svg":
		return ResourceImage
	default:
		return ResourceAuto
	}
}

// Document builds the upload for a receipt attachment. PDFs keep their
// filename so the delivered URL ends in .pdf.
func Document(filename, contentType string, data []byte) File {
	f := File{
		Folder:       FolderDocuments,
		Filename:     filename,
		ContentType:  contentType,
		ResourceType: ResourceTypeFor(filename),
		Data:         data,
	}
	if f.ResourceType == ResourceRaw {
		f.Extra = map[string]string{
			"format":          "pdf",
			"use_filename":    "true",
			"unique_filename": "false",
		}
	}
	return f
}

// Fallback tries each uploader in order and returns the first URL.
type Fallback struct {
	uploaders []Uploader
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewFallback creates a chain. Nil uploaders are skipped.
func NewFallback(m *metrics.Metrics, logger *zap.Logger, uploaders ...Uploader) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Fallback{metrics: m, logger: logger}
	for _, u := range uploaders {
		if u != nil {
			f.uploaders = append(f.uploaders, u)
		}
	}
	return f
}

// Name implements Uploader.
func (f *Fallback) Name() string { return "fallback" }

// Upload implements Uploader.
func (f *Fallback) Upload(ctx context.Context, file File) (string, error) {
	if len(f.uploaders) == 0 {
		return "", ErrNoUploader
	}
	if file.Shrink {
		if out, resized, err := imageutil.Shrink(file.Data, imageutil.DefaultMaxWidth); err != nil {
			f.logger.Warn("shrink image failed, uploading original", zap.String("filename", file.Filename), zap.Error(err))
		} else if resized {
			file.Data = out
			file.ContentType = "image/jpeg"
		}
	}
	var errs []error
	for _, u := range f.uploaders {
		url, err := u.Upload(ctx, file)
		f.metrics.ObserveUpload(u.Name(), err)
		if err == nil {
			return url, nil
		}
		f.logger.Warn("media upload failed",
			zap.String("provider", u.Name()),
			zap.String("folder", file.Folder),
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
		errs = append(errs, fmt.Errorf("%s: %w", u.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	return "", errors.Join(errs...)
}
