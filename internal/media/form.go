package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/limitless-club/booking/pkg/storage"
)

// ErrTooLarge is returned for files over storage.MaxUploadSize.
var ErrTooLarge = errors.New("media: file too large")

// ReadForm reads an uploaded multipart file fully. Empty files return nil data.
func ReadForm(fh *multipart.FileHeader) ([]byte, error) {
	if fh == nil || fh.Size == 0 {
		return nil, nil
	}
	if fh.Size > storage.MaxUploadSize {
		return nil, ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, storage.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > storage.MaxUploadSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
