// Package imageutil shrinks phone-camera slips before they are uploaded.
package imageutil

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// DefaultMaxWidth is wide enough to read a bank transfer slip.
const DefaultMaxWidth = 1600

// Shrink decodes data (honouring EXIF orientation) and, when it is wider
// than maxWidth, re-encodes it as a JPEG of that width. Data that is not a
// decodable image, or already small enough, is returned unchanged with
// resized=false.
func Shrink(data []byte, maxWidth int) (out []byte, resized bool, err error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	img, decErr := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if decErr != nil {
		return data, false, nil
	}
	if img.Bounds().Dx() <= maxWidth {
		return data, false, nil
	}
	img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return data, false, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), true, nil
}
