// Package media stores offer images in object storage and returns the URL
// clients put on the offer.
package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted upload.
const MaxImageSize = 5 << 20

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image exceeds 5 MiB")
	ErrEmpty           = errors.New("image is empty")
)

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

type Uploader interface {
	Upload(ctx context.Context, obj Object) (string, error)
}

// Sniff validates raw image bytes and returns their content type. The
// client supplied header is ignored.
func Sniff(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if len(data) > MaxImageSize {
		return "", ErrTooLarge
	}
	ct := http.DetectContentType(data)
	if _, ok := extensions[ct]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ct)
	}
	return ct, nil
}

// OfferImageKey returns offers/<uid>/<uuid>.<ext>.
func OfferImageKey(uid, contentType string) string {
	ext := extensions[contentType]
	if ext == "" {
		ext = "bin"
	}
	return path.Join("offers", uid, uuid.NewString()+"."+ext)
}
