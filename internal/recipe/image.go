package recipe

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultImage is shown whenever a record has no usable image.
	DefaultImage = "default-recipe-image.jpg"

	magicNumberSeek = 512
	dataURIPrefix   = "data:"
	base64Marker    = ";base64"
)

// allowedImageTypes lists the simple MIME types we accept.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var mimeTypeSuffix = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// EmbeddedImage is a decoded data URI image.
type EmbeddedImage struct {
	Size     int64
	Data     []byte
	Suffix   string
	MimeType string
}

// ParseEmbeddedImage decodes a base64 data URI and sniffs its content.
// The declared media type is ignored; the bytes decide.
func ParseEmbeddedImage(ref string) (EmbeddedImage, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(ref), dataURIPrefix)
	if !ok {
		return EmbeddedImage{}, fmt.Errorf("%w: missing data scheme", ErrMalformedImage)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, base64Marker) {
		return EmbeddedImage{}, fmt.Errorf("%w: expected base64 payload", ErrMalformedImage)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return EmbeddedImage{}, errors.Join(ErrMalformedImage, err)
	}
	if len(data) == 0 {
		return EmbeddedImage{}, fmt.Errorf("%w: empty payload", ErrMalformedImage)
	}

	contentType := http.DetectContentType(data[:min(len(data), magicNumberSeek)])
	if !allowedImageTypes[contentType] {
		return EmbeddedImage{}, fmt.Errorf("mime type %q: %w", contentType, ErrUnsupportedMimeType)
	}

	return EmbeddedImage{
		Size:     int64(len(data)),
		MimeType: contentType,
		Suffix:   mimeTypeSuffix[contentType],
		Data:     data,
	}, nil
}

// ResolveImage returns ref when it is a usable remote URL or embedded
// image, and DefaultImage otherwise.
func ResolveImage(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return DefaultImage
	}
	if strings.HasPrefix(ref, dataURIPrefix) {
		if _, err := ParseEmbeddedImage(ref); err != nil {
			return DefaultImage
		}
		return ref
	}

	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return DefaultImage
	}
	return ref
}
