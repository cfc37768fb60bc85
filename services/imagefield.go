package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidImage is returned when an image payload cannot be decoded.
var ErrInvalidImage = errors.New("invalid image data")

// DecodedImage is a decoded base64 image ready for storage.
type DecodedImage struct {
	Data        []byte
	ContentType string
	Extension   string
}

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// DecodeImageField decodes a base64 image payload, with or without a
// "data:image/...;base64," prefix, and sniffs the actual content type
// from the decoded bytes.
func DecodeImageField(value string) (*DecodedImage, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, ErrInvalidImage
	}

	if strings.HasPrefix(value, "data:") {
		_, encoded, found := strings.Cut(value, ";base64,")
		if !found {
			return nil, ErrInvalidImage
		}
		value = encoded
	}

	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return nil, ErrInvalidImage
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported content type %s", ErrInvalidImage, contentType)
	}

	return &DecodedImage{
		Data:        data,
		ContentType: contentType,
		Extension:   ext,
	}, nil
}

// NewImageKey builds a unique storage key for a decoded image under the
// given folder, e.g. "recipes/3f2a-....png".
func NewImageKey(folder string, img *DecodedImage) string {
	return fmt.Sprintf("%s/%s.%s", strings.Trim(folder, "/"), uuid.NewString(), img.Extension)
}
