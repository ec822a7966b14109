package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize caps image uploads at 10MB.
const MaxUploadSize = 10 << 20

const keyPrefix = "fidgi"

// ErrValidation marks rejected uploads; handlers answer 400.
var ErrValidation = errors.New("media validation failed")

var extByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var allowedFolders = map[string]bool{
	"colors":        true,
	"keycaps":       true,
	"switches":      true,
	"prebuilt":      true,
	"other-fidgets": true,
}

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type Service struct {
	Disk Disk
}

// Upload validates and stores one image under the per-item-type folder.
func (s *Service) Upload(ctx context.Context, itemType, contentType string, size int64, body io.Reader) (*UploadResult, error) {
	if !allowedFolders[itemType] {
		return nil, fmt.Errorf("%w: unknown item type %q", ErrValidation, itemType)
	}
	ext, ok := extByMIME[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported content type %q", ErrValidation, contentType)
	}
	if size <= 0 || size > MaxUploadSize {
		return nil, fmt.Errorf("%w: file size must be between 1 byte and %d bytes", ErrValidation, MaxUploadSize)
	}

	key := fmt.Sprintf("%s/%s/%s%s", keyPrefix, itemType, uuid.NewString(), ext)
	if err := s.Disk.Put(ctx, key, io.LimitReader(body, MaxUploadSize), contentType); err != nil {
		return nil, err
	}

	return &UploadResult{URL: s.Disk.URL(key), PublicID: key}, nil
}

// Delete removes an image by key, or by URL when no key is given.
func (s *Service) Delete(ctx context.Context, rawURL, publicID string) error {
	key := publicID
	if key == "" {
		extracted, err := ExtractPublicID(rawURL)
		if err != nil {
			return err
		}
		key = extracted
	}
	return s.Disk.Delete(ctx, key)
}

// ExtractPublicID pulls the object key out of a stored public URL by
// locating the known key prefix in its path.
func ExtractPublicID(rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("%w: url or public_id is required", ErrValidation)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: malformed url", ErrValidation)
	}

	path := strings.TrimLeft(u.Path, "/")
	idx := strings.Index(path, keyPrefix+"/")
	if idx < 0 {
		return "", fmt.Errorf("%w: url does not reference a managed image", ErrValidation)
	}
	return path[idx:], nil
}
