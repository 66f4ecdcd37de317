// Package blob stores uploaded images on the local filesystem and serves
// them back by URL. Uploads are validated by sniffed content type, never by
// the client-supplied one.
package blob

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/cybermarket/server/internal/domain"
	"github.com/cybermarket/server/internal/logger"
)

// Upload kinds; each kind gets its own subdirectory.
const (
	KindAvatar  = "avatars"
	KindProduct = "products"
)

var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// Store writes validated image blobs under a base directory.
type Store struct {
	baseDir string
	baseURL string
}

// NewStore creates a store rooted at baseDir. baseURL is the public path
// prefix uploads are served under, e.g. "/uploads".
func NewStore(baseDir, baseURL string) (*Store, error) {
	for _, kind := range []string{KindAvatar, KindProduct} {
		if err := os.MkdirAll(filepath.Join(baseDir, kind), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
	}
	return &Store{baseDir: baseDir, baseURL: baseURL}, nil
}

// Save validates and persists an image, returning its public URL. The file
// name is a fresh UUID plus the extension implied by the sniffed type.
func (s *Store) Save(ctx context.Context, kind string, data []byte) (string, error) {
	if kind != KindAvatar && kind != KindProduct {
		return "", fmt.Errorf("%w: unknown upload kind %q", domain.ErrInvalidInput, kind)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty upload", domain.ErrInvalidInput)
	}
	if len(data) > domain.MaxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes", domain.ErrUploadTooLarge, len(data))
	}

	contentType := http.DetectContentType(data)
	ext, ok := extByType[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedImage, contentType)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.baseDir, kind, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	url := s.baseURL + "/" + kind + "/" + name
	logger.FromContext(ctx).Info("Upload stored", "kind", kind, "bytes", len(data), "url", url)
	return url, nil
}

// Dir returns the base directory, for mounting a static file server.
func (s *Store) Dir() string {
	return s.baseDir
}
