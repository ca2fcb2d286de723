package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// fileUploader implements Uploader on the local filesystem, for running
// without AWS credentials. Files land under dir and are served by the API's
// /media/ route.
type fileUploader struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewFileUploader creates a filesystem-backed image uploader rooted at dir.
func NewFileUploader(dir, baseURL string, logger zerolog.Logger) Uploader {
	return &fileUploader{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With().Str("component", "file-uploader").Logger(),
	}
}

// Upload writes the blob to dir/key and returns its public URL.
func (u *fileUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	dest := filepath.Join(u.dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		u.logger.Error().Err(err).Str("path", dest).Msg("failed to create image directory")
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		u.logger.Error().Err(err).Str("path", dest).Msg("failed to create image file")
		return "", fmt.Errorf("failed to create image file %s: %w", dest, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		u.logger.Error().Err(err).Str("path", dest).Msg("failed to write image file")
		// Leave no partial file behind.
		os.Remove(dest)
		return "", fmt.Errorf("failed to write image file %s: %w", dest, err)
	}

	url := u.baseURL + "/" + key

	u.logger.Info().
		Str("path", dest).
		Str("url", url).
		Msg("image stored on local filesystem")

	return url, nil
}
