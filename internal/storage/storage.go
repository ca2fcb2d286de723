// Package storage uploads product images and hands back public URLs.
// The S3 uploader is the production path; the file uploader keeps local
// development working without AWS credentials.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Uploader writes an image blob under key and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// ImageKey builds a collision-resistant object key for an uploaded image:
// the configured prefix, a millisecond timestamp, a random suffix and the
// original file extension. Two admins uploading "photo.jpg" at the same
// moment still get distinct keys.
func ImageKey(prefix, originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s%d_%s%s", prefix, time.Now().UnixMilli(), suffix, ext)
}
