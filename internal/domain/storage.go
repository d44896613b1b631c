package domain

import (
	"context"
	"io"
)

// PictureStorage stores uploaded profile pictures and returns a public URL
// (infrastructure port). Implementations may use S3 or a no-op for
// deployments without object storage.
type PictureStorage interface {
	UploadPicture(ctx context.Context, filename, contentType string, body io.Reader, size int64) (url string, err error)
}
