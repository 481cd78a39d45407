package port

import (
	"context"
	"io"
	"time"
)

// UploadInput encapsulates the parameters needed to store a page object.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the page-object store. Keys are opaque to
// implementations; the asset service owns the key layout.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
	PresignDownload(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}
