package blob

import (
	"context"

	infraS3 "launchdash/internal/infra/blob/s3"
)

// S3Config re-exports the infra S3 configuration type.
type S3Config = infraS3.Config

// NewS3 constructs an S3-backed blob.Store from the provided configuration.
func NewS3(ctx context.Context, cfg S3Config) (Store, error) {
	return infraS3.New(ctx, cfg)
}

// NewMockS3ForTests exposes the in-memory S3 transport mock for cross-package
// tests. objects maps keys to their contents inside bucket.
func NewMockS3ForTests(bucket string, objects map[string][]byte) Store {
	return infraS3.NewMockForTests(bucket, objects)
}
