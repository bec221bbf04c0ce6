// Package core defines the read-side abstractions for blob storage backends
// that dataset sources load launch tables from.
package core

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver string

const (
	// DriverFilesystem represents the local filesystem implementation.
	DriverFilesystem Driver = "fs" // local filesystem (default)
	// DriverS3 represents an S3 / MinIO compatible implementation.
	DriverS3 Driver = "s3" // S3 / MinIO compatible
	// DriverMemory represents an in-memory implementation typically used in tests.
	DriverMemory Driver = "memory" // in-memory (tests)
)

// Info describes a stored blob.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// Store provides read access to objects held by a blob backend.
type Store interface {
	// Get retrieves the blob contents and metadata. The caller closes the reader.
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	// Head returns metadata only.
	Head(ctx context.Context, key string) (Info, error)
	// Driver returns the configured backend driver string.
	Driver() Driver
}

// ErrNotFound is wrapped by every driver when a key does not exist.
var ErrNotFound = errors.New("blobstore: object not found")

// ErrInvalidKey is returned for empty, absolute, or escaping keys.
var ErrInvalidKey = errors.New("blobstore: invalid key")
