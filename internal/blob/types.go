// Package blob re-exports core blob abstractions for stable imports and wraps
// the infra-backed drivers. Callers outside this package depend on blob.Store
// rather than on internal/infra/blob directly.
package blob

import (
	"launchdash/internal/blob/core"
)

type (
	// Driver identifies a blob backend driver.
	Driver = core.Driver
	// Info describes stored blob metadata.
	Info = core.Info
	// Store is the interface for blob storage backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory test driver.
	DriverMemory = core.DriverMemory
)

var (
	// ErrNotFound indicates a missing key.
	ErrNotFound = core.ErrNotFound
	// ErrInvalidKey indicates a key that cannot be mapped onto the backend.
	ErrInvalidKey = core.ErrInvalidKey
)
