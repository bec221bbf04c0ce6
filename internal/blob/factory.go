package blob

import (
	"context"
	"fmt"
)

// Options carries driver specific construction parameters.
type Options struct {
	// Root is the directory served by the filesystem driver (default ".").
	Root string
	// S3 configures the S3 driver.
	S3 S3Config
}

// Open selects a blob.Store implementation for driver.
func Open(ctx context.Context, driver Driver, opts Options) (Store, error) {
	switch driver {
	case DriverFilesystem, "":
		return NewFilesystem(opts.Root)
	case DriverS3:
		return NewS3(ctx, opts.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
