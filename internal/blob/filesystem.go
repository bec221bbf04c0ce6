package blob

import (
	"launchdash/internal/infra/blob/fs"
)

// NewFilesystem constructs a filesystem-backed blob.Store serving files below root.
// Returns blob.Store to encourage call sites to depend on the interface instead of
// concrete implementations.
func NewFilesystem(root string) (Store, error) {
	return fs.New(root)
}
