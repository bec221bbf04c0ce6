package blob

import (
	memorystore "launchdash/internal/infra/blob/memory"
)

// Memory is the in-memory blob store; Put seeds objects.
type Memory = memorystore.Store

// NewMemory returns an empty in-memory blob store suitable for tests.
func NewMemory() *Memory { return memorystore.New() }
