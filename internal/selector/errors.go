package selector

import (
	"errors"
	"fmt"
)

// ContractViolation reports selector input outside the documented domain: an
// unknown site or a malformed payload range. It signals an integration error
// between the UI runtime and the selectors, never a user-recoverable state.
type ContractViolation struct {
	Field  string
	Value  string
	Reason string
}

func (e *ContractViolation) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("selector contract violation: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("selector contract violation: %s=%q: %s", e.Field, e.Value, e.Reason)
}

// IsContractViolation reports whether err wraps a ContractViolation.
func IsContractViolation(err error) bool {
	var cv *ContractViolation
	return errors.As(err, &cv)
}
