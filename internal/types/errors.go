//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// ValidationError indicates a caller-supplied request is missing required
// fields or has invalid values. The pipeline never starts on one.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}
