package models

import (
	"errors"
	"fmt"
)

// ProviderError is a failure reported by a trade provider. Category is a
// short machine-readable kind ("provider", "transport", "decode"); Message
// carries the upstream detail. All provider-call failures are retried the
// same way, so the category only matters for reporting.
type ProviderError struct {
	Category string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// NewProviderError builds a ProviderError with the given category.
func NewProviderError(category, format string, args ...interface{}) *ProviderError {
	return &ProviderError{Category: category, Message: fmt.Sprintf(format, args...)}
}

// ErrorInfo extracts a (category, message) pair for report headers. Errors
// that are not ProviderError fall under the generic "error" category.
func ErrorInfo(err error) (string, string) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category, pe.Message
	}
	return "error", err.Error()
}
