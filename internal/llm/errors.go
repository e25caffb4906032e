package llm

import "fmt"

// ProviderError represents a failed inference call: network, quota,
// malformed response, or missing content. The gateway recovers from one
// via fallback where a fallback path exists; it is surfaced only when all
// fallbacks are exhausted.
type ProviderError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// ParseError represents a JSON response that could not be decoded. It is
// treated as a provider failure for fallback purposes and carries the raw
// text for diagnostics.
type ParseError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
