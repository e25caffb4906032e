package docext

import (
	"fmt"

	"github.com/jonathan/candidate-screener/internal/types"
)

// InputQualityError indicates extracted text failed validation. No
// downstream stage runs after one is returned.
type InputQualityError struct {
	Reason types.QualityReason
}

func (e *InputQualityError) Error() string {
	return fmt.Sprintf("input quality check failed: %s", e.Reason)
}

// ExtractionError indicates the document could not be processed at all
// (engine failure, undecodable bytes). It is fatal for this document only;
// the caller may retry.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("document extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
