package pipeline

import "fmt"

// BatchItemError scopes a pipeline failure to one candidate within a
// batch. It is recorded in that candidate's outcome and never aborts
// sibling candidates.
type BatchItemError struct {
	CandidateID string
	Cause       error
}

func (e *BatchItemError) Error() string {
	return fmt.Sprintf("candidate %s: %v", e.CandidateID, e.Cause)
}

func (e *BatchItemError) Unwrap() error {
	return e.Cause
}
