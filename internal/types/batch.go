//nolint:revive // types is a standard Go package name pattern
package types

// CandidateInput is everything the pipeline needs to evaluate one
// candidate. Exactly one of Document or ResumeText must be set.
type CandidateInput struct {
	CandidateID  string          `json:"candidate_id"`
	Name         string          `json:"name,omitempty"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Document     *RawDocument    `json:"document,omitempty"`
	ResumeText   string          `json:"resume_text,omitempty"`
	Requirements JobRequirements `json:"requirements"`
}

// Known returns the caller-supplied identity fields for this candidate.
func (c *CandidateInput) Known() KnownFields {
	return KnownFields{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

// BatchItem is the outcome for a single candidate within a batch: either a
// decision or an error record, never both.
type BatchItem struct {
	CandidateID string         `json:"candidate_id"`
	Decision    *FinalDecision `json:"decision,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// Failed reports whether this item recorded an error instead of a decision.
func (i *BatchItem) Failed() bool {
	return i.Error != ""
}

// BatchRun aggregates per-candidate outcomes in original order. Counters
// are maintained incrementally and are monotonically non-decreasing; the
// run is immutable once the last candidate finishes or the batch is
// cancelled.
type BatchRun struct {
	Items      []BatchItem `json:"items"`
	Successful int         `json:"successful"`
	Failed     int         `json:"failed"`
	Total      int         `json:"total"`
	Cancelled  bool        `json:"cancelled,omitempty"`
}

// Record appends one candidate outcome and updates the counters.
func (b *BatchRun) Record(item BatchItem) {
	b.Items = append(b.Items, item)
	b.Total++
	if item.Failed() {
		b.Failed++
	} else {
		b.Successful++
	}
}
