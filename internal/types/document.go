// Package types provides type definitions for structured data used throughout the candidate-screener system.
package types

// RawDocument is an opaque resume document as received from the caller.
// The pipeline never persists it; ownership stays with the caller.
type RawDocument struct {
	Data     []byte `json:"-"`
	Filename string `json:"filename,omitempty"`
}

// QualityReason is the reason code attached to an invalid text verdict.
type QualityReason string

// Quality reason codes for extracted text validation.
const (
	ReasonNone       QualityReason = ""
	ReasonEmpty      QualityReason = "no text extracted"
	ReasonTooShort   QualityReason = "too short"
	ReasonUnreadable QualityReason = "corrupted/unreadable"
)

// ExtractedText is normalized resume text plus its quality verdict.
// Downstream stages must refuse to run when Valid is false.
type ExtractedText struct {
	Text   string        `json:"text"`
	Valid  bool          `json:"valid"`
	Reason QualityReason `json:"reason,omitempty"`
}
