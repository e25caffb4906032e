//nolint:revive // types is a standard Go package name pattern
package types

// Decision labels in the default vocabulary.
const (
	DecisionShortlisted = "shortlisted"
	DecisionReview      = "review"
	DecisionRejected    = "rejected"
)

// DecisionVocabulary maps the fixed threshold bands to caller-supplied
// labels. The zero value is not usable; use DefaultVocabulary.
type DecisionVocabulary struct {
	Shortlisted string `json:"shortlisted"`
	Review      string `json:"review"`
	Rejected    string `json:"rejected"`
}

// DefaultVocabulary returns the standard decision labels.
func DefaultVocabulary() DecisionVocabulary {
	return DecisionVocabulary{
		Shortlisted: DecisionShortlisted,
		Review:      DecisionReview,
		Rejected:    DecisionRejected,
	}
}

// FinalDecision is the terminal artifact of one pipeline run. The core
// performs no mutation after emission; the caller owns it.
type FinalDecision struct {
	FinalScore         int            `json:"final_score"`
	Decision           string         `json:"decision"`
	Confidence         int            `json:"confidence"`
	ComponentScores    map[string]int `json:"component_scores"`
	Strengths          []string       `json:"strengths"`
	Weaknesses         []string       `json:"weaknesses"`
	Recommendations    []string       `json:"recommendations"`
	InterviewQuestions []string       `json:"interview_questions"`
	Rationale          string         `json:"rationale"`
}
