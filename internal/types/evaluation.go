//nolint:revive // types is a standard Go package name pattern
package types

// Dimension is one independently scored axis of candidate fit.
type Dimension string

// Scored dimensions.
const (
	DimensionSkills      Dimension = "skills"
	DimensionExperience  Dimension = "experience"
	DimensionCulturalFit Dimension = "cultural_fit"
)

// DimensionEvaluation is the outcome of scoring one dimension. It is
// created once per pipeline run and immutable after creation.
type DimensionEvaluation struct {
	Dimension    Dimension      `json:"dimension"`
	OverallScore int            `json:"overall_score"`
	SubScores    map[string]int `json:"sub_scores,omitempty"`
	Matched      []string       `json:"matched,omitempty"`
	Missing      []string       `json:"missing,omitempty"`
	Additional   []string       `json:"additional,omitempty"`
	Strengths    []string       `json:"strengths,omitempty"`
	Weaknesses   []string       `json:"weaknesses,omitempty"`
	Rationale    string         `json:"rationale,omitempty"`
	// Synthetic marks an evaluation computed by fixed formula instead of
	// an inference call.
	Synthetic bool `json:"synthetic,omitempty"`
}

// ClampScore bounds a score to [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
