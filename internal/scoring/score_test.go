package scoring

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/types"
)

type fakeClient struct {
	response string
	err      error
}

func (f *fakeClient) CompleteText(_ context.Context, _ []llm.Message, _ llm.Options) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) CompleteJSON(_ context.Context, _ []llm.Message, _ llm.Options, out any) error {
	return f.err
}

func (f *fakeClient) CompleteStream(_ context.Context, _ []llm.Message, _ llm.Options, onChunk llm.StreamFunc) (string, error) {
	if f.err == nil {
		onChunk(f.response)
	}
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func dimension(d types.Dimension, score int) *types.DimensionEvaluation {
	return &types.DimensionEvaluation{Dimension: d, OverallScore: score}
}

func requirements() *types.JobRequirements {
	return &types.JobRequirements{Title: "Backend Engineer", RequiredSkills: []string{"Go"}}
}

const narrativeJSON = `{
	"decision": "shortlisted",
	"confidence": 80,
	"strengths": ["strong Go background"],
	"weaknesses": ["no Kafka"],
	"recommendations": ["schedule technical interview"],
	"interview_questions": ["Describe a production incident you debugged."],
	"rationale": "Well matched overall."
}`

func TestWeightedScore(t *testing.T) {
	tests := []struct {
		name        string
		skills      int
		experience  int
		culturalFit int // -1 means not evaluated
		want        int
	}{
		{"all dimensions", 80, 70, 60, 74},
		{"perfect scores", 100, 100, 100, 100},
		{"zero scores", 0, 0, 0, 0},
		{"renormalized without culture", 80, 70, -1, 76},
		{"renormalized keeps perfect score", 100, 100, -1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var culture *types.DimensionEvaluation
			if tt.culturalFit >= 0 {
				culture = dimension(types.DimensionCulturalFit, tt.culturalFit)
			}
			score, components := weightedScore(
				dimension(types.DimensionSkills, tt.skills),
				dimension(types.DimensionExperience, tt.experience),
				culture)

			assert.Equal(t, tt.want, score)
			assert.Equal(t, tt.skills, components["skills"])
			if tt.culturalFit >= 0 {
				assert.Equal(t, tt.culturalFit, components["cultural_fit"])
			} else {
				assert.NotContains(t, components, "cultural_fit")
			}
		})
	}
}

// Out-of-range dimension scores never escape the final result.
func TestWeightedScore_ClampsOutOfRangeInputs(t *testing.T) {
	for _, scores := range [][3]int{{-50, 400, 90}, {800, -3, -7}, {101, 101, 101}} {
		score, components := weightedScore(
			dimension(types.DimensionSkills, scores[0]),
			dimension(types.DimensionExperience, scores[1]),
			dimension(types.DimensionCulturalFit, scores[2]))

		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
		for name, component := range components {
			assert.GreaterOrEqual(t, component, 0, name)
			assert.LessOrEqual(t, component, 100, name)
		}
	}
}

func TestScore_ThresholdBands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, types.DecisionShortlisted},
		{75, types.DecisionShortlisted},
		{74, types.DecisionReview},
		{60, types.DecisionReview},
		{59, types.DecisionRejected},
		{0, types.DecisionRejected},
	}

	scorer := NewScorer(&fakeClient{err: errors.New("no narrative")}, nil)
	for _, tt := range tests {
		t.Run(fmt.Sprintf("score %d", tt.score), func(t *testing.T) {
			decision, err := scorer.Score(context.Background(), requirements(),
				dimension(types.DimensionSkills, tt.score),
				dimension(types.DimensionExperience, tt.score),
				nil)
			require.NoError(t, err)
			assert.Equal(t, tt.score, decision.FinalScore)
			assert.Equal(t, tt.want, decision.Decision)
		})
	}
}

// The narrative model's decision label is advisory: the computed band
// wins whenever they disagree.
func TestScore_NarrativeLabelNeverOverridesBand(t *testing.T) {
	client := &fakeClient{response: `{"decision": "rejected", "confidence": 90, "rationale": "model disagrees"}`}
	scorer := NewScorer(client, nil)

	decision, err := scorer.Score(context.Background(), requirements(),
		dimension(types.DimensionSkills, 90),
		dimension(types.DimensionExperience, 85),
		nil)

	require.NoError(t, err)
	assert.Equal(t, types.DecisionShortlisted, decision.Decision)
	assert.GreaterOrEqual(t, decision.FinalScore, 75)
}

func TestScore_NarrativeFieldsCarriedThrough(t *testing.T) {
	scorer := NewScorer(&fakeClient{response: narrativeJSON}, nil)

	decision, err := scorer.Score(context.Background(), requirements(),
		dimension(types.DimensionSkills, 90),
		dimension(types.DimensionExperience, 80),
		nil)

	require.NoError(t, err)
	assert.Equal(t, 80, decision.Confidence)
	assert.Equal(t, []string{"strong Go background"}, decision.Strengths)
	assert.Equal(t, []string{"schedule technical interview"}, decision.Recommendations)
	assert.Equal(t, "Well matched overall.", decision.Rationale)
}

func TestScore_ConfidenceDefaultsToNeutral(t *testing.T) {
	scorer := NewScorer(&fakeClient{response: `{"decision": "shortlisted", "rationale": "ok"}`}, nil)

	decision, err := scorer.Score(context.Background(), requirements(),
		dimension(types.DimensionSkills, 90),
		dimension(types.DimensionExperience, 80),
		nil)

	require.NoError(t, err)
	assert.Equal(t, defaultConfidence, decision.Confidence)
}

func TestScore_ConfidenceClamped(t *testing.T) {
	scorer := NewScorer(&fakeClient{response: `{"confidence": 900, "rationale": "ok"}`}, nil)

	decision, err := scorer.Score(context.Background(), requirements(),
		dimension(types.DimensionSkills, 90),
		dimension(types.DimensionExperience, 80),
		nil)

	require.NoError(t, err)
	assert.Equal(t, 100, decision.Confidence)
}

func TestScore_NarrativeFailureDegrades(t *testing.T) {
	scorer := NewScorer(&fakeClient{err: errors.New("all providers down")}, nil)

	skills := dimension(types.DimensionSkills, 90)
	skills.Missing = []string{"Kafka"}
	skills.Strengths = []string{"deep Go experience"}

	decision, err := scorer.Score(context.Background(), requirements(),
		skills, dimension(types.DimensionExperience, 80), nil)

	require.NoError(t, err)
	assert.Equal(t, types.DecisionShortlisted, decision.Decision)
	assert.Equal(t, defaultConfidence, decision.Confidence)
	assert.Contains(t, decision.Strengths, "deep Go experience")
	assert.Contains(t, decision.Weaknesses, "missing required skill: Kafka")
	assert.NotEmpty(t, decision.Rationale)
}

func TestScore_CustomVocabulary(t *testing.T) {
	vocabulary := types.DecisionVocabulary{
		Shortlisted: "advance",
		Review:      "hold",
		Rejected:    "pass",
	}
	scorer := NewScorer(&fakeClient{err: errors.New("no narrative")}, nil, WithVocabulary(vocabulary))

	decision, err := scorer.Score(context.Background(), requirements(),
		dimension(types.DimensionSkills, 65),
		dimension(types.DimensionExperience, 65),
		nil)

	require.NoError(t, err)
	assert.Equal(t, "hold", decision.Decision)
}
