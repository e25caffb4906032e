// Package scoring produces the final decision for one candidate. The
// numeric score is always the locally computed weighted sum of the
// dimension scores; the inference call contributes only the qualitative
// narrative, never the number.
package scoring

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Default dimension weights. When cultural fit was not evaluated its
// weight is redistributed proportionally over the remaining dimensions
// rather than backfilled with a neutral score.
const (
	weightSkills      = 0.50
	weightExperience  = 0.40
	weightCulturalFit = 0.10
)

// Decision threshold bands.
const (
	thresholdShortlist = 75
	thresholdReview    = 60
)

// defaultConfidence is the neutral midpoint used when the narrative
// call supplies no confidence. Absence of an opinion is not low
// confidence.
const defaultConfidence = 50

// Scorer computes final decisions.
type Scorer struct {
	client     llm.Client
	logger     *zap.Logger
	vocabulary types.DecisionVocabulary
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithVocabulary replaces the default decision labels.
func WithVocabulary(vocabulary types.DecisionVocabulary) Option {
	return func(s *Scorer) { s.vocabulary = vocabulary }
}

// NewScorer builds a Scorer. A nil logger disables logging.
func NewScorer(client llm.Client, logger *zap.Logger, opts ...Option) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scorer{
		client:     client,
		logger:     logger,
		vocabulary: types.DefaultVocabulary(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score combines the dimension evaluations into a FinalDecision.
// culturalFit may be nil. The returned decision label always reflects
// the computed score's threshold band; the narrative model's label is
// advisory only.
func (s *Scorer) Score(ctx context.Context, req *types.JobRequirements, skills, experience, culturalFit *types.DimensionEvaluation) (*types.FinalDecision, error) {
	finalScore, componentScores := weightedScore(skills, experience, culturalFit)
	decision := s.decisionFor(finalScore)

	narrative := s.generateNarrative(ctx, req, decision, finalScore, componentScores, skills, experience, culturalFit)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if narrative.Decision != "" && narrative.Decision != decision {
		s.logger.Warn("narrative decision label disagrees with computed band",
			zap.String("narrative_decision", narrative.Decision),
			zap.String("computed_decision", decision),
			zap.Int("final_score", finalScore))
	}

	return &types.FinalDecision{
		FinalScore:         finalScore,
		Decision:           decision,
		Confidence:         narrative.confidence(),
		ComponentScores:    componentScores,
		Strengths:          narrative.Strengths,
		Weaknesses:         narrative.Weaknesses,
		Recommendations:    narrative.Recommendations,
		InterviewQuestions: narrative.InterviewQuestions,
		Rationale:          narrative.Rationale,
	}, nil
}

// weightedScore computes the deterministic final score and the
// per-dimension component map. Dimension scores are re-clamped here so
// the bound holds regardless of what produced them.
func weightedScore(skills, experience, culturalFit *types.DimensionEvaluation) (int, map[string]int) {
	skillsScore := types.ClampScore(skills.OverallScore)
	experienceScore := types.ClampScore(experience.OverallScore)

	components := map[string]int{
		string(types.DimensionSkills):     skillsScore,
		string(types.DimensionExperience): experienceScore,
	}

	wSkills, wExperience := weightSkills, weightExperience
	weighted := 0.0
	if culturalFit != nil {
		cultureScore := types.ClampScore(culturalFit.OverallScore)
		components[string(types.DimensionCulturalFit)] = cultureScore
		weighted += weightCulturalFit * float64(cultureScore)
	} else {
		remaining := weightSkills + weightExperience
		wSkills = weightSkills / remaining
		wExperience = weightExperience / remaining
	}
	weighted += wSkills*float64(skillsScore) + wExperience*float64(experienceScore)

	return types.ClampScore(int(math.Round(weighted))), components
}

// decisionFor maps a score to its threshold band's label.
func (s *Scorer) decisionFor(score int) string {
	switch {
	case score >= thresholdShortlist:
		return s.vocabulary.Shortlisted
	case score >= thresholdReview:
		return s.vocabulary.Review
	default:
		return s.vocabulary.Rejected
	}
}
