package evaluation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/prompts"
	"github.com/jonathan/candidate-screener/internal/types"
)

// neutralCultureScore is used when cultural-fit inference fails:
// resumes carry weak cultural signal, so absence of a verdict is
// treated as neutral rather than negative.
const neutralCultureScore = 50

// EvaluateCulturalFit scores alignment with the company's stated
// values. Callers should only invoke it when the requirements ask for
// it (see JobRequirements.WantsCulturalFit).
func (e *Evaluator) EvaluateCulturalFit(ctx context.Context, profile *types.CandidateProfile, req *types.JobRequirements) (*types.DimensionEvaluation, error) {
	values := req.CultureValues
	if len(values) == 0 && req.IndustryPreference != "" {
		values = []string{req.IndustryPreference + " industry background"}
	}

	prompt := prompts.Format(prompts.MustGet("evaluation.json", "evaluate-culture"), map[string]string{
		"CultureValues": strings.Join(values, ", "),
		"JobTitle":      req.Title,
		"Summary":       profile.Summary,
		"Positions":     formatPositions(profile.Experience),
	})

	payload, err := e.completeDimension(ctx, prompt, llm.TierLite)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		e.logger.Warn("cultural fit inference failed, using neutral score", zap.Error(err))
		return &types.DimensionEvaluation{
			Dimension:    types.DimensionCulturalFit,
			OverallScore: neutralCultureScore,
			Strengths:    []string{},
			Weaknesses:   []string{},
			Rationale:    "Cultural fit could not be assessed; neutral score assigned.",
			Synthetic:    true,
		}, nil
	}

	return &types.DimensionEvaluation{
		Dimension:    types.DimensionCulturalFit,
		OverallScore: roundScore(payload.OverallScore),
		Strengths:    emptyIfNil(payload.Strengths),
		Weaknesses:   emptyIfNil(payload.Weaknesses),
		Rationale:    payload.Rationale,
	}, nil
}
