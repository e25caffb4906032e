package evaluation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/prompts"
	"github.com/jonathan/candidate-screener/internal/types"
)

// jobDescriptionBudget bounds the job description text included in the
// skills prompt.
const jobDescriptionBudget = 500

// EvaluateSkills scores the candidate's skills against the required
// list. Exact matches are computed locally first and handed to the
// model as anchors; when the inference call fails, a deterministic
// evaluation built from those matches is returned instead.
func (e *Evaluator) EvaluateSkills(ctx context.Context, profile *types.CandidateProfile, req *types.JobRequirements) (*types.DimensionEvaluation, error) {
	matched, missing := matchSkills(profile.Skills, req.RequiredSkills)

	prompt := prompts.Format(prompts.MustGet("evaluation.json", "evaluate-skills"), map[string]string{
		"JobTitle":        req.Title,
		"RequiredSkills":  strings.Join(req.RequiredSkills, ", "),
		"JobDescription":  truncateChars(req.Description, jobDescriptionBudget),
		"CandidateSkills": strings.Join(profile.Skills, ", "),
		"Matched":         strings.Join(matched, ", "),
		"Missing":         strings.Join(missing, ", "),
	})

	payload, err := e.completeDimension(ctx, prompt, llm.TierStandard)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		e.logger.Warn("skills inference failed, using deterministic match score",
			zap.Error(err))
		return deterministicSkills(profile, req, matched, missing), nil
	}

	evaluation := &types.DimensionEvaluation{
		Dimension:    types.DimensionSkills,
		OverallScore: roundScore(payload.OverallScore),
		Matched:      emptyIfNil(payload.Matched),
		Missing:      emptyIfNil(payload.Missing),
		Additional:   emptyIfNil(payload.Additional),
		Strengths:    emptyIfNil(payload.Strengths),
		Weaknesses:   emptyIfNil(payload.Weaknesses),
		Rationale:    payload.Rationale,
	}
	// The model may upgrade equivalents to matches; if it returned no
	// lists at all, backfill from the exact comparison.
	if len(payload.Matched) == 0 && len(payload.Missing) == 0 {
		evaluation.Matched = emptyIfNil(matched)
		evaluation.Missing = emptyIfNil(missing)
	}
	return evaluation, nil
}

// deterministicSkills builds a formula-only skills evaluation from
// exact matching, used when inference is unavailable.
func deterministicSkills(profile *types.CandidateProfile, req *types.JobRequirements, matched, missing []string) *types.DimensionEvaluation {
	score := 0
	if len(req.RequiredSkills) > 0 {
		score = types.ClampScore(100 * len(matched) / len(req.RequiredSkills))
	}

	additional := []string{}
	for _, skill := range profile.Skills {
		if !containsSkill(matched, skill) {
			additional = append(additional, skill)
		}
	}

	return &types.DimensionEvaluation{
		Dimension:    types.DimensionSkills,
		OverallScore: score,
		Matched:      emptyIfNil(matched),
		Missing:      emptyIfNil(missing),
		Additional:   additional,
		Strengths:    []string{},
		Weaknesses:   []string{},
		Rationale: fmt.Sprintf("Exact skill matching only: %d of %d required skills present.",
			len(matched), len(req.RequiredSkills)),
		Synthetic: true,
	}
}

// matchSkills partitions required skills into exactly-matched and
// missing, comparing case-insensitively on whole tokens.
func matchSkills(candidateSkills, requiredSkills []string) (matched, missing []string) {
	for _, required := range requiredSkills {
		if candidateHasSkill(candidateSkills, required) {
			matched = append(matched, required)
		} else {
			missing = append(missing, required)
		}
	}
	return matched, missing
}

var skillTokenRe = regexp.MustCompile(`[a-z0-9+#.]+`)

func candidateHasSkill(candidateSkills []string, required string) bool {
	want := strings.ToLower(strings.TrimSpace(required))
	for _, have := range candidateSkills {
		lower := strings.ToLower(strings.TrimSpace(have))
		if lower == want {
			return true
		}
		// "Node.js and Express" style compound entries still match on
		// whole tokens; substring containment alone would let "go" match
		// "django".
		for _, token := range skillTokenRe.FindAllString(lower, -1) {
			if token == want {
				return true
			}
		}
	}
	return false
}

func containsSkill(skills []string, skill string) bool {
	for _, s := range skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

// truncateChars bounds free text to n characters on a rune boundary.
func truncateChars(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
