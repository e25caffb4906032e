package evaluation

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/prompts"
	"github.com/jonathan/candidate-screener/internal/types"
)

// caveatDetailedHistory appears in the rationale of every synthetic
// experience evaluation so readers know the score is formula-only.
const caveatDetailedHistory = "detailed history unavailable"

// syntheticDiscount is subtracted from the years-match score in
// synthetic evaluations: years without a verifiable position history
// are worth less than years with one.
const syntheticDiscount = 15

// EvaluateExperience scores the candidate's work history against the
// required years and seniority. Profiles without position entries get
// a synthetic formula-based evaluation; profiles with neither entries
// nor years get a minimal one.
func (e *Evaluator) EvaluateExperience(ctx context.Context, profile *types.CandidateProfile, req *types.JobRequirements) (*types.DimensionEvaluation, error) {
	if len(profile.Experience) == 0 {
		if profile.TotalExperienceYears > 0 {
			return syntheticExperience(profile.TotalExperienceYears, req), nil
		}
		return minimalExperience(req), nil
	}

	band := types.SeniorityForYears(profile.TotalExperienceYears)
	prompt := prompts.Format(prompts.MustGet("evaluation.json", "evaluate-experience"), map[string]string{
		"JobTitle":       req.Title,
		"RequiredYears":  strconv.FormatFloat(req.RequiredYears, 'f', -1, 64),
		"Seniority":      req.Seniority,
		"Industry":       req.IndustryPreference,
		"CandidateYears": strconv.FormatFloat(profile.TotalExperienceYears, 'f', 1, 64),
		"CandidateBand":  string(band),
		"Positions":      formatPositions(profile.Experience),
	})

	payload, err := e.completeDimension(ctx, prompt, llm.TierStandard)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		e.logger.Warn("experience inference failed, using formula score", zap.Error(err))
		return syntheticExperience(profile.TotalExperienceYears, req), nil
	}

	subScores := roundSubScores(payload.SubScores)
	if subScores == nil {
		subScores = map[string]int{}
	}
	if _, ok := subScores["years_match"]; !ok {
		subScores["years_match"] = yearsMatchScore(profile.TotalExperienceYears, req.RequiredYears)
	}
	// The fixed bands double as a sanity check on the model's verdict.
	if payload.Seniority == "" || payload.Seniority != string(band) {
		subScores["seniority_match"] = seniorityMatchScore(band, req.Seniority)
	}

	return &types.DimensionEvaluation{
		Dimension:    types.DimensionExperience,
		OverallScore: roundScore(payload.OverallScore),
		SubScores:    subScores,
		Strengths:    emptyIfNil(payload.Strengths),
		Weaknesses:   emptyIfNil(payload.Weaknesses),
		Rationale:    payload.Rationale,
	}, nil
}

// syntheticExperience is the formula-only evaluation for candidates
// whose total years are known but whose position history is not.
func syntheticExperience(years float64, req *types.JobRequirements) *types.DimensionEvaluation {
	yearsMatch := yearsMatchScore(years, req.RequiredYears)
	band := types.SeniorityForYears(years)

	return &types.DimensionEvaluation{
		Dimension:    types.DimensionExperience,
		OverallScore: types.ClampScore(yearsMatch - syntheticDiscount),
		SubScores: map[string]int{
			"years_match":     yearsMatch,
			"seniority_match": seniorityMatchScore(band, req.Seniority),
		},
		Strengths:  []string{},
		Weaknesses: []string{"no verifiable position history"},
		Rationale: fmt.Sprintf("Formula-based assessment from %.1f total years against %.1f required; %s.",
			years, req.RequiredYears, caveatDetailedHistory),
		Synthetic: true,
	}
}

// minimalExperience covers profiles with no usable experience signal.
// Entry-level roles get a small credit; everything else scores near
// zero.
func minimalExperience(req *types.JobRequirements) *types.DimensionEvaluation {
	score := 5
	rationale := "No experience information in the resume; " + caveatDetailedHistory + "."
	if strings.EqualFold(req.Seniority, string(types.SeniorityEntry)) || req.RequiredYears < 2 {
		score = 25
		rationale = "No experience information in the resume; acceptable for an entry-level role but unverified; " + caveatDetailedHistory + "."
	}

	return &types.DimensionEvaluation{
		Dimension:    types.DimensionExperience,
		OverallScore: score,
		SubScores:    map[string]int{"years_match": 0},
		Strengths:    []string{},
		Weaknesses:   []string{"no experience information"},
		Rationale:    rationale,
		Synthetic:    true,
	}
}

// yearsMatchScore is the capped ratio of actual to required years.
func yearsMatchScore(years, required float64) int {
	if required <= 0 {
		return 100
	}
	return types.ClampScore(int(math.Round(years / required * 100)))
}

// seniorityMatchScore compares the candidate's band to the target:
// same band 100, one band off 70, further 40. No target scores 100.
func seniorityMatchScore(band types.SeniorityLevel, target string) int {
	if target == "" {
		return 100
	}
	order := []types.SeniorityLevel{
		types.SeniorityEntry, types.SeniorityMid, types.SenioritySenior,
		types.SeniorityLead, types.SeniorityExecutive,
	}
	have, want := -1, -1
	for i, level := range order {
		if level == band {
			have = i
		}
		if strings.EqualFold(target, string(level)) {
			want = i
		}
	}
	if want == -1 {
		return 100
	}
	switch distance := abs(have - want); {
	case distance == 0:
		return 100
	case distance == 1:
		return 70
	default:
		return 40
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// formatPositions renders experience entries for a prompt, one line
// per position.
func formatPositions(entries []types.ExperienceEntry) string {
	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString("- ")
		sb.WriteString(entry.Title)
		if entry.Company != "" {
			sb.WriteString(" at ")
			sb.WriteString(entry.Company)
		}
		if entry.Duration != "" {
			sb.WriteString(" (")
			sb.WriteString(entry.Duration)
			sb.WriteString(")")
		}
		if entry.Description != "" {
			sb.WriteString(": ")
			sb.WriteString(entry.Description)
		}
		if len(entry.Technologies) > 0 {
			sb.WriteString(" [")
			sb.WriteString(strings.Join(entry.Technologies, ", "))
			sb.WriteString("]")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
