package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/prompts"
	"github.com/jonathan/candidate-screener/internal/schemas"
	"github.com/jonathan/candidate-screener/internal/types"
)

// narrativePayload is the wire shape of the narrative response.
// Confidence is a pointer so an absent value is distinguishable from an
// explicit zero.
type narrativePayload struct {
	Decision           string   `json:"decision"`
	Confidence         *float64 `json:"confidence"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	Recommendations    []string `json:"recommendations"`
	InterviewQuestions []string `json:"interview_questions"`
	Rationale          string   `json:"rationale"`
}

func (n *narrativePayload) confidence() int {
	if n.Confidence == nil {
		return defaultConfidence
	}
	return types.ClampScore(int(*n.Confidence))
}

// generateNarrative asks the model for the qualitative summary. On any
// failure it degrades to a narrative assembled from the dimension
// evaluations; the decision has already been made and is unaffected.
func (s *Scorer) generateNarrative(ctx context.Context, req *types.JobRequirements, decision string, finalScore int, componentScores map[string]int, skills, experience, culturalFit *types.DimensionEvaluation) *narrativePayload {
	cultureRationale := "not assessed"
	if culturalFit != nil {
		cultureRationale = culturalFit.Rationale
	}

	prompt := prompts.Format(prompts.MustGet("scoring.json", "final-narrative"), map[string]string{
		"JobTitle":            req.Title,
		"FinalScore":          strconv.Itoa(finalScore),
		"Decision":            decision,
		"ComponentScores":     formatComponents(componentScores),
		"SkillsRationale":     skills.Rationale,
		"ExperienceRationale": experience.Rationale,
		"CultureRationale":    cultureRationale,
	})

	raw, err := s.client.CompleteText(ctx, []llm.Message{llm.User(prompt)}, llm.Options{Tier: llm.TierAdvanced})
	if err == nil {
		raw = llm.CleanJSONBlock(raw)
		if schemaErr := schemas.Validate(schemas.Narrative, raw); schemaErr != nil {
			err = schemaErr
		} else {
			var payload narrativePayload
			if err = json.Unmarshal([]byte(raw), &payload); err == nil {
				normalizeNarrative(&payload)
				return &payload
			}
		}
	}

	s.logger.Warn("narrative generation failed, assembling from dimension output",
		zap.Error(err))
	return fallbackNarrative(decision, finalScore, skills, experience, culturalFit)
}

func normalizeNarrative(payload *narrativePayload) {
	payload.Strengths = nonNil(payload.Strengths)
	payload.Weaknesses = nonNil(payload.Weaknesses)
	payload.Recommendations = nonNil(payload.Recommendations)
	payload.InterviewQuestions = nonNil(payload.InterviewQuestions)
}

// fallbackNarrative builds a serviceable narrative without inference.
func fallbackNarrative(decision string, finalScore int, skills, experience, culturalFit *types.DimensionEvaluation) *narrativePayload {
	strengths := append([]string{}, skills.Strengths...)
	strengths = append(strengths, experience.Strengths...)
	weaknesses := append([]string{}, skills.Weaknesses...)
	weaknesses = append(weaknesses, experience.Weaknesses...)
	if culturalFit != nil {
		strengths = append(strengths, culturalFit.Strengths...)
		weaknesses = append(weaknesses, culturalFit.Weaknesses...)
	}
	for _, missing := range skills.Missing {
		weaknesses = append(weaknesses, "missing required skill: "+missing)
	}

	return &narrativePayload{
		Decision:           decision,
		Strengths:          strengths,
		Weaknesses:         weaknesses,
		Recommendations:    []string{},
		InterviewQuestions: []string{},
		Rationale: fmt.Sprintf("Automated assessment: weighted score %d (%s). Skills: %s Experience: %s",
			finalScore, decision, skills.Rationale, experience.Rationale),
	}
}

func formatComponents(componentScores map[string]int) string {
	parts := make([]string, 0, len(componentScores))
	for _, dimension := range []string{
		string(types.DimensionSkills),
		string(types.DimensionExperience),
		string(types.DimensionCulturalFit),
	} {
		if score, ok := componentScores[dimension]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", dimension, score))
		}
	}
	return strings.Join(parts, ", ")
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
