// Package extraction turns cleaned resume text into a structured
// CandidateProfile. Extraction is tiered: a full-profile inference call
// first, a narrower skills-only repair call when that yields no skills,
// and finally a deterministic dictionary and heading scan, so a profile
// never comes back with an empty skill list while skill-like text
// exists in the source.
package extraction

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/prompts"
	"github.com/jonathan/candidate-screener/internal/schemas"
	"github.com/jonathan/candidate-screener/internal/types"
)

// profileTokenBudget bounds the resume text sent per extraction call to
// keep latency and cost predictable.
const profileTokenBudget = 3000

// Extractor runs the tiered profile extraction.
type Extractor struct {
	client  llm.Client
	logger  *zap.Logger
	nowYear int
}

// NewExtractor builds an Extractor. A nil logger disables logging.
func NewExtractor(client llm.Client, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{client: client, logger: logger, nowYear: currentYear()}
}

// Parse extracts a CandidateProfile from validated resume text. It
// degrades through the repair tiers instead of failing: the result is
// always a usable profile, though a sparse one when every inference
// call failed. Caller-supplied known fields override extracted values.
func (e *Extractor) Parse(ctx context.Context, resumeText string, known types.KnownFields) *types.CandidateProfile {
	profile, err := e.extractProfile(ctx, resumeText)
	if err != nil {
		e.logger.Warn("full profile extraction failed, continuing with repair tiers",
			zap.Error(err))
		profile = types.NewCandidateProfile()
	}

	if len(profile.Skills) == 0 {
		skills, err := e.extractSkills(ctx, resumeText)
		if err != nil {
			e.logger.Warn("skills-only extraction failed", zap.Error(err))
		}
		profile.AddSkills(skills)
	}

	if len(profile.Skills) == 0 {
		e.logger.Info("using deterministic skill fallback")
		profile.AddSkills(fallbackSkills(resumeText))
	}

	profile.ApplyKnownFields(known)

	if profile.TotalExperienceYears <= 0 && len(profile.Experience) > 0 {
		profile.TotalExperienceYears = totalYearsFromEntries(profile.Experience, e.nowYear)
	}

	return profile
}

// extractProfile is the Tier 1 full-profile call. The response is
// schema-checked before it is decoded and normalized.
func (e *Extractor) extractProfile(ctx context.Context, resumeText string) (*types.CandidateProfile, error) {
	prompt := prompts.Format(prompts.MustGet("extraction.json", "extract-profile"),
		map[string]string{"ResumeText": resumeText})

	raw, err := e.client.CompleteText(ctx, []llm.Message{llm.User(prompt)}, llm.Options{
		Tier:        llm.TierStandard,
		TokenBudget: profileTokenBudget,
	})
	if err != nil {
		return nil, err
	}

	raw = llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.CandidateProfile, raw); err != nil {
		return nil, &llm.ParseError{Message: "profile response failed schema check", Raw: raw, Cause: err}
	}

	var payload profilePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &llm.ParseError{Message: "profile response is not valid JSON", Raw: raw, Cause: err}
	}

	return normalizeProfile(&payload), nil
}

// extractSkills is the Tier 2 skills-only repair call.
func (e *Extractor) extractSkills(ctx context.Context, resumeText string) ([]string, error) {
	prompt := prompts.Format(prompts.MustGet("extraction.json", "extract-skills"),
		map[string]string{"ResumeText": resumeText})

	var payload struct {
		Skills []string `json:"skills"`
	}
	err := e.client.CompleteJSON(ctx, []llm.Message{llm.User(prompt)}, llm.Options{
		Tier:        llm.TierLite,
		TokenBudget: profileTokenBudget,
	}, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Skills, nil
}
