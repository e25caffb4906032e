// Package evaluation scores a candidate profile against job
// requirements along independent dimensions: skills, experience, and
// optional cultural fit. Evaluators share no state and run
// concurrently; every score leaving this package is clamped to [0,100].
package evaluation

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/schemas"
	"github.com/jonathan/candidate-screener/internal/types"
)

// evaluatorTimeout bounds one dimension's inference work.
const evaluatorTimeout = 60 * time.Second

// Evaluator runs dimension evaluations through the inference gateway.
type Evaluator struct {
	client llm.Client
	logger *zap.Logger
}

// NewEvaluator builds an Evaluator. A nil logger disables logging.
func NewEvaluator(client llm.Client, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{client: client, logger: logger}
}

// Result holds the dimension evaluations for one candidate.
// CulturalFit is nil when the requirements do not ask for it.
type Result struct {
	Skills      *types.DimensionEvaluation
	Experience  *types.DimensionEvaluation
	CulturalFit *types.DimensionEvaluation
}

// EvaluateAll runs the applicable evaluators concurrently and blocks
// until all complete. Cultural fit runs only when the requirements
// supply an industry preference or culture values.
func (e *Evaluator) EvaluateAll(ctx context.Context, profile *types.CandidateProfile, req *types.JobRequirements) (*Result, error) {
	g, gctx := errgroup.WithContext(ctx)
	var result Result

	g.Go(func() error {
		ev, err := e.EvaluateSkills(gctx, profile, req)
		result.Skills = ev
		return err
	})
	g.Go(func() error {
		ev, err := e.EvaluateExperience(gctx, profile, req)
		result.Experience = ev
		return err
	})
	if req.WantsCulturalFit() {
		g.Go(func() error {
			ev, err := e.EvaluateCulturalFit(gctx, profile, req)
			result.CulturalFit = ev
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

// dimensionPayload is the wire shape of an evaluator response. Numeric
// fields are decoded as floats so fractional model output does not fail
// the decode; normalization rounds and clamps them.
type dimensionPayload struct {
	OverallScore float64            `json:"overall_score"`
	SubScores    map[string]float64 `json:"sub_scores"`
	Seniority    string             `json:"seniority"`
	Matched      []string           `json:"matched"`
	Missing      []string           `json:"missing"`
	Additional   []string           `json:"additional"`
	Strengths    []string           `json:"strengths"`
	Weaknesses   []string           `json:"weaknesses"`
	Rationale    string             `json:"rationale"`
}

// completeDimension runs one evaluator inference call, schema-checks
// the response, and decodes it.
func (e *Evaluator) completeDimension(ctx context.Context, prompt string, tier llm.ModelTier) (*dimensionPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, evaluatorTimeout)
	defer cancel()

	raw, err := e.client.CompleteText(ctx, []llm.Message{llm.User(prompt)}, llm.Options{Tier: tier})
	if err != nil {
		return nil, err
	}

	raw = llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.DimensionEvaluation, raw); err != nil {
		return nil, &llm.ParseError{Message: "evaluation response failed schema check", Raw: raw, Cause: err}
	}

	var payload dimensionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &llm.ParseError{Message: "evaluation response is not valid JSON", Raw: raw, Cause: err}
	}
	return &payload, nil
}

// roundScore converts a model-reported float score to a clamped int.
func roundScore(score float64) int {
	return types.ClampScore(int(math.Round(score)))
}

// roundSubScores clamps every sub-score; nil input yields nil.
func roundSubScores(subScores map[string]float64) map[string]int {
	if subScores == nil {
		return nil
	}
	rounded := make(map[string]int, len(subScores))
	for name, score := range subScores {
		rounded[name] = roundScore(score)
	}
	return rounded
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
