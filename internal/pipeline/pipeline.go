// Package pipeline orchestrates the screening flow for one candidate:
// document text extraction, structured profile extraction, concurrent
// dimension evaluation, and final scoring. It also provides the batch
// coordinator, which runs many candidates with per-candidate isolation.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/docext"
	"github.com/jonathan/candidate-screener/internal/evaluation"
	"github.com/jonathan/candidate-screener/internal/extraction"
	"github.com/jonathan/candidate-screener/internal/scoring"
	"github.com/jonathan/candidate-screener/internal/types"
)

// defaultCandidateTimeout bounds one candidate's end-to-end pipeline
// run, inference retries included.
const defaultCandidateTimeout = 5 * time.Minute

// Store persists finished decisions. It is write-only from the
// pipeline's perspective: nothing here ever reads it back to influence
// a decision.
type Store interface {
	SaveDecision(ctx context.Context, candidateID, jobID string, decision *types.FinalDecision) error
}

// Notifier is invoked after a decision is recorded. A notifier failure
// never alters the decision.
type Notifier interface {
	NotifyDecision(ctx context.Context, input *types.CandidateInput, decision *types.FinalDecision) error
}

// Pipeline wires the screening stages together.
type Pipeline struct {
	extractor *docext.Extractor
	parser    *extraction.Extractor
	evaluator *evaluation.Evaluator
	scorer    *scoring.Scorer
	store     Store
	notifier  Notifier
	logger    *zap.Logger

	candidateTimeout time.Duration
	interItemDelay   time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStore attaches a persistence sink for finished decisions.
func WithStore(store Store) Option {
	return func(p *Pipeline) { p.store = store }
}

// WithNotifier attaches a post-decision notification sink.
func WithNotifier(notifier Notifier) Option {
	return func(p *Pipeline) { p.notifier = notifier }
}

// WithCandidateTimeout overrides the per-candidate deadline.
func WithCandidateTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) { p.candidateTimeout = timeout }
}

// WithInterItemDelay sets the pacing delay between batch candidates.
// Zero disables pacing.
func WithInterItemDelay(delay time.Duration) Option {
	return func(p *Pipeline) { p.interItemDelay = delay }
}

// New builds a Pipeline. A nil logger disables logging.
func New(extractor *docext.Extractor, parser *extraction.Extractor, evaluator *evaluation.Evaluator, scorer *scoring.Scorer, logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{
		extractor:        extractor,
		parser:           parser,
		evaluator:        evaluator,
		scorer:           scorer,
		logger:           logger,
		candidateTimeout: defaultCandidateTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Evaluate runs the full screening pipeline for one candidate and
// returns the final decision. Requirements are validated before any
// stage runs; invalid extracted text stops the run before evaluators
// are invoked.
func (p *Pipeline) Evaluate(ctx context.Context, input *types.CandidateInput) (*types.FinalDecision, error) {
	req := &input.Requirements
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.candidateTimeout)
	defer cancel()

	logger := p.logger.With(zap.String("candidate_id", input.CandidateID))

	text, err := p.resumeText(ctx, input)
	if err != nil {
		return nil, err
	}

	profile := p.parser.Parse(ctx, text, input.Known())
	logger.Info("candidate profile extracted",
		zap.Int("skills", len(profile.Skills)),
		zap.Int("positions", len(profile.Experience)),
		zap.Float64("total_years", profile.TotalExperienceYears))

	evals, err := p.evaluator.EvaluateAll(ctx, profile, req)
	if err != nil {
		return nil, err
	}

	decision, err := p.scorer.Score(ctx, req, evals.Skills, evals.Experience, evals.CulturalFit)
	if err != nil {
		return nil, err
	}
	logger.Info("decision computed",
		zap.Int("final_score", decision.FinalScore),
		zap.String("decision", decision.Decision))

	p.persist(ctx, input, decision)
	p.notify(ctx, input, decision)

	return decision, nil
}

// resumeText resolves the candidate's resume to validated text, from
// either the pre-supplied text or the raw document.
func (p *Pipeline) resumeText(ctx context.Context, input *types.CandidateInput) (string, error) {
	if input.ResumeText != "" {
		extracted := docext.Validate(docext.CleanText(input.ResumeText))
		if !extracted.Valid {
			return "", &docext.InputQualityError{Reason: extracted.Reason}
		}
		return extracted.Text, nil
	}
	if input.Document == nil {
		return "", &types.ValidationError{
			Field:   "document",
			Message: "either resume_text or document is required",
		}
	}
	extracted, err := p.extractor.Extract(ctx, *input.Document)
	if err != nil {
		return "", err
	}
	return extracted.Text, nil
}

// persist writes the decision to the store, best-effort.
func (p *Pipeline) persist(ctx context.Context, input *types.CandidateInput, decision *types.FinalDecision) {
	if p.store == nil {
		return
	}
	if err := p.store.SaveDecision(ctx, input.CandidateID, input.Requirements.JobID, decision); err != nil {
		p.logger.Warn("failed to persist decision",
			zap.String("candidate_id", input.CandidateID),
			zap.Error(err))
	}
}

// notify invokes the notification sink, best-effort.
func (p *Pipeline) notify(ctx context.Context, input *types.CandidateInput, decision *types.FinalDecision) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.NotifyDecision(ctx, input, decision); err != nil {
		p.logger.Warn("decision notification failed",
			zap.String("candidate_id", input.CandidateID),
			zap.Error(err))
	}
}
