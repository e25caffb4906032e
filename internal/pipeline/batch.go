package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/types"
)

// RunBatch evaluates candidates sequentially with an inter-candidate
// pacing delay (skipped after the last item). Each candidate runs in
// its own error boundary: a failure, including a panic, becomes a
// failed outcome for that candidate only. Cancelling the context stops
// scheduling new candidates; outcomes already recorded remain valid.
func (p *Pipeline) RunBatch(ctx context.Context, candidates []types.CandidateInput) *types.BatchRun {
	run := &types.BatchRun{}
	p.logger.Info("batch started", zap.Int("candidates", len(candidates)))

	for i := range candidates {
		if ctx.Err() != nil {
			run.Cancelled = true
			p.logger.Info("batch cancelled",
				zap.Int("completed", run.Total),
				zap.Int("remaining", len(candidates)-i))
			break
		}

		run.Record(p.evaluateItem(ctx, &candidates[i]))

		if i < len(candidates)-1 && p.interItemDelay > 0 {
			select {
			case <-ctx.Done():
				run.Cancelled = true
				p.logger.Info("batch cancelled during pacing delay",
					zap.Int("completed", run.Total))
				return run
			case <-time.After(p.interItemDelay):
			}
		}
	}

	p.logger.Info("batch finished",
		zap.Int("total", run.Total),
		zap.Int("successful", run.Successful),
		zap.Int("failed", run.Failed),
		zap.Bool("cancelled", run.Cancelled))
	return run
}

// evaluateItem runs one candidate inside a recover boundary so a panic
// in any stage is captured as that candidate's failure.
func (p *Pipeline) evaluateItem(ctx context.Context, input *types.CandidateInput) (item types.BatchItem) {
	item.CandidateID = input.CandidateID
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("candidate pipeline panicked",
				zap.String("candidate_id", input.CandidateID),
				zap.Any("panic", r))
			item.Decision = nil
			item.Error = (&BatchItemError{
				CandidateID: input.CandidateID,
				Cause:       fmt.Errorf("panic: %v", r),
			}).Error()
		}
	}()

	decision, err := p.Evaluate(ctx, input)
	if err != nil {
		p.logger.Warn("candidate evaluation failed",
			zap.String("candidate_id", input.CandidateID),
			zap.Error(err))
		item.Error = (&BatchItemError{CandidateID: input.CandidateID, Cause: err}).Error()
		return item
	}
	item.Decision = decision
	return item
}
