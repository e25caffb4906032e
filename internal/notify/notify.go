// Package notify delivers post-decision notifications. Delivery is
// decoupled from scoring: a notification failure never alters a
// recorded decision.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/types"
)

// LogNotifier records decision outcomes in the structured log. It is
// the default sink and a stand-in for real delivery channels (email,
// ATS webhooks).
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds a LogNotifier. A nil logger disables output.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// NotifyDecision logs the candidate's contact info and outcome.
func (n *LogNotifier) NotifyDecision(_ context.Context, input *types.CandidateInput, decision *types.FinalDecision) error {
	n.logger.Info("candidate decision",
		zap.String("candidate_id", input.CandidateID),
		zap.String("name", input.Name),
		zap.String("email", input.Email),
		zap.String("decision", decision.Decision),
		zap.Int("final_score", decision.FinalScore),
		zap.Int("confidence", decision.Confidence))
	return nil
}
