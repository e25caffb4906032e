package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Gateway routes completion calls to a primary provider with a single
// synchronous fallback to a secondary provider. It is the only component
// that talks to inference backends, so rate limiting is centralized here
// rather than per pipeline.
type Gateway struct {
	primary   Provider // nil when unconfigured
	secondary Provider
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithRateLimit throttles outbound calls to n per second with the given
// burst. All pipelines share this budget.
func WithRateLimit(perSecond float64, burst int) GatewayOption {
	return func(g *Gateway) {
		g.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewGateway builds a gateway over the given providers. primary may be nil
// when the primary provider is unconfigured; calls then route directly to
// the secondary provider. At least one provider must be non-nil.
func NewGateway(primary, secondary Provider, logger *zap.Logger, opts ...GatewayOption) (*Gateway, error) {
	if primary == nil && secondary == nil {
		return nil, fmt.Errorf("at least one provider is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Gateway{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(g)
	}

	if primary == nil {
		// Informational, not an error: the deployment simply runs on the
		// secondary provider.
		logger.Info("primary inference provider unconfigured, routing to secondary",
			zap.String("secondary", secondary.Name()))
	}
	return g, nil
}

// attempts returns the provider order for one logical call. The fallback
// happens at most once: the list never exceeds two entries.
func (g *Gateway) attempts(opts Options) []Provider {
	var chain []Provider
	if g.primary != nil && !opts.SkipPrimary {
		chain = append(chain, g.primary)
	}
	if g.secondary != nil {
		chain = append(chain, g.secondary)
	}
	return chain
}

// prepare applies the token budget guard to message contents.
func (g *Gateway) prepare(messages []Message, opts Options) []Message {
	prepared := make([]Message, len(messages))
	for i, m := range messages {
		text, truncated := TruncateToTokens(m.Content, opts.TokenBudget)
		if truncated {
			g.logger.Warn("input truncated to token budget",
				zap.String("role", m.Role),
				zap.Int("budget_tokens", opts.TokenBudget),
				zap.Int("original_chars", len(m.Content)))
		}
		prepared[i] = Message{Role: m.Role, Content: text}
	}
	return prepared
}

func (g *Gateway) wait(ctx context.Context) error {
	if g.limiter == nil {
		return nil
	}
	return g.limiter.Wait(ctx)
}

// CompleteText runs a chat completion and returns the text result.
func (g *Gateway) CompleteText(ctx context.Context, messages []Message, opts Options) (string, error) {
	chain := g.attempts(opts)
	if len(chain) == 0 {
		return "", &ProviderError{Message: "no provider available"}
	}
	messages = g.prepare(messages, opts)

	var lastErr error
	for _, provider := range chain {
		if err := g.wait(ctx); err != nil {
			return "", err
		}
		text, err := provider.Complete(ctx, messages, opts)
		if err == nil {
			return text, nil
		}
		lastErr = err
		g.logger.Warn("provider call failed",
			zap.String("provider", provider.Name()),
			zap.Error(err))
	}
	return "", lastErr
}

// CompleteJSON runs a chat completion and decodes the JSON payload into
// out. A parse failure on the primary's output triggers the same fallback
// as a provider error; only exhaustion of both providers surfaces an
// error, as a ParseError carrying the raw text when parsing was the last
// failure.
func (g *Gateway) CompleteJSON(ctx context.Context, messages []Message, opts Options, out any) error {
	chain := g.attempts(opts)
	if len(chain) == 0 {
		return &ProviderError{Message: "no provider available"}
	}
	opts.jsonResponse = true
	messages = g.prepare(messages, opts)

	var lastErr error
	for _, provider := range chain {
		if err := g.wait(ctx); err != nil {
			return err
		}
		text, err := provider.Complete(ctx, messages, opts)
		if err != nil {
			lastErr = err
			g.logger.Warn("provider call failed",
				zap.String("provider", provider.Name()),
				zap.Error(err))
			continue
		}

		cleaned := CleanJSONBlock(text)
		if err := json.Unmarshal([]byte(cleaned), out); err != nil {
			lastErr = &ParseError{Message: "failed to decode JSON response", Raw: text, Cause: err}
			g.logger.Warn("provider returned undecodable JSON",
				zap.String("provider", provider.Name()),
				zap.Error(err))
			continue
		}
		return nil
	}

	if opts.BestEffortJSON {
		g.logger.Warn("all providers exhausted, returning empty default", zap.Error(lastErr))
		return nil
	}
	return lastErr
}

// CompleteStream runs a streaming completion. When the primary provider is
// unavailable the call degrades to a single non-streaming secondary call
// delivered as one chunk.
func (g *Gateway) CompleteStream(ctx context.Context, messages []Message, opts Options, onChunk StreamFunc) (string, error) {
	chain := g.attempts(opts)
	if len(chain) == 0 {
		return "", &ProviderError{Message: "no provider available"}
	}
	messages = g.prepare(messages, opts)

	var lastErr error
	for _, provider := range chain {
		if err := g.wait(ctx); err != nil {
			return "", err
		}
		text, err := provider.Stream(ctx, messages, opts, onChunk)
		if err == nil {
			return text, nil
		}
		lastErr = err
		g.logger.Warn("provider stream failed",
			zap.String("provider", provider.Name()),
			zap.Error(err))
	}
	return "", lastErr
}

// Close releases both providers.
func (g *Gateway) Close() error {
	var firstErr error
	for _, provider := range []Provider{g.primary, g.secondary} {
		if provider == nil {
			continue
		}
		if err := provider.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ Client = (*Gateway)(nil)
