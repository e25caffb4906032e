package llm

import "context"

// Message roles understood by both providers.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one turn of a chat exchange sent to a provider.
type Message struct {
	Role    string
	Content string
}

// System returns a system-role message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User returns a user-role message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Options configures a single logical completion call.
type Options struct {
	// Tier selects the model capability level.
	Tier ModelTier
	// Temperature overrides the default low temperature when non-zero.
	Temperature float32
	// MaxTokens bounds the response size when non-zero.
	MaxTokens int
	// TokenBudget bounds the input size (approximate tokens, ~4 chars per
	// token). Zero means DefaultTokenBudget.
	TokenBudget int
	// SkipPrimary routes the call directly to the secondary provider.
	SkipPrimary bool
	// BestEffortJSON makes CompleteJSON leave the target at its zero value
	// instead of returning a ParseError when no attempt produced valid
	// JSON. Callers must opt in explicitly.
	BestEffortJSON bool

	// jsonResponse asks providers that support it for a JSON MIME type.
	// Set internally by CompleteJSON.
	jsonResponse bool
}

// StreamFunc receives response chunks as they arrive. When only the
// secondary provider is available the entire result arrives as a single
// invocation; callers must not assume uniform chunk cadence.
type StreamFunc func(chunk string)

// Client is the inference capability consumed by pipeline stages.
type Client interface {
	// CompleteText runs a chat completion and returns the text result.
	CompleteText(ctx context.Context, messages []Message, opts Options) (string, error)
	// CompleteJSON runs a chat completion and decodes the JSON payload,
	// stripping Markdown code fences, into out.
	CompleteJSON(ctx context.Context, messages []Message, opts Options, out any) error
	// CompleteStream runs a streaming completion, invoking onChunk per
	// chunk, and returns the concatenated result.
	CompleteStream(ctx context.Context, messages []Message, opts Options, onChunk StreamFunc) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// Provider is one concrete inference backend behind the gateway.
type Provider interface {
	// Name identifies the provider in logs and errors.
	Name() string
	// Complete runs one non-streaming chat completion.
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
	// Stream runs one streaming chat completion. Providers without native
	// streaming deliver the whole result as a single chunk.
	Stream(ctx context.Context, messages []Message, opts Options, onChunk StreamFunc) (string, error)
	// Close releases provider resources.
	Close() error
}
