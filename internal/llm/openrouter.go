package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// defaultOpenRouterBaseURL is the OpenAI-compatible endpoint root.
const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider is a minimal OpenRouter (OpenAI-compatible) chat
// completions provider used as the secondary inference backend.
type OpenRouterProvider struct {
	apiKey   string
	baseURL  string
	config   *Config
	appTitle string
	referer  string
	httpDo   *http.Client
}

// NewOpenRouterProvider creates the secondary provider.
func NewOpenRouterProvider(apiKey, baseURL string, config *Config) (*OpenRouterProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	if config == nil {
		config = DefaultOpenRouterConfig()
	}
	return &OpenRouterProvider{
		apiKey:   apiKey,
		baseURL:  baseURL,
		config:   config,
		appTitle: "candidate-screener",
		httpDo: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatCompletionsResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

// Name identifies the provider in logs and errors.
func (p *OpenRouterProvider) Name() string { return "openrouter" }

// Complete runs one non-streaming chat completion.
func (p *OpenRouterProvider) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	model := p.config.GetModel(opts.Tier)
	if model == "" {
		return "", &ProviderError{Provider: p.Name(), Message: fmt.Sprintf("no model configured for tier %s", opts.Tier)}
	}

	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	reqBody := chatCompletionsRequest{
		Model:       model,
		Temperature: temperature,
		MaxTokens:   opts.MaxTokens,
	}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Message: "failed to encode request", Cause: err}
	}

	endpoint := fmt.Sprintf("%s/chat/completions", p.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Message: "failed to build request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	if p.referer != "" {
		httpReq.Header.Set("HTTP-Referer", p.referer)
	}
	if p.appTitle != "" {
		httpReq.Header.Set("X-Title", p.appTitle)
	}

	resp, err := p.httpDo.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errMap map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errMap)
		return "", &ProviderError{Provider: p.Name(), Message: fmt.Sprintf("http %d: %v", resp.StatusCode, errMap)}
	}

	var out chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &ProviderError{Provider: p.Name(), Message: "failed to decode response", Cause: err}
	}
	if len(out.Choices) == 0 {
		return "", &ProviderError{Provider: p.Name(), Message: "no choices returned by model"}
	}
	return out.Choices[0].Message.Content, nil
}

// Stream has no native streaming support: the whole result is delivered
// as a single chunk. Callers must not assume uniform chunk cadence.
func (p *OpenRouterProvider) Stream(ctx context.Context, messages []Message, opts Options, onChunk StreamFunc) (string, error) {
	text, err := p.Complete(ctx, messages, opts)
	if err != nil {
		return "", err
	}
	if onChunk != nil {
		onChunk(text)
	}
	return text, nil
}

// Close is a no-op; the provider holds no pooled resources beyond the
// shared HTTP client.
func (p *OpenRouterProvider) Close() error { return nil }
