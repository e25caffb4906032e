package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider for Google Gemini.
type GeminiProvider struct {
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, config *Config, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultGeminiConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, config: config}, nil
}

// Name identifies the provider in logs and errors.
func (p *GeminiProvider) Name() string { return "gemini" }

// Complete runs one non-streaming chat completion.
func (p *GeminiProvider) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	model, err := p.model(opts)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(flattenMessages(messages)))
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Message: "failed to generate content", Cause: err}
	}
	return extractTextFromResponse(p.Name(), resp)
}

// Stream runs a streaming completion, invoking onChunk as parts arrive.
func (p *GeminiProvider) Stream(ctx context.Context, messages []Message, opts Options, onChunk StreamFunc) (string, error) {
	model, err := p.model(opts)
	if err != nil {
		return "", err
	}

	iter := model.GenerateContentStream(ctx, genai.Text(flattenMessages(messages)))
	var sb strings.Builder
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", &ProviderError{Provider: p.Name(), Message: "streaming failed", Cause: err}
		}
		chunk, err := extractTextFromResponse(p.Name(), resp)
		if err != nil {
			continue
		}
		sb.WriteString(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	}

	if sb.Len() == 0 {
		return "", &ProviderError{Provider: p.Name(), Message: "empty streamed response"}
	}
	return sb.String(), nil
}

// Close releases resources held by the provider.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// model resolves and configures the generative model for a call.
func (p *GeminiProvider) model(opts Options) (*genai.GenerativeModel, error) {
	modelName := p.config.GetModel(opts.Tier)
	if modelName == "" {
		return nil, &ProviderError{Provider: p.Name(), Message: fmt.Sprintf("no model configured for tier %s", opts.Tier)}
	}

	model := p.client.GenerativeModel(modelName)
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.1 // Low temperature for consistent output
	}
	model.SetTemperature(temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	if opts.jsonResponse {
		model.ResponseMIMEType = "application/json"
	}
	return model, nil
}

// flattenMessages joins chat messages into a single prompt, system turns
// first.
func flattenMessages(messages []Message) string {
	var system, user []string
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
		} else {
			user = append(user, m.Content)
		}
	}
	parts := append(system, user...)
	return strings.Join(parts, "\n\n")
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(provider string, resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &ProviderError{Provider: provider, Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &ProviderError{Provider: provider, Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &ProviderError{Provider: provider, Message: "no text parts in response"}
	}
	return strings.Join(parts, ""), nil
}
