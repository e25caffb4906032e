// Package llm provides the inference gateway: a uniform chat/JSON
// completion capability backed by a primary provider with automatic
// fallback to a secondary provider.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction, basic summarization
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: parsing, structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: evaluation, narrative generation
	TierAdvanced ModelTier = "advanced"
)

// Config holds the model configuration for a provider.
type Config struct {
	Models map[ModelTier]string
}

// DefaultGeminiConfig returns the default Gemini model mapping.
func DefaultGeminiConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// DefaultOpenRouterConfig returns the default OpenRouter model mapping.
func DefaultOpenRouterConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "qwen/qwen2.5-32b-instruct",
			TierStandard: "qwen/qwen2.5-72b-instruct",
			TierAdvanced: "deepseek/deepseek-chat",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Models: make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
