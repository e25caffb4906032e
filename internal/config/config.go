// Package config provides configuration loading and validation for the
// screener CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the settings shared by the CLI commands and the HTTP
// server. All fields are optional; missing values use defaults or are
// supplied by CLI flags and environment variables.
type Config struct {
	// Inference
	GeminiAPIKey      string `json:"gemini_api_key,omitempty"`      // Primary provider key
	OpenRouterAPIKey  string `json:"openrouter_api_key,omitempty"`  // Secondary provider key
	OpenRouterBaseURL string `json:"openrouter_base_url,omitempty"` // Override for testing
	RequestsPerMinute int    `json:"requests_per_minute,omitempty"` // Inference rate limit

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	ListenAddr string `json:"listen_addr,omitempty"` // HTTP listen address

	// Documents
	OCRLanguage  string `json:"ocr_language,omitempty"`   // Tesseract language code
	MaxFetchSize int64  `json:"max_fetch_size,omitempty"` // Resume download cap in bytes

	// Batch
	BatchDelayMs int `json:"batch_delay_ms,omitempty"` // Pause between batch items

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		RequestsPerMinute: 60,
		ListenAddr:        ":8080",
		OCRLanguage:       "eng",
		MaxFetchSize:      50 * 1024 * 1024,
		BatchDelayMs:      500,
	}
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables. Environment
// takes precedence over the config file so secrets can stay out of it.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		c.OpenRouterAPIKey = v
	}
	if v := os.Getenv("OPENROUTER_BASE_URL"); v != "" {
		c.OpenRouterBaseURL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("SCREENER_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("SCREENER_OCR_LANGUAGE"); v != "" {
		c.OCRLanguage = v
	}
	if v := os.Getenv("SCREENER_REQUESTS_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RequestsPerMinute = n
		}
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("config error: 'requests_per_minute' must be non-negative")
	}
	if c.MaxFetchSize < 0 {
		return fmt.Errorf("config error: 'max_fetch_size' must be non-negative")
	}
	if c.BatchDelayMs < 0 {
		return fmt.Errorf("config error: 'batch_delay_ms' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-value fields filled
// from defaults. CLI flags and env values always win over the file.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.OpenRouterAPIKey == "" {
		result.OpenRouterAPIKey = defaults.OpenRouterAPIKey
	}
	if result.OpenRouterBaseURL == "" {
		result.OpenRouterBaseURL = defaults.OpenRouterBaseURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if result.OCRLanguage == "" {
		result.OCRLanguage = defaults.OCRLanguage
	}
	if result.RequestsPerMinute == 0 {
		result.RequestsPerMinute = defaults.RequestsPerMinute
	}
	if result.MaxFetchSize == 0 {
		result.MaxFetchSize = defaults.MaxFetchSize
	}
	if result.BatchDelayMs == 0 {
		result.BatchDelayMs = defaults.BatchDelayMs
	}

	return result
}
