package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/config"
	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/docext"
	"github.com/jonathan/candidate-screener/internal/evaluation"
	"github.com/jonathan/candidate-screener/internal/extraction"
	"github.com/jonathan/candidate-screener/internal/fetch"
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/notify"
	"github.com/jonathan/candidate-screener/internal/observability"
	"github.com/jonathan/candidate-screener/internal/ocr"
	"github.com/jonathan/candidate-screener/internal/pipeline"
	"github.com/jonathan/candidate-screener/internal/scoring"
)

// loadConfig merges the config file, environment, and defaults.
func loadConfig(path string) (config.Config, error) {
	cfg := config.Config{}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newGateway builds the inference gateway from configured providers.
// Gemini is primary; OpenRouter is the fallback. At least one API key
// must be present.
func newGateway(ctx context.Context, cfg config.Config, logger *zap.Logger) (*llm.Gateway, error) {
	var primary, secondary llm.Provider

	if cfg.GeminiAPIKey != "" {
		p, err := llm.NewGeminiProvider(ctx, nil, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("configuring Gemini provider: %w", err)
		}
		primary = p
	}
	if cfg.OpenRouterAPIKey != "" {
		p, err := llm.NewOpenRouterProvider(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, nil)
		if err != nil {
			return nil, fmt.Errorf("configuring OpenRouter provider: %w", err)
		}
		secondary = p
	}
	if primary == nil && secondary == nil {
		return nil, fmt.Errorf("no inference provider configured: set GEMINI_API_KEY or OPENROUTER_API_KEY")
	}

	var opts []llm.GatewayOption
	if cfg.RequestsPerMinute > 0 {
		opts = append(opts, llm.WithRateLimit(float64(cfg.RequestsPerMinute)/60.0, burstFor(cfg.RequestsPerMinute)))
	}
	return llm.NewGateway(primary, secondary, logger, opts...)
}

func burstFor(perMinute int) int {
	burst := perMinute / 10
	if burst < 1 {
		burst = 1
	}
	return burst
}

// newPipeline assembles the full screening pipeline. The returned DB is
// nil when no database URL is configured. The cleanup function shuts down
// the OCR engine and the inference providers; callers must defer it.
func newPipeline(ctx context.Context, cfg config.Config, logger *zap.Logger, extra ...pipeline.Option) (*pipeline.Pipeline, *db.DB, func(), error) {
	gateway, err := newGateway(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	// Tesseract initialization is deferred until a scanned document
	// actually needs it.
	engine := ocr.NewLazy(func() (ocr.Engine, error) {
		return ocr.NewTesseractEngine(cfg.OCRLanguage)
	})
	cleanup := func() {
		if err := engine.Close(); err != nil {
			logger.Warn("closing OCR engine", zap.Error(err))
		}
		if err := gateway.Close(); err != nil {
			logger.Warn("closing inference providers", zap.Error(err))
		}
	}

	var database *db.DB
	opts := []pipeline.Option{
		pipeline.WithNotifier(notify.NewLogNotifier(logger)),
	}
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		opts = append(opts, pipeline.WithStore(database))
	}
	opts = append(opts, extra...)

	pipe := pipeline.New(
		docext.NewExtractor(engine, logger),
		extraction.NewExtractor(gateway, logger),
		evaluation.NewEvaluator(gateway, logger),
		scoring.NewScorer(gateway, logger),
		logger,
		opts...,
	)
	return pipe, database, cleanup, nil
}

func newLogger(cfg config.Config, jsonOutput bool) (*zap.Logger, error) {
	return observability.NewLogger(jsonOutput, cfg.Verbose)
}

func newDownloader(cfg config.Config, logger *zap.Logger) *fetch.Downloader {
	return fetch.NewDownloader(logger, fetch.WithMaxSize(cfg.MaxFetchSize))
}
