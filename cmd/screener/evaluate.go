package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/config"
	"github.com/jonathan/candidate-screener/internal/observability"
	"github.com/jonathan/candidate-screener/internal/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Screen a single candidate against a job",
	Long:  "Evaluate one candidate resume against a job requirements file and print the screening decision.",
	RunE:  runEvaluate,
}

var (
	evalConfigPath  string
	evalJobPath     string
	evalResumePath  string
	evalResumeURL   string
	evalCandidateID string
	evalName        string
	evalEmail       string
	evalPhone       string
	evalJSON        bool
)

func init() {
	evaluateCmd.Flags().StringVar(&evalConfigPath, "config", "", "Path to config.json file")
	evaluateCmd.Flags().StringVarP(&evalJobPath, "job", "j", "", "Path to job requirements JSON file (required)")
	evaluateCmd.Flags().StringVarP(&evalResumePath, "resume", "r", "", "Path to resume document (PDF, image, or text)")
	evaluateCmd.Flags().StringVar(&evalResumeURL, "resume-url", "", "Cloud share link to download the resume from (mutually exclusive with --resume)")
	evaluateCmd.Flags().StringVar(&evalCandidateID, "candidate-id", "", "Candidate identifier")
	evaluateCmd.Flags().StringVarP(&evalName, "name", "n", "", "Candidate name")
	evaluateCmd.Flags().StringVar(&evalEmail, "email", "", "Candidate email")
	evaluateCmd.Flags().StringVar(&evalPhone, "phone", "", "Candidate phone")
	evaluateCmd.Flags().BoolVar(&evalJSON, "json", false, "Print the decision as JSON")

	evaluateCmd.MarkFlagRequired("job") //nolint:errcheck

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(_ *cobra.Command, _ []string) error {
	if evalResumePath == "" && evalResumeURL == "" {
		return fmt.Errorf("either --resume or --resume-url must be provided")
	}
	if evalResumePath != "" && evalResumeURL != "" {
		return fmt.Errorf("--resume and --resume-url are mutually exclusive; provide only one")
	}

	cfg, err := loadConfig(evalConfigPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	requirements, err := loadRequirements(evalJobPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	document, err := resolveDocument(ctx, cfg, logger, evalResumePath, evalResumeURL)
	if err != nil {
		return err
	}

	pipe, database, cleanup, err := newPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()
	if database != nil {
		defer database.Close()
	}

	decision, err := pipe.Evaluate(ctx, &types.CandidateInput{
		CandidateID:  evalCandidateID,
		Name:         evalName,
		Email:        evalEmail,
		Phone:        evalPhone,
		Document:     document,
		Requirements: *requirements,
	})
	if err != nil {
		return err
	}

	if evalJSON {
		return json.NewEncoder(os.Stdout).Encode(decision)
	}
	observability.NewPrinter(os.Stdout).PrintDecision(decision)
	return nil
}

// loadRequirements reads a job requirements JSON file.
func loadRequirements(path string) (*types.JobRequirements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job requirements: %w", err)
	}
	var requirements types.JobRequirements
	if err := json.Unmarshal(data, &requirements); err != nil {
		return nil, fmt.Errorf("failed to parse job requirements JSON: %w", err)
	}
	return &requirements, nil
}

// resolveDocument loads resume bytes from a local path or a cloud link.
func resolveDocument(ctx context.Context, cfg config.Config, logger *zap.Logger, path, url string) (*types.RawDocument, error) {
	if path == "" && url == "" {
		return nil, fmt.Errorf("no resume provided")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read resume: %w", err)
		}
		return &types.RawDocument{Data: data, Filename: filepath.Base(path)}, nil
	}

	result, err := newDownloader(cfg, logger).Download(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to download resume: %w", err)
	}
	return &types.RawDocument{Data: result.Content, Filename: result.Filename}, nil
}
