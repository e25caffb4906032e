package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/config"
	"github.com/jonathan/candidate-screener/internal/observability"
	"github.com/jonathan/candidate-screener/internal/pipeline"
	"github.com/jonathan/candidate-screener/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Screen a batch of candidates against one job",
	Long: `Evaluate a list of candidates from a batch file and print per-candidate outcomes.

The batch file is JSON:

  {
    "requirements": { ... job requirements ... },
    "candidates": [
      {"candidate_id": "c1", "name": "Jane Doe", "resume_path": "resumes/jane.pdf"},
      {"candidate_id": "c2", "resume_url": "https://drive.google.com/file/d/.../view"},
      {"candidate_id": "c3", "resume_text": "..."}
    ]
  }`,
	RunE: runBatch,
}

var (
	batchConfigPath string
	batchFilePath   string
	batchOutPath    string
)

func init() {
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to config.json file")
	batchCmd.Flags().StringVarP(&batchFilePath, "file", "f", "", "Path to batch JSON file (required)")
	batchCmd.Flags().StringVarP(&batchOutPath, "out", "o", "", "Write full results JSON to this path")

	batchCmd.MarkFlagRequired("file") //nolint:errcheck

	rootCmd.AddCommand(batchCmd)
}

// batchFile is the on-disk batch format.
type batchFile struct {
	Requirements types.JobRequirements `json:"requirements"`
	Candidates   []batchCandidate      `json:"candidates"`
}

type batchCandidate struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ResumePath  string `json:"resume_path,omitempty"`
	ResumeURL   string `json:"resume_url,omitempty"`
	ResumeText  string `json:"resume_text,omitempty"`
}

func runBatch(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(batchConfigPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	data, err := os.ReadFile(batchFilePath)
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}
	var batch batchFile
	if err := json.Unmarshal(data, &batch); err != nil {
		return fmt.Errorf("failed to parse batch JSON: %w", err)
	}
	if len(batch.Candidates) == 0 {
		return fmt.Errorf("batch file contains no candidates")
	}

	ctx := context.Background()
	candidates, err := resolveCandidates(ctx, cfg, logger, &batch)
	if err != nil {
		return err
	}

	pipe, database, cleanup, err := newPipeline(ctx, cfg, logger,
		pipeline.WithInterItemDelay(time.Duration(cfg.BatchDelayMs)*time.Millisecond))
	if err != nil {
		return err
	}
	defer cleanup()
	if database != nil {
		defer database.Close()
	}

	run := pipe.RunBatch(ctx, candidates)

	if database != nil {
		if id, err := database.SaveBatchRun(ctx, run); err == nil {
			fmt.Fprintf(os.Stdout, "Batch run saved: %s\n", id)
		} else {
			logger.Warn("saving batch run", zap.Error(err))
		}
	}

	observability.NewPrinter(os.Stdout).PrintBatchSummary(run)

	if batchOutPath != "" {
		out, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		if err := os.WriteFile(batchOutPath, out, 0o644); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Results written to %s\n", batchOutPath)
	}
	return nil
}

// resolveCandidates turns batch entries into pipeline inputs, reading
// local files and downloading cloud links up front so a bad reference
// fails before any inference runs.
func resolveCandidates(ctx context.Context, cfg config.Config, logger *zap.Logger, batch *batchFile) ([]types.CandidateInput, error) {
	candidates := make([]types.CandidateInput, 0, len(batch.Candidates))
	for i, c := range batch.Candidates {
		input := types.CandidateInput{
			CandidateID:  c.CandidateID,
			Name:         c.Name,
			Email:        c.Email,
			Phone:        c.Phone,
			ResumeText:   c.ResumeText,
			Requirements: batch.Requirements,
		}
		if c.ResumeText == "" {
			document, err := resolveDocument(ctx, cfg, logger, c.ResumePath, c.ResumeURL)
			if err != nil {
				return nil, fmt.Errorf("candidate %d (%s): %w", i, c.CandidateID, err)
			}
			input.Document = document
		}
		candidates = append(candidates, input)
	}
	return candidates, nil
}
