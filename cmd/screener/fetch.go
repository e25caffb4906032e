package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a resume from a cloud share link",
	Long:  "Download a resume from a Google Drive, Dropbox, OneDrive, GitHub, or direct URL and save it locally.",
	RunE:  runFetch,
}

var (
	fetchConfigPath string
	fetchURL        string
	fetchOutPath    string
)

func init() {
	fetchCmd.Flags().StringVar(&fetchConfigPath, "config", "", "Path to config.json file")
	fetchCmd.Flags().StringVarP(&fetchURL, "url", "u", "", "Share link to download (required)")
	fetchCmd.Flags().StringVarP(&fetchOutPath, "out", "o", "", "Output path (defaults to the detected filename)")

	fetchCmd.MarkFlagRequired("url") //nolint:errcheck

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(fetchConfigPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	result, err := newDownloader(cfg, logger).Download(context.Background(), fetchURL)
	if err != nil {
		return err
	}

	outPath := fetchOutPath
	if outPath == "" {
		outPath = result.Filename
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, result.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Downloaded %d bytes from %s to %s\n", len(result.Content), providerLabel(result.Provider), outPath)
	return nil
}

func providerLabel(p fetch.Provider) string {
	if p == fetch.ProviderDirect {
		return "direct URL"
	}
	return string(p)
}
