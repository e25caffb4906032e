// Package main provides the entry point for the candidate screener CLI
// and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "AI candidate screening pipeline",
	Long:  "Screener evaluates candidate resumes against job requirements: document text extraction with OCR fallback, structured profile extraction, per-dimension evaluation, and a deterministic final score.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
