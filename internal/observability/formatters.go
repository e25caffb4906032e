// Package observability provides structured logging and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/candidate-screener/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func appendList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintProfile outputs a human-readable summary of the extracted candidate profile.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:   %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Email:  %s\n", profile.Email))
	sb.WriteString(fmt.Sprintf("Years:  %.1f\n", profile.TotalExperienceYears))
	sb.WriteString("\n")
	appendList(&sb, "Skills", profile.Skills)
	if len(profile.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(profile.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			entry := profile.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s at %s (%s)\n", entry.Title, entry.Company, entry.Duration))
		}
	}

	p.printBox("Candidate Profile", sb.String())
}

// PrintEvaluation outputs a summary of one dimension evaluation.
func (p *Printer) PrintEvaluation(eval *types.DimensionEvaluation) {
	if eval == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d/100\n", eval.OverallScore))
	if eval.Synthetic {
		sb.WriteString("Mode:  synthetic (formula-based)\n")
	}
	sb.WriteString("\n")
	appendList(&sb, "Matched", eval.Matched)
	appendList(&sb, "Missing", eval.Missing)
	appendList(&sb, "Strengths", eval.Strengths)
	appendList(&sb, "Weaknesses", eval.Weaknesses)

	p.printBox(fmt.Sprintf("Evaluation: %s", eval.Dimension), sb.String())
}

// PrintDecision outputs the final hiring decision.
func (p *Printer) PrintDecision(decision *types.FinalDecision) {
	if decision == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Decision:   %s\n", decision.Decision))
	sb.WriteString(fmt.Sprintf("Score:      %d/100\n", decision.FinalScore))
	sb.WriteString(fmt.Sprintf("Confidence: %d/100\n", decision.Confidence))
	for dim, score := range decision.ComponentScores {
		sb.WriteString(fmt.Sprintf("  %s: %d\n", dim, score))
	}
	sb.WriteString("\n")
	appendList(&sb, "Strengths", decision.Strengths)
	appendList(&sb, "Recommendations", decision.Recommendations)

	p.printBox("Final Decision", sb.String())
}

// PrintBatchSummary outputs aggregate counts for a finished batch run.
func (p *Printer) PrintBatchSummary(run *types.BatchRun) {
	if run == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total:      %d\n", run.Total))
	sb.WriteString(fmt.Sprintf("Successful: %d\n", run.Successful))
	sb.WriteString(fmt.Sprintf("Failed:     %d\n", run.Failed))
	if run.Cancelled {
		sb.WriteString("Cancelled before all candidates were scheduled\n")
	}
	for _, item := range run.Items {
		if item.Failed() {
			sb.WriteString(fmt.Sprintf("  ✗ %s: %s\n", item.CandidateID, item.Error))
		} else {
			sb.WriteString(fmt.Sprintf("  ✓ %s: %s (%d)\n", item.CandidateID, item.Decision.Decision, item.Decision.FinalScore))
		}
	}

	p.printBox("Batch Summary", sb.String())
}
