package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/candidate-screener/internal/types"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.CandidateProfile{
		Name:                 "Jane Doe",
		Email:                "jane@example.com",
		TotalExperienceYears: 7,
		Skills:               []string{"Go", "PostgreSQL", "Docker", "Kafka", "Redis", "Terraform"},
		Experience: []types.ExperienceEntry{
			{Title: "Engineer", Company: "Acme", Duration: "2017 - 2021"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "Candidate Profile")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "7.0")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Engineer at Acme")
	assert.Contains(t, output, "and 1 more", "skill list is capped at five entries")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(nil)
	assert.Empty(t, buf.String())
}

func TestPrintEvaluation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEvaluation(&types.DimensionEvaluation{
		Dimension:    types.DimensionSkills,
		OverallScore: 85,
		Matched:      []string{"Go"},
		Missing:      []string{"Kubernetes"},
		Synthetic:    true,
	})
	output := buf.String()

	assert.Contains(t, output, "85/100")
	assert.Contains(t, output, "synthetic")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Kubernetes")
}

func TestPrintDecision(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDecision(&types.FinalDecision{
		Decision:        types.DecisionShortlisted,
		FinalScore:      88,
		Confidence:      75,
		ComponentScores: map[string]int{"skills": 92},
		Strengths:       []string{"strong backend background"},
	})
	output := buf.String()

	assert.Contains(t, output, "shortlisted")
	assert.Contains(t, output, "88/100")
	assert.Contains(t, output, "skills: 92")
	assert.Contains(t, output, "strong backend background")
}

func TestPrintBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	run := &types.BatchRun{}
	run.Record(types.BatchItem{
		CandidateID: "c1",
		Decision:    &types.FinalDecision{Decision: types.DecisionShortlisted, FinalScore: 90},
	})
	run.Record(types.BatchItem{CandidateID: "c2", Error: "document unreadable"})

	p.PrintBatchSummary(run)
	output := buf.String()

	assert.Contains(t, output, "Total:      2")
	assert.Contains(t, output, "Successful: 1")
	assert.Contains(t, output, "Failed:     1")
	assert.Contains(t, output, "c1")
	assert.Contains(t, output, "document unreadable")
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "short", TruncateForLog("short", 10))
	long := strings.Repeat("a", 50)
	truncated := TruncateForLog(long, 10)
	assert.Equal(t, "aaaaaaaaaa...", truncated)
	assert.Equal(t, "", TruncateForLog(long, 0))
}
