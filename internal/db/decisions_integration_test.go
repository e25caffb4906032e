package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-screener/internal/types"
)

// requireTestDB connects to the database named by TEST_DATABASE_URL,
// skipping the test when none is configured.
func requireTestDB(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}
	database, err := Connect(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(database.Close)
	return database
}

func TestSaveAndGetDecision(t *testing.T) {
	database := requireTestDB(t)
	ctx := context.Background()

	decision := &types.FinalDecision{
		FinalScore:      82,
		Decision:        types.DecisionShortlisted,
		Confidence:      75,
		ComponentScores: map[string]int{"skills": 85, "experience": 78},
		Strengths:       []string{"solid Go background"},
		Rationale:       "well matched",
	}

	err := database.SaveDecision(ctx, "cand-integration-1", "job-9", decision)
	require.NoError(t, err)

	records, err := database.ListDecisions(ctx, DecisionFilters{CandidateID: "cand-integration-1", Limit: 1})
	require.NoError(t, err)
	require.NotEmpty(t, records)

	record, err := database.GetDecision(ctx, records[0].ID)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 82, record.FinalScore)
	assert.Equal(t, types.DecisionShortlisted, record.Decision)
	require.NotNil(t, record.Payload)
	assert.Equal(t, decision.ComponentScores, record.Payload.ComponentScores)
}

func TestSaveAndGetBatchRun(t *testing.T) {
	database := requireTestDB(t)
	ctx := context.Background()

	run := &types.BatchRun{Total: 3, Successful: 2, Failed: 1}
	run.Items = []types.BatchItem{
		{CandidateID: "a", Decision: &types.FinalDecision{FinalScore: 80, Decision: types.DecisionShortlisted}},
		{CandidateID: "b", Decision: &types.FinalDecision{FinalScore: 65, Decision: types.DecisionReview}},
		{CandidateID: "c", Error: "candidate c: extraction failed"},
	}

	id, err := database.SaveBatchRun(ctx, run)
	require.NoError(t, err)

	record, err := database.GetBatchRun(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 3, record.Total)
	assert.Equal(t, 1, record.Failed)
	require.NotNil(t, record.Payload)
	assert.Len(t, record.Payload.Items, 3)
}
