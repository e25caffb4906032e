package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-screener/internal/types"
)

func TestMatchSkills(t *testing.T) {
	tests := []struct {
		name        string
		candidate   []string
		required    []string
		wantMatched []string
		wantMissing []string
	}{
		{
			name:        "exact and case-insensitive",
			candidate:   []string{"go", "PostgreSQL"},
			required:    []string{"Go", "postgresql", "Kubernetes"},
			wantMatched: []string{"Go", "postgresql"},
			wantMissing: []string{"Kubernetes"},
		},
		{
			name:        "token match inside compound entry",
			candidate:   []string{"Node.js and Express"},
			required:    []string{"Node.js", "Express"},
			wantMatched: []string{"Node.js", "Express"},
			wantMissing: nil,
		},
		{
			name:        "no substring false positives",
			candidate:   []string{"Django"},
			required:    []string{"Go"},
			wantMatched: nil,
			wantMissing: []string{"Go"},
		},
		{
			name:        "empty candidate list",
			candidate:   nil,
			required:    []string{"Go"},
			wantMatched: nil,
			wantMissing: []string{"Go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, missing := matchSkills(tt.candidate, tt.required)
			assert.Equal(t, tt.wantMatched, matched)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}

func TestEvaluateSkills_ModelPath(t *testing.T) {
	client := &fakeClient{complete: respondWith(
		`{"overall_score": 85, "matched": ["Go", "PostgreSQL"], "missing": [], "additional": ["Docker"], "rationale": "covers the stack"}`)}
	evaluator := NewEvaluator(client, nil)

	ev, err := evaluator.EvaluateSkills(context.Background(), testProfile(), testRequirements())

	require.NoError(t, err)
	assert.Equal(t, 85, ev.OverallScore)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, ev.Matched)
	assert.Equal(t, []string{"Docker"}, ev.Additional)
	assert.False(t, ev.Synthetic)
}

func TestEvaluateSkills_BackfillsListsFromExactMatch(t *testing.T) {
	client := &fakeClient{complete: respondWith(`{"overall_score": 60, "rationale": "partial"}`)}
	evaluator := NewEvaluator(client, nil)

	req := testRequirements()
	req.RequiredSkills = []string{"Go", "Kafka"}

	ev, err := evaluator.EvaluateSkills(context.Background(), testProfile(), req)

	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, ev.Matched)
	assert.Equal(t, []string{"Kafka"}, ev.Missing)
}

func TestEvaluateSkills_DeterministicFallback(t *testing.T) {
	client := &fakeClient{complete: func(string) (string, error) {
		return "", errors.New("all providers down")
	}}
	evaluator := NewEvaluator(client, nil)

	req := testRequirements()
	req.RequiredSkills = []string{"Go", "PostgreSQL", "Kafka", "Terraform"}

	ev, err := evaluator.EvaluateSkills(context.Background(), testProfile(), req)

	require.NoError(t, err)
	assert.True(t, ev.Synthetic)
	assert.Equal(t, 50, ev.OverallScore, "2 of 4 required skills present")
	assert.Equal(t, []string{"Go", "PostgreSQL"}, ev.Matched)
	assert.Equal(t, []string{"Kafka", "Terraform"}, ev.Missing)
	assert.Contains(t, ev.Additional, "Docker")
}

func TestEvaluateSkills_MalformedResponseFallsBack(t *testing.T) {
	client := &fakeClient{complete: respondWith(`{"overall_score": "very high"}`)}
	evaluator := NewEvaluator(client, nil)

	ev, err := evaluator.EvaluateSkills(context.Background(), testProfile(), testRequirements())

	require.NoError(t, err)
	assert.True(t, ev.Synthetic)
	assert.Equal(t, 100, ev.OverallScore, "both required skills matched exactly")
}

func TestEvaluateSkills_CancelledContextSurfaces(t *testing.T) {
	client := &fakeClient{complete: func(string) (string, error) {
		return "", context.Canceled
	}}
	evaluator := NewEvaluator(client, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := evaluator.EvaluateSkills(ctx, testProfile(), testRequirements())
	assert.Error(t, err)
}

func TestTruncateChars(t *testing.T) {
	assert.Equal(t, "abc", truncateChars("abc", 5))
	assert.Equal(t, "ab", truncateChars("abcdef", 2))
	assert.Equal(t, "héll", truncateChars("héllo", 4))
}

func TestDeterministicSkills_NoRequirements(t *testing.T) {
	profile := types.NewCandidateProfile()
	ev := deterministicSkills(profile, &types.JobRequirements{Title: "Any"}, nil, nil)
	assert.Equal(t, 0, ev.OverallScore)
	assert.NotNil(t, ev.Matched)
	assert.NotNil(t, ev.Missing)
}
