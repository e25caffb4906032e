package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/config"
)

func TestLoadRequirements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"job_id": "job-1",
		"title": "Backend Engineer",
		"required_skills": ["Go", "PostgreSQL"],
		"required_years": 5,
		"seniority": "senior"
	}`), 0o644))

	requirements, err := loadRequirements(path)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", requirements.Title)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, requirements.RequiredSkills)
	assert.NoError(t, requirements.Validate())
}

func TestLoadRequirementsErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := loadRequirements(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "job.json")
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))
		_, err := loadRequirements(path)
		assert.Error(t, err)
	})
}

func TestResolveCandidates(t *testing.T) {
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("resume body"), 0o644))

	var batch batchFile
	require.NoError(t, json.Unmarshal([]byte(`{
		"requirements": {"title": "Backend Engineer", "required_skills": ["Go"]},
		"candidates": [
			{"candidate_id": "c1", "resume_text": "inline resume text"},
			{"candidate_id": "c2", "name": "Jane Doe", "resume_path": "`+resumePath+`"}
		]
	}`), &batch))

	candidates, err := resolveCandidates(context.Background(), config.Defaults(), zap.NewNop(), &batch)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "inline resume text", candidates[0].ResumeText)
	assert.Nil(t, candidates[0].Document)
	assert.Equal(t, "Backend Engineer", candidates[0].Requirements.Title)

	require.NotNil(t, candidates[1].Document)
	assert.Equal(t, []byte("resume body"), candidates[1].Document.Data)
	assert.Equal(t, "resume.txt", candidates[1].Document.Filename)
	assert.Equal(t, "Jane Doe", candidates[1].Name)
}

func TestResolveCandidatesMissingResume(t *testing.T) {
	batch := batchFile{Candidates: []batchCandidate{{CandidateID: "c1"}}}
	_, err := resolveCandidates(context.Background(), config.Defaults(), zap.NewNop(), &batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c1")
}
