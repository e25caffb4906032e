package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownTemplates(t *testing.T) {
	tests := []struct {
		file string
		key  string
	}{
		{"extraction.json", "extract-profile"},
		{"extraction.json", "extract-skills"},
		{"evaluation.json", "evaluate-skills"},
		{"evaluation.json", "evaluate-experience"},
		{"evaluation.json", "evaluate-culture"},
		{"scoring.json", "final-narrative"},
	}

	for _, tt := range tests {
		t.Run(tt.file+"/"+tt.key, func(t *testing.T) {
			template, err := Get(tt.file, tt.key)
			require.NoError(t, err)
			assert.NotEmpty(t, template)
		})
	}
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("extraction.json", "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	template := "Resume text:\n{{.ResumeText}}\nJob title: {{.JobTitle}}"
	result := Format(template, map[string]string{
		"ResumeText": "10 years of Go",
		"JobTitle":   "Backend Engineer",
	})
	assert.Equal(t, "Resume text:\n10 years of Go\nJob title: Backend Engineer", result)
}

func TestFormat_UnknownPlaceholderSurvives(t *testing.T) {
	template := "Hello {{.Name}}"
	assert.Equal(t, template, Format(template, map[string]string{}))
}

func TestProfilePromptDemandsVerbatimDurations(t *testing.T) {
	template := MustGet("extraction.json", "extract-profile")
	assert.Contains(t, template, "duration")
	assert.Contains(t, template, "verbatim")
	assert.Contains(t, template, "{{.ResumeText}}")
}
