package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/types"
)

// fakeClient scripts gateway responses: CompleteText serves the
// full-profile tier, CompleteJSON the skills-only tier.
type fakeClient struct {
	textResponse string
	textErr      error
	jsonResponse string
	jsonErr      error
	textCalls    int
	jsonCalls    int
}

func (f *fakeClient) CompleteText(_ context.Context, _ []llm.Message, _ llm.Options) (string, error) {
	f.textCalls++
	return f.textResponse, f.textErr
}

func (f *fakeClient) CompleteJSON(_ context.Context, _ []llm.Message, _ llm.Options, out any) error {
	f.jsonCalls++
	if f.jsonErr != nil {
		return f.jsonErr
	}
	return json.Unmarshal([]byte(f.jsonResponse), out)
}

func (f *fakeClient) CompleteStream(_ context.Context, _ []llm.Message, _ llm.Options, onChunk llm.StreamFunc) (string, error) {
	if f.textErr != nil {
		return "", f.textErr
	}
	onChunk(f.textResponse)
	return f.textResponse, f.textErr
}

func (f *fakeClient) Close() error { return nil }

const fullProfileJSON = `{
	"name": "Jane Doe",
	"email": "jane@example.com",
	"phone": "+1 555 0100",
	"summary": "Backend engineer.",
	"skills": ["Go", "PostgreSQL", "go"],
	"experience": [
		{"title": "Engineer", "company": "Acme", "duration": "2018 - 2021"},
		{"title": "Senior Engineer", "company": "Globex", "duration": "3 years"}
	],
	"education": [{"degree": "BSc", "institution": "State University"}],
	"certifications": [],
	"languages": ["English"]
}`

func TestParse_FullProfile(t *testing.T) {
	client := &fakeClient{textResponse: fullProfileJSON}
	extractor := NewExtractor(client, nil)

	profile := extractor.Parse(context.Background(), "resume text", types.KnownFields{})

	require.NotNil(t, profile)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, "jane@example.com", profile.Email)
	// Case-insensitive dedupe keeps the first spelling.
	assert.Equal(t, []string{"Go", "PostgreSQL"}, profile.Skills)
	assert.Len(t, profile.Experience, 2)
	assert.Equal(t, 1, client.textCalls)
	assert.Equal(t, 0, client.jsonCalls, "repair tier should not run when skills are present")
}

func TestParse_DerivesTotalYearsFromDurations(t *testing.T) {
	client := &fakeClient{textResponse: fullProfileJSON}
	extractor := NewExtractor(client, nil)
	extractor.nowYear = 2024

	profile := extractor.Parse(context.Background(), "resume text", types.KnownFields{})

	// 36 months (2018-2021) + 36 months ("3 years") = 6.0 years.
	assert.InDelta(t, 6.0, profile.TotalExperienceYears, 0.001)
}

func TestParse_ModelSuppliedYearsWin(t *testing.T) {
	response := `{"skills": ["Go"], "experience": [{"title": "Engineer", "company": "Acme", "duration": "2018 - 2021"}], "total_experience_years": 9.5}`
	client := &fakeClient{textResponse: response}
	extractor := NewExtractor(client, nil)

	profile := extractor.Parse(context.Background(), "resume text", types.KnownFields{})

	assert.InDelta(t, 9.5, profile.TotalExperienceYears, 0.001)
}

func TestParse_KnownFieldsOverrideExtraction(t *testing.T) {
	client := &fakeClient{textResponse: fullProfileJSON}
	extractor := NewExtractor(client, nil)

	profile := extractor.Parse(context.Background(), "resume text", types.KnownFields{
		Name:  "Jane A. Doe",
		Email: "jane.doe@corp.example.com",
	})

	assert.Equal(t, "Jane A. Doe", profile.Name)
	assert.Equal(t, "jane.doe@corp.example.com", profile.Email)
	assert.Equal(t, "+1 555 0100", profile.Phone, "fields without known values keep extracted values")
}

func TestParse_SkillRepairTier(t *testing.T) {
	client := &fakeClient{
		textResponse: `{"name": "Jane Doe", "skills": []}`,
		jsonResponse: `{"skills": ["Go", "Docker"]}`,
	}
	extractor := NewExtractor(client, nil)

	profile := extractor.Parse(context.Background(), "resume text", types.KnownFields{})

	assert.Equal(t, []string{"Go", "Docker"}, profile.Skills)
	assert.Equal(t, 1, client.jsonCalls)
}

// A model that always returns empty skills must not produce an empty
// skill list when the source text contains recognizable skills.
func TestParse_DeterministicFallbackGuaranteesSkills(t *testing.T) {
	client := &fakeClient{
		textResponse: `{"skills": []}`,
		jsonResponse: `{"skills": []}`,
	}
	extractor := NewExtractor(client, nil)

	text := "Seasoned developer.\nSkills: Python, Kubernetes\nShipped many systems."
	profile := extractor.Parse(context.Background(), text, types.KnownFields{})

	assert.Contains(t, profile.Skills, "Python")
	assert.Contains(t, profile.Skills, "Kubernetes")
	assert.Equal(t, 1, client.textCalls)
	assert.Equal(t, 1, client.jsonCalls)
}

func TestParse_AllInferenceFails(t *testing.T) {
	client := &fakeClient{
		textErr: errors.New("provider down"),
		jsonErr: errors.New("provider down"),
	}
	extractor := NewExtractor(client, nil)

	profile := extractor.Parse(context.Background(), "Expert in Go and Terraform.", types.KnownFields{
		Name: "Jane Doe",
	})

	require.NotNil(t, profile)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Contains(t, profile.Skills, "Go")
	assert.Contains(t, profile.Skills, "Terraform")
	assert.NotNil(t, profile.Experience)
	assert.NotNil(t, profile.Education)
}

func TestParse_MalformedProfileResponseFallsThrough(t *testing.T) {
	client := &fakeClient{
		textResponse: "I could not parse the resume, sorry!",
		jsonResponse: `{"skills": ["Go"]}`,
	}
	extractor := NewExtractor(client, nil)

	profile := extractor.Parse(context.Background(), "resume text", types.KnownFields{})

	assert.Equal(t, []string{"Go"}, profile.Skills)
}

func TestParse_FencedProfileResponse(t *testing.T) {
	client := &fakeClient{textResponse: "```json\n" + fullProfileJSON + "\n```"}
	extractor := NewExtractor(client, nil)

	profile := extractor.Parse(context.Background(), "resume text", types.KnownFields{})

	assert.Equal(t, "Jane Doe", profile.Name)
}

func TestParse_SchemaViolationTriggersRepair(t *testing.T) {
	client := &fakeClient{
		textResponse: `{"skills": "Go, Docker"}`,
		jsonResponse: `{"skills": ["Go", "Docker"]}`,
	}
	extractor := NewExtractor(client, nil)

	profile := extractor.Parse(context.Background(), "resume text", types.KnownFields{})

	assert.Equal(t, []string{"Go", "Docker"}, profile.Skills)
	assert.Equal(t, 1, client.jsonCalls)
}
