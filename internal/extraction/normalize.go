package extraction

import (
	"math"
	"strings"

	"github.com/jonathan/candidate-screener/internal/types"
)

// profilePayload is the wire shape of the full-profile extraction
// response. Every field tolerates being absent; normalizeProfile fills
// the gaps deterministically.
type profilePayload struct {
	Name                 string              `json:"name"`
	Email                string              `json:"email"`
	Phone                string              `json:"phone"`
	Summary              string              `json:"summary"`
	Skills               []string            `json:"skills"`
	Experience           []experiencePayload `json:"experience"`
	Education            []educationPayload  `json:"education"`
	Certifications       []string            `json:"certifications"`
	Languages            []string            `json:"languages"`
	TotalExperienceYears float64             `json:"total_experience_years"`
}

type experiencePayload struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Duration     string   `json:"duration"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

type educationPayload struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Field       string `json:"field"`
}

// normalizeProfile converts a raw model payload into a CandidateProfile
// with initialized collections, trimmed strings, deduplicated skills,
// and entries that carry at least some identifying content.
func normalizeProfile(payload *profilePayload) *types.CandidateProfile {
	profile := types.NewCandidateProfile()
	profile.Name = strings.TrimSpace(payload.Name)
	profile.Email = strings.TrimSpace(payload.Email)
	profile.Phone = strings.TrimSpace(payload.Phone)
	profile.Summary = strings.TrimSpace(payload.Summary)
	profile.AddSkills(payload.Skills)

	for _, entry := range payload.Experience {
		title := strings.TrimSpace(entry.Title)
		company := strings.TrimSpace(entry.Company)
		if title == "" && company == "" {
			continue
		}
		profile.Experience = append(profile.Experience, types.ExperienceEntry{
			Title:        title,
			Company:      company,
			Duration:     strings.TrimSpace(entry.Duration),
			Description:  strings.TrimSpace(entry.Description),
			Technologies: cleanList(entry.Technologies),
		})
	}

	for _, entry := range payload.Education {
		degree := strings.TrimSpace(entry.Degree)
		institution := strings.TrimSpace(entry.Institution)
		if degree == "" && institution == "" {
			continue
		}
		profile.Education = append(profile.Education, types.EducationEntry{
			Degree:      degree,
			Institution: institution,
			Year:        strings.TrimSpace(entry.Year),
			Field:       strings.TrimSpace(entry.Field),
		})
	}

	profile.Certifications = append(profile.Certifications, cleanList(payload.Certifications)...)
	profile.Languages = append(profile.Languages, cleanList(payload.Languages)...)

	if payload.TotalExperienceYears > 0 {
		profile.TotalExperienceYears = math.Round(payload.TotalExperienceYears*10) / 10
	}

	return profile
}

func cleanList(items []string) []string {
	var cleaned []string
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[strings.ToLower(item)] {
			continue
		}
		seen[strings.ToLower(item)] = true
		cleaned = append(cleaned, item)
	}
	return cleaned
}
