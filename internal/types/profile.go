//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// CandidateProfile is the structured view of a resume produced by the
// extraction stage. Skills preserve insertion order and are deduplicated
// case-insensitively; the slice is always initialized, never nil.
type CandidateProfile struct {
	Name                 string            `json:"name"`
	Email                string            `json:"email"`
	Phone                string            `json:"phone"`
	Summary              string            `json:"summary,omitempty"`
	Skills               []string          `json:"skills"`
	Experience           []ExperienceEntry `json:"experience"`
	Education            []EducationEntry  `json:"education"`
	Certifications       []string          `json:"certifications"`
	Languages            []string          `json:"languages"`
	TotalExperienceYears float64           `json:"total_experience_years"`
}

// ExperienceEntry is one position held by the candidate.
type ExperienceEntry struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Duration     string   `json:"duration"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// EducationEntry is one degree or program completed by the candidate.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
	Field       string `json:"field,omitempty"`
}

// KnownFields carries caller-supplied identity values that override
// anything the extraction model reports. Known ground truth outranks
// inference.
type KnownFields struct {
	Name  string
	Email string
	Phone string
}

// NewCandidateProfile returns a profile with all collections initialized.
func NewCandidateProfile() *CandidateProfile {
	return &CandidateProfile{
		Skills:         []string{},
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		Certifications: []string{},
		Languages:      []string{},
	}
}

// AddSkill appends a skill if it is non-empty and not already present
// under case-insensitive comparison. Insertion order is preserved.
func (p *CandidateProfile) AddSkill(skill string) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return
	}
	lower := strings.ToLower(skill)
	for _, existing := range p.Skills {
		if strings.ToLower(existing) == lower {
			return
		}
	}
	p.Skills = append(p.Skills, skill)
}

// AddSkills appends each skill via AddSkill.
func (p *CandidateProfile) AddSkills(skills []string) {
	for _, s := range skills {
		p.AddSkill(s)
	}
}

// ApplyKnownFields overrides extracted identity values with caller-supplied
// ground truth.
func (p *CandidateProfile) ApplyKnownFields(known KnownFields) {
	if known.Name != "" {
		p.Name = known.Name
	}
	if known.Email != "" {
		p.Email = known.Email
	}
	if known.Phone != "" {
		p.Phone = known.Phone
	}
}
