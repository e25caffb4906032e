//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// SeniorityLevel is a named experience band for a role.
type SeniorityLevel string

// Seniority bands with their year ranges. The bands serve both as a
// fallback when the model omits a seniority verdict and as a sanity check
// on the verdict it does return.
const (
	SeniorityEntry     SeniorityLevel = "entry"     // 0-2 years
	SeniorityMid       SeniorityLevel = "mid"       // 2-5 years
	SenioritySenior    SeniorityLevel = "senior"    // 5-8 years
	SeniorityLead      SeniorityLevel = "lead"      // 8-12 years
	SeniorityExecutive SeniorityLevel = "executive" // 12+ years
)

// SeniorityForYears returns the band a year count falls into.
func SeniorityForYears(years float64) SeniorityLevel {
	switch {
	case years < 2:
		return SeniorityEntry
	case years < 5:
		return SeniorityMid
	case years < 8:
		return SenioritySenior
	case years < 12:
		return SeniorityLead
	default:
		return SeniorityExecutive
	}
}

// JobRequirements describes what a role demands of a candidate.
type JobRequirements struct {
	JobID              string   `json:"job_id,omitempty"`
	Title              string   `json:"title" validate:"required,min=1"`
	Description        string   `json:"description,omitempty"`
	RequiredSkills     []string `json:"required_skills" validate:"required,min=1,dive,min=1"`
	PreferredSkills    []string `json:"preferred_skills,omitempty"`
	RequiredYears      float64  `json:"required_years" validate:"gte=0"`
	Seniority          string   `json:"seniority,omitempty"`
	IndustryPreference string   `json:"industry_preference,omitempty"`
	CultureValues      []string `json:"culture_values,omitempty"`
}

// Validate validates the JobRequirements using the validator.
func (r *JobRequirements) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

// WantsCulturalFit reports whether cultural-fit evaluation should run.
// It is optional and only runs when an industry preference or culture
// values are supplied.
func (r *JobRequirements) WantsCulturalFit() bool {
	return r.IndustryPreference != "" || len(r.CultureValues) > 0
}
