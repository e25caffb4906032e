package extraction

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/jonathan/candidate-screener/internal/types"
)

// defaultDurationMonths is assumed when a duration string cannot be
// parsed at all. A deliberate better-than-nothing approximation.
const defaultDurationMonths = 12

var (
	yearRe       = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	presentRe    = regexp.MustCompile(`(?i)\b(present|current|now)\b`)
	yearsPhrase  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b`)
	monthsPhrase = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:months?|mos?)\b`)
)

// parseDurationMonths converts a free-form resume duration string
// ("Jan 2019 - Mar 2022", "2020 - present", "3 years") into months.
// It takes the span between the first and last 4-digit years, treating
// present/current/now as nowYear, then falls back to an explicit
// "N years" or "N months" phrase, and finally to defaultDurationMonths.
func parseDurationMonths(duration string, nowYear int) int {
	years := yearRe.FindAllString(duration, -1)
	if len(years) > 0 {
		first, _ := strconv.Atoi(years[0])
		last, _ := strconv.Atoi(years[len(years)-1])
		if presentRe.MatchString(duration) && nowYear > last {
			last = nowYear
		}
		if months := (last - first) * 12; months > 0 {
			return months
		}
		// Single year, or start and end in the same year: fall through to
		// the phrase forms, which may still carry a usable figure.
	}

	if m := yearsPhrase.FindStringSubmatch(duration); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil && n > 0 {
			return int(math.Round(n * 12))
		}
	}
	if m := monthsPhrase.FindStringSubmatch(duration); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil && n > 0 {
			return int(math.Round(n))
		}
	}

	return defaultDurationMonths
}

// totalYearsFromEntries sums per-entry durations, rounded to one decimal.
func totalYearsFromEntries(entries []types.ExperienceEntry, nowYear int) float64 {
	months := 0
	for _, entry := range entries {
		months += parseDurationMonths(entry.Duration, nowYear)
	}
	return math.Round(float64(months)/12.0*10) / 10
}

func currentYear() int {
	return time.Now().Year()
}
