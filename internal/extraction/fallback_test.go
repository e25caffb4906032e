package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanDictionary(t *testing.T) {
	text := "Built services in Go and Python, deployed on Kubernetes with PostgreSQL."

	found := scanDictionary(text)

	assert.Contains(t, found, "Go")
	assert.Contains(t, found, "Python")
	assert.Contains(t, found, "Kubernetes")
	assert.Contains(t, found, "PostgreSQL")
	assert.NotContains(t, found, "Java")
}

func TestScanDictionary_WordBoundaries(t *testing.T) {
	// "Going" and "Rusty" must not match "Go" and "Rust".
	found := scanDictionary("Going to update the Rusty pipeline tomorrow.")
	assert.NotContains(t, found, "Go")
	assert.NotContains(t, found, "Rust")

	// Symbol-bearing terms still match on their own boundaries.
	found = scanDictionary("Fluent in C++, C# and .NET development.")
	assert.Contains(t, found, "C++")
	assert.Contains(t, found, "C#")
	assert.Contains(t, found, ".NET")
}

func TestScanHeadings(t *testing.T) {
	text := "John Doe\n\nSkills:\nLeadership, Negotiation; Public Speaking\nTeam Building\n\nEXPERIENCE\nAcme Corp"

	found := scanHeadings(text)

	assert.Contains(t, found, "Leadership")
	assert.Contains(t, found, "Negotiation")
	assert.Contains(t, found, "Public Speaking")
	assert.Contains(t, found, "Team Building")
	assert.NotContains(t, found, "Acme Corp")
}

func TestScanHeadings_InlineContent(t *testing.T) {
	found := scanHeadings("Tech Stack: Django | Flask | Celery\n\nOther text")

	assert.Contains(t, found, "Django")
	assert.Contains(t, found, "Flask")
	assert.Contains(t, found, "Celery")
}

func TestScanHeadings_StopsAtNextSection(t *testing.T) {
	text := "Tools\nGit, Jira\nWork History:\nSoftware Engineer at a large company doing many things"

	found := scanHeadings(text)

	assert.Contains(t, found, "Git")
	assert.Contains(t, found, "Jira")
	assert.NotContains(t, found, "Software Engineer at a large company doing many things")
}

func TestFallbackSkills_MergesAndDedupes(t *testing.T) {
	text := "Skills: Python, Writing\nAlso experienced with python scripting."

	skills := fallbackSkills(text)

	// Dictionary hit and heading hit for the same term collapse to one.
	count := 0
	for _, s := range skills {
		if s == "Python" || s == "python" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Contains(t, skills, "Writing")
}

func TestFallbackSkills_NoSkillLikeText(t *testing.T) {
	skills := fallbackSkills("I enjoy long walks and reading novels.")
	assert.Empty(t, skills)
}
