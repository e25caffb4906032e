package extraction

import (
	"regexp"
	"strings"
)

// skillVocabulary is the curated dictionary used by the deterministic
// fallback. Matching is case-insensitive on word boundaries; entries
// keep their canonical casing in the output.
var skillVocabulary = []string{
	// Languages
	"Go", "Golang", "Python", "Java", "JavaScript", "TypeScript", "C++",
	"C#", "Ruby", "PHP", "Swift", "Kotlin", "Rust", "Scala", "R",
	"MATLAB", "Perl", "Objective-C", "SQL", "Bash",
	// Web and frameworks
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "FastAPI",
	"Spring", "Rails", "Laravel", ".NET", "Express", "Next.js", "HTML",
	"CSS", "GraphQL", "REST", "gRPC",
	// Data stores
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch",
	"Cassandra", "DynamoDB", "SQLite", "Oracle", "Kafka", "RabbitMQ",
	// Cloud and infra
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform",
	"Ansible", "Jenkins", "CircleCI", "GitHub Actions", "Linux", "Git",
	"Nginx", "Prometheus", "Grafana",
	// Data and ML
	"TensorFlow", "PyTorch", "scikit-learn", "Pandas", "NumPy", "Spark",
	"Hadoop", "Airflow", "Tableau", "Power BI", "Machine Learning",
	"Deep Learning", "NLP", "Data Analysis", "ETL",
	// Practice
	"Agile", "Scrum", "Kanban", "CI/CD", "TDD", "Microservices",
	"DevOps", "Project Management",
}

var vocabularyPatterns = compileVocabulary(skillVocabulary)

func compileVocabulary(terms []string) map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(terms))
	for _, term := range terms {
		// \b misbehaves around symbols like "C++" and ".NET", so word
		// boundaries are spelled out explicitly.
		patterns[term] = regexp.MustCompile(
			`(?i)(^|[^a-zA-Z0-9+#.])` + regexp.QuoteMeta(term) + `($|[^a-zA-Z0-9+#])`)
	}
	return patterns
}

// scanDictionary returns vocabulary terms present in the text, in
// vocabulary order.
func scanDictionary(text string) []string {
	var found []string
	for _, term := range skillVocabulary {
		if vocabularyPatterns[term].MatchString(text) {
			found = append(found, term)
		}
	}
	return found
}

// skillHeadings are section headers whose following lines are treated
// as skill listings.
var skillHeadings = []string{
	"skills", "technical skills", "core skills", "key skills",
	"tech stack", "technology stack", "technologies", "tools",
	"core competencies", "competencies",
}

var skillDelimiters = regexp.MustCompile(`[,;|/•·]+|\s{2,}`)

// scanHeadings collects skill-like items listed under recognized
// section headers, splitting on common resume delimiters. The scan
// stops at a blank line or the next section header.
func scanHeadings(text string) []string {
	var found []string
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		rest, ok := matchHeading(line)
		if !ok {
			continue
		}
		if rest != "" {
			found = append(found, splitSkillLine(rest)...)
		}
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" || looksLikeHeading(next) {
				break
			}
			found = append(found, splitSkillLine(next)...)
		}
	}
	return found
}

// matchHeading reports whether a line is a skill section header and
// returns any inline content after the colon.
func matchHeading(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(trimmed)
	for _, heading := range skillHeadings {
		if lower == heading || lower == heading+":" {
			return "", true
		}
		if strings.HasPrefix(lower, heading+":") {
			return strings.TrimSpace(trimmed[len(heading)+1:]), true
		}
	}
	return "", false
}

// looksLikeHeading is a loose check for the start of another resume
// section, used to bound a heading scan.
func looksLikeHeading(line string) bool {
	if strings.HasSuffix(line, ":") && len(line) <= 40 {
		return true
	}
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 4 {
		return false
	}
	return line == strings.ToUpper(line) && strings.ContainsAny(line, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
}

func splitSkillLine(line string) []string {
	line = strings.TrimLeft(line, "-*• \t")
	var items []string
	for _, part := range skillDelimiters.Split(line, -1) {
		part = strings.TrimSpace(part)
		// Multi-word fragments are usually prose, not list items.
		if part == "" || len(part) > 40 || len(strings.Fields(part)) > 4 {
			continue
		}
		items = append(items, part)
	}
	return items
}

// fallbackSkills is the deterministic Tier 3 skill extraction: dictionary
// match plus heading-section scan. It returns whatever skill-like text
// exists in the source, possibly nothing for prose with no skill terms.
func fallbackSkills(text string) []string {
	skills := scanDictionary(text)
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		seen[strings.ToLower(s)] = true
	}
	for _, s := range scanHeadings(text) {
		if !seen[strings.ToLower(s)] {
			seen[strings.ToLower(s)] = true
			skills = append(skills, s)
		}
	}
	return skills
}
