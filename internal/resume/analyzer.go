// Package resume extracts a skill profile from plain résumé text. The
// web layer handles upload and file parsing; this package only sees
// text.
package resume

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/future-self-ai/backend/internal/retrieval"
)

// Profile is what a résumé tells us about the user.
type Profile struct {
	Skills          map[string][]string `json:"skills"`
	AllSkills       []string            `json:"all_skills"`
	YearsExperience int                 `json:"years_experience"`
}

// skillTable maps a category to the terms worth recognizing. Matching is
// case-insensitive on word boundaries, so "Go" does not fire on
// "Google".
var skillTable = map[string][]string{
	"languages": {
		"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go",
		"Rust", "Swift", "Kotlin", "PHP", "Ruby", "Scala", "R", "SQL",
		"HTML", "CSS", "Bash",
	},
	"frameworks": {
		"React", "Angular", "Vue", "Next.js", "Express", "Node.js",
		"Django", "Flask", "FastAPI", "Pandas", "NumPy", "TensorFlow",
		"PyTorch", "Scikit-learn", "Spring", "Rails", ".NET", "Flutter",
	},
	"databases": {
		"MySQL", "PostgreSQL", "MongoDB", "Redis", "Cassandra",
		"Elasticsearch", "DynamoDB", "SQLite", "Oracle",
	},
	"cloud": {
		"AWS", "Azure", "GCP", "Google Cloud", "Heroku", "DigitalOcean",
		"Vercel", "Cloudflare",
	},
	"tools": {
		"Git", "GitHub", "GitLab", "Docker", "Kubernetes", "Terraform",
		"Jenkins", "Jira", "Figma", "Prometheus", "Grafana", "Postman",
	},
	"methodologies": {
		"Agile", "Scrum", "Kanban", "DevOps", "TDD", "Microservices",
		"REST", "GraphQL", "CI/CD",
	},
	"soft": {
		"Leadership", "Communication", "Teamwork", "Problem Solving",
		"Mentoring", "Time Management", "Public Speaking",
	},
}

var (
	statedYearsRe = regexp.MustCompile(`(?i)(\d{1,2})\+?\s*years?\s+of\s+(?:professional\s+)?experience`)
	yearRangeRe   = regexp.MustCompile(`(?i)\b(\d{4})\s*[-–—]\s*(\d{4}|present|current)\b`)
)

// Analyze extracts the skill profile from résumé text. It is a pure
// keyword pass and never fails; an unrecognizable résumé yields an
// empty profile.
func Analyze(text string) Profile {
	p := Profile{Skills: make(map[string][]string)}

	for category, terms := range skillTable {
		var found []string
		for _, term := range terms {
			if containsTerm(text, term) {
				found = append(found, term)
			}
		}
		if len(found) > 0 {
			sort.Strings(found)
			p.Skills[category] = found
			p.AllSkills = append(p.AllSkills, found...)
		}
	}
	sort.Strings(p.AllSkills)

	p.YearsExperience = extractYears(text)
	return p
}

// Chunks turns a profile into retrievable chunks owned by the session,
// one per skill category.
func Chunks(sessionID string, p Profile) []retrieval.Chunk {
	categories := make([]string, 0, len(p.Skills))
	for c := range p.Skills {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var chunks []retrieval.Chunk
	for _, c := range categories {
		content := fmt.Sprintf("From their resume (%s): %s.", c, strings.Join(p.Skills[c], ", "))
		chunks = append(chunks, retrieval.NewChunk(content, retrieval.Metadata{
			Type:     retrieval.ChunkResume,
			CareerID: sessionID,
			Section:  c,
		}))
	}
	if p.YearsExperience > 0 {
		content := fmt.Sprintf("From their resume: %d years of professional experience.", p.YearsExperience)
		chunks = append(chunks, retrieval.NewChunk(content, retrieval.Metadata{
			Type:     retrieval.ChunkResume,
			CareerID: sessionID,
			Section:  "experience",
		}))
	}
	return chunks
}

// extractYears prefers an explicit "N years of experience" statement and
// otherwise sums the employment date ranges.
func extractYears(text string) int {
	if m := statedYearsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	total := 0
	seen := make(map[string]bool)
	for _, m := range yearRangeRe.FindAllStringSubmatch(text, -1) {
		if seen[m[0]] {
			continue
		}
		seen[m[0]] = true

		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end := time.Now().Year()
		if y, err := strconv.Atoi(m[2]); err == nil {
			end = y
		}
		if end < start {
			continue
		}
		years := end - start
		if years == 0 {
			years = 1
		}
		total += years
	}
	return total
}

// containsTerm reports whether term occurs in text as a whole word,
// case-insensitively. Boundaries are alphanumeric transitions, so terms
// ending in symbols ("C++", "CI/CD") still match.
func containsTerm(text, term string) bool {
	lower := strings.ToLower(text)
	needle := strings.ToLower(term)

	for start := 0; ; {
		i := strings.Index(lower[start:], needle)
		if i < 0 {
			return false
		}
		i += start

		beforeOK := i == 0 || !isWordByte(lower[i-1])
		after := i + len(needle)
		afterOK := after == len(lower) || !isWordByte(lower[after])
		// Symbol-final terms like "c++" only need the left boundary.
		if !endsWithWordByte(needle) {
			afterOK = true
		}
		if !startsWithWordByte(needle) {
			beforeOK = true
		}
		if beforeOK && afterOK {
			return true
		}
		start = i + 1
	}
}

func isWordByte(b byte) bool {
	return unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b))
}

func startsWithWordByte(s string) bool {
	return len(s) > 0 && isWordByte(s[0])
}

func endsWithWordByte(s string) bool {
	return len(s) > 0 && isWordByte(s[len(s)-1])
}
