package career

import (
	"fmt"
	"strings"

	"github.com/future-self-ai/backend/internal/retrieval"
)

// Chunks deterministically decomposes a career record into retrievable
// fact chunks, one per non-empty field category. The same record always
// produces the same chunk set (ids are content-derived), so loading is
// idempotent.
func Chunks(id string, rec Record) []retrieval.Chunk {
	title := rec.Title
	if title == "" {
		title = id
	}

	var chunks []retrieval.Chunk
	add := func(content string, typ retrieval.ChunkType, section string) {
		if strings.TrimSpace(content) == "" {
			return
		}
		chunks = append(chunks, retrieval.NewChunk(content, retrieval.Metadata{
			Type:     typ,
			CareerID: id,
			Section:  section,
		}))
	}

	if rec.Personality != "" {
		add(fmt.Sprintf("A %s is typically %s.", title, strings.ToLower(rec.Personality)),
			retrieval.ChunkBasicInfo, "overview")
	}

	if len(rec.RequiredSkills) > 0 {
		add(fmt.Sprintf("Core skills for a %s: %s.", title, strings.Join(rec.RequiredSkills, ", ")),
			retrieval.ChunkSkills, "required_skills")
	}

	if len(rec.PreferredSkills) > 0 {
		add(fmt.Sprintf("Skills that set a %s apart: %s.", title, strings.Join(rec.PreferredSkills, ", ")),
			retrieval.ChunkPreferredSkills, "preferred_skills")
	}

	if rec.SalaryRange != (SalaryRange{}) {
		add(fmt.Sprintf("Salary for a %s: entry level around %s, mid career around %s, senior around %s per year.",
			title, formatSalary(rec.SalaryRange.Entry), formatSalary(rec.SalaryRange.Mid), formatSalary(rec.SalaryRange.Senior)),
			retrieval.ChunkSalary, "salary_range")
	}

	if len(rec.Progression) > 0 {
		add(fmt.Sprintf("Career path for a %s: %s.", title, formatProgression(rec.Progression)),
			retrieval.ChunkProgression, "career_progression")
	}

	if len(rec.Tools) > 0 {
		add(fmt.Sprintf("A %s works daily with tools like %s.", title, strings.Join(rec.Tools, ", ")),
			retrieval.ChunkTools, "tools")
	}

	if len(rec.Languages) > 0 {
		add(fmt.Sprintf("Languages and technologies a %s should know: %s.", title, strings.Join(rec.Languages, ", ")),
			retrieval.ChunkLanguages, "languages")
	}

	if len(rec.EducationPath) > 0 {
		add(fmt.Sprintf("Typical education path for a %s: %s.", title, strings.Join(rec.EducationPath, "; ")),
			retrieval.ChunkBasicInfo, "education_path")
	}

	return chunks
}

// formatSalary renders a yearly amount in dollars. Negative bands exist
// (an entrepreneur's first years can lose money) and read as "-$50000",
// never "$-50000".
func formatSalary(n int) string {
	if n < 0 {
		return fmt.Sprintf("-$%d", -n)
	}
	return fmt.Sprintf("$%d", n)
}

// formatProgression renders the years→role map in ascending key order.
// Map iteration order would break chunk-id determinism.
func formatProgression(prog map[string]string) string {
	keys := sortedYearRanges(prog)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("years %s as %s", k, prog[k]))
	}
	return strings.Join(parts, ", ")
}

// sortedYearRanges orders keys like "0-2", "3-5", "15+" by their first number.
func sortedYearRanges(prog map[string]string) []string {
	keys := make([]string, 0, len(prog))
	for k := range prog {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && firstNumber(keys[j]) < firstNumber(keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

func firstNumber(s string) int {
	n := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		seen = true
		n = n*10 + int(r-'0')
	}
	if !seen {
		return 1 << 30
	}
	return n
}
