// Package prompt renders the instruction text sent to a generative
// backend. Build is a pure function of its inputs, so the same persona,
// question, and context bundle always produce the same prompt.
package prompt

import (
	"fmt"
	"strings"

	"github.com/future-self-ai/backend/internal/assembler"
	"github.com/future-self-ai/backend/internal/llm"
	"github.com/future-self-ai/backend/internal/persona"
	"github.com/future-self-ai/backend/internal/retrieval"
	"github.com/future-self-ai/backend/internal/validate"
)

const (
	// DefaultMaxWords caps the requested response length.
	DefaultMaxWords = 150

	maxSnippets     = 3
	maxHistoryTurns = 4
)

// snippetPreference maps a question type to the chunk types worth
// surfacing first. Remaining snippet slots fill in rank order.
var snippetPreference = map[assembler.QuestionType][]retrieval.ChunkType{
	assembler.QuestionSalary:     {retrieval.ChunkSalary},
	assembler.QuestionSkills:     {retrieval.ChunkSkills, retrieval.ChunkPreferredSkills},
	assembler.QuestionInterview:  {retrieval.ChunkSkills, retrieval.ChunkBasicInfo},
	assembler.QuestionCareerPath: {retrieval.ChunkProgression},
	assembler.QuestionDailyLife:  {retrieval.ChunkTools, retrieval.ChunkLanguages},
}

// Build renders the full prompt: role lock, phrases to never say,
// retrieved career facts, recent conversation, then the output contract.
// maxWords <= 0 uses DefaultMaxWords.
func Build(p persona.Persona, question string, b assembler.Bundle, maxWords int) string {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	p = p.Normalized()

	var sb strings.Builder

	fmt.Fprintf(&sb, "You are %s, speaking from 10 years in the future. You are now %d years old and work as a %s.\n",
		p.Name, p.CurrentAge, p.CurrentRole)
	sb.WriteString("IMPORTANT: You ARE their future self. Speak in first person about YOUR journey. Never break character.\n\n")

	sb.WriteString("Never say any of these phrases: ")
	sb.WriteString(strings.Join(validate.ForbiddenPhrases, "; "))
	sb.WriteString(".\n\n")

	fmt.Fprintf(&sb, "At age %d you struggled with: %s.\n", p.PastAge, strings.Join(head(p.ChallengesOvercome, 3), ", "))
	fmt.Fprintf(&sb, "You achieved: %s.\n", strings.Join(head(p.Achievements, 2), ", "))
	fmt.Fprintf(&sb, "Memories you can draw on: %s.\n\n", strings.Join(head(p.SpecificMemories, 2), ", "))

	if snippets := selectSnippets(b); len(snippets) > 0 {
		sb.WriteString("What you know about this career:\n")
		for _, s := range snippets {
			sb.WriteString("- ")
			sb.WriteString(s.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(b.RelevantSkills) > 0 {
		fmt.Fprintf(&sb, "They mentioned: %s.\n", strings.Join(b.RelevantSkills, ", "))
	}
	if b.CareerStage != assembler.StageGeneral && b.CareerStage != "" {
		fmt.Fprintf(&sb, "They are asking about the %s stage.\n", b.CareerStage)
	}
	if len(b.Topics) > 0 {
		fmt.Fprintf(&sb, "Topics to address: %s.\n", strings.Join(b.Topics, ", "))
	}
	sb.WriteString("\n")

	if turns := recentTurns(b.History); len(turns) > 0 {
		sb.WriteString("Recent conversation:\n")
		for _, t := range turns {
			fmt.Fprintf(&sb, "%s: %s\n", roleLabel(t.Role), t.Content)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Their message: %q\n\n", question)

	sb.WriteString("Respond as their future self, in first person.\n")
	fmt.Fprintf(&sb, "Keep it under %d words.\n", maxWords)
	sb.WriteString("Do not invent named people or companies.\n")
	sb.WriteString("Be warm, specific, and realistic, and end with a question back to them.\n")

	return sb.String()
}

// selectSnippets picks up to maxSnippets retrieved chunks, preferring
// the types that answer the question category, then rank order.
func selectSnippets(b assembler.Bundle) []retrieval.ScoredChunk {
	preferred := snippetPreference[b.QuestionType]

	var picked []retrieval.ScoredChunk
	taken := make(map[string]bool)
	for _, typ := range preferred {
		for _, c := range b.Retrieved {
			if len(picked) == maxSnippets {
				return picked
			}
			if c.Metadata.Type == typ && !taken[c.ID] {
				picked = append(picked, c)
				taken[c.ID] = true
			}
		}
	}
	for _, c := range b.Retrieved {
		if len(picked) == maxSnippets {
			break
		}
		if !taken[c.ID] {
			picked = append(picked, c)
			taken[c.ID] = true
		}
	}
	return picked
}

// recentTurns returns the last turns of the conversation, at most
// maxHistoryTurns.
func recentTurns(history []llm.Message) []llm.Message {
	if len(history) > maxHistoryTurns {
		return history[len(history)-maxHistoryTurns:]
	}
	return history
}

func roleLabel(r llm.Role) string {
	switch r {
	case llm.RoleAssistant:
		return "Future self"
	case llm.RoleUser:
		return "Them"
	default:
		return string(r)
	}
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
