package prompt

import (
	"strings"
	"testing"

	"github.com/future-self-ai/backend/internal/assembler"
	"github.com/future-self-ai/backend/internal/llm"
	"github.com/future-self-ai/backend/internal/persona"
	"github.com/future-self-ai/backend/internal/retrieval"
	"github.com/future-self-ai/backend/internal/validate"
)

func scored(content string, typ retrieval.ChunkType, score float64) retrieval.ScoredChunk {
	return retrieval.ScoredChunk{
		Chunk: retrieval.NewChunk(content, retrieval.Metadata{Type: typ, CareerID: "software_engineer"}),
		Score: score,
	}
}

func salaryBundle() assembler.Bundle {
	return assembler.Bundle{
		CareerID:     "software_engineer",
		QuestionType: assembler.QuestionSalary,
		Retrieved: []retrieval.ScoredChunk{
			scored("Core skills: Programming, System Design.", retrieval.ChunkSkills, 0.9),
			scored("Salary: entry around $75000, senior around $200000.", retrieval.ChunkSalary, 0.8),
			scored("Daily tools: Git, Docker.", retrieval.ChunkTools, 0.7),
			scored("Career path: junior to principal.", retrieval.ChunkProgression, 0.6),
		},
		CareerStage: assembler.StageEntry,
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	p := persona.Default()
	b := salaryBundle()
	if Build(p, "how much will I earn?", b, 0) != Build(p, "how much will I earn?", b, 0) {
		t.Error("same inputs produced different prompts")
	}
}

func TestBuildLocksRole(t *testing.T) {
	got := Build(persona.Persona{Name: "Sara", CurrentRole: "Data Scientist"}, "hi", assembler.Bundle{}, 0)

	if !strings.Contains(got, "You are Sara") {
		t.Error("prompt missing persona name")
	}
	if !strings.Contains(got, "Data Scientist") {
		t.Error("prompt missing persona role")
	}
	if !strings.Contains(got, "Never break character") {
		t.Error("prompt missing role lock")
	}
}

func TestBuildSharesNeverSayListWithValidator(t *testing.T) {
	got := strings.ToLower(Build(persona.Default(), "hello", assembler.Bundle{}, 0))
	for _, phrase := range validate.ForbiddenPhrases {
		if !strings.Contains(got, phrase) {
			t.Errorf("never-say list missing %q", phrase)
		}
	}
}

func TestBuildPrefersSnippetsForQuestionType(t *testing.T) {
	got := Build(persona.Default(), "what salary can I expect?", salaryBundle(), 0)

	if !strings.Contains(got, "Salary: entry around $75000") {
		t.Error("salary question should surface the salary chunk")
	}
	// Four chunks retrieved, only three fit.
	if strings.Contains(got, "Career path: junior to principal.") {
		t.Error("lowest-ranked non-preferred chunk should not fit in 3 snippet slots")
	}
}

func TestBuildLimitsHistory(t *testing.T) {
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "turn one"},
		{Role: llm.RoleAssistant, Content: "turn two"},
		{Role: llm.RoleUser, Content: "turn three"},
		{Role: llm.RoleAssistant, Content: "turn four"},
		{Role: llm.RoleUser, Content: "turn five"},
	}
	got := Build(persona.Default(), "next question", assembler.Bundle{History: history}, 0)

	if strings.Contains(got, "turn one") {
		t.Error("prompt should drop turns beyond the last four")
	}
	for _, want := range []string{"turn two", "turn three", "turn four", "turn five"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing history %q", want)
		}
	}
	if !strings.Contains(got, "Future self: turn four") {
		t.Error("assistant turns should be labeled as the future self")
	}
}

func TestBuildOutputContract(t *testing.T) {
	got := Build(persona.Default(), "tell me about the work", assembler.Bundle{}, 120)

	if !strings.Contains(got, "under 120 words") {
		t.Error("prompt missing word cap")
	}
	if !strings.Contains(got, "first person") {
		t.Error("prompt missing first-person instruction")
	}
	if !strings.Contains(got, "end with a question") {
		t.Error("prompt missing closing-question instruction")
	}
}
