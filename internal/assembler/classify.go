package assembler

import "strings"

// QuestionType buckets a user question so the prompt builder can pick
// which context to surface.
type QuestionType string

const (
	QuestionSalary     QuestionType = "salary"
	QuestionSkills     QuestionType = "skills"
	QuestionInterview  QuestionType = "interview"
	QuestionChallenges QuestionType = "challenges"
	QuestionDailyLife  QuestionType = "daily_life"
	QuestionCareerPath QuestionType = "career_path"
	QuestionGeneral    QuestionType = "general"
)

// CareerStage is the experience level a question is about.
type CareerStage string

const (
	StageEntry   CareerStage = "entry"
	StageMid     CareerStage = "mid"
	StageSenior  CareerStage = "senior"
	StageGeneral CareerStage = "general"
)

// questionBuckets are checked in order; the first bucket with a keyword
// hit wins, so a question about "salary after the interview" classifies
// as salary.
var questionBuckets = []struct {
	typ      QuestionType
	keywords []string
}{
	{QuestionSalary, []string{"salary", "money", "pay", "income", "earn"}},
	{QuestionSkills, []string{"skill", "learn", "study", "course", "training"}},
	{QuestionInterview, []string{"interview", "apply", "job", "hiring"}},
	{QuestionChallenges, []string{"challenge", "difficult", "hard", "struggle"}},
	{QuestionDailyLife, []string{"day", "daily", "work", "routine"}},
	{QuestionCareerPath, []string{"future", "career", "path", "journey"}},
}

// ClassifyQuestion maps a question to its type by keyword lookup.
// Matching is case-insensitive substring matching.
func ClassifyQuestion(question string) QuestionType {
	q := strings.ToLower(question)
	for _, bucket := range questionBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(q, kw) {
				return bucket.typ
			}
		}
	}
	return QuestionGeneral
}

// ExtractRelevantSkills returns the skills from the career's list that
// the question mentions, preserving the career-list order.
func ExtractRelevantSkills(question string, skills []string) []string {
	q := strings.ToLower(question)
	var relevant []string
	for _, skill := range skills {
		if strings.Contains(q, strings.ToLower(skill)) {
			relevant = append(relevant, skill)
		}
	}
	return relevant
}

var stageBuckets = []struct {
	stage    CareerStage
	keywords []string
}{
	{StageEntry, []string{"start", "begin", "entry", "junior", "first"}},
	{StageMid, []string{"mid", "middle", "experienced", "senior"}},
	{StageSenior, []string{"lead", "manager", "director", "executive"}},
}

// DetermineCareerStage picks the experience level the question asks
// about, first matching bucket wins.
func DetermineCareerStage(question string) CareerStage {
	q := strings.ToLower(question)
	for _, bucket := range stageBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(q, kw) {
				return bucket.stage
			}
		}
	}
	return StageGeneral
}

var topicKeywords = []struct {
	topic    string
	keywords []string
}{
	{"technology", []string{"tech", "technology", "programming", "coding", "software"}},
	{"leadership", []string{"lead", "leadership", "manage", "team", "direct"}},
	{"education", []string{"learn", "study", "education", "degree", "certification"}},
	{"work_life", []string{"work", "life", "balance", "schedule", "hours"}},
	{"growth", []string{"grow", "growth", "advance", "progress", "develop"}},
}

// ExtractTopics returns every topic label whose keywords appear in the
// question. Unlike question types, topics are multi-label.
func ExtractTopics(question string) []string {
	q := strings.ToLower(question)
	var topics []string
	for _, t := range topicKeywords {
		for _, kw := range t.keywords {
			if strings.Contains(q, kw) {
				topics = append(topics, t.topic)
				break
			}
		}
	}
	return topics
}
