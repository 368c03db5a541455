// Package persona models the "future self" character the backend speaks
// as: who the user becomes ten years from now.
package persona

import "strings"

// Persona describes the future self. All fields are optional; rendering
// code calls Normalized to fill the gaps.
type Persona struct {
	Name               string   `json:"name"`
	CurrentAge         int      `json:"current_age"`
	PastAge            int      `json:"past_age"`
	CurrentRole        string   `json:"current_role"`
	CareerPath         string   `json:"career_path"`
	Achievements       []string `json:"achievements"`
	ChallengesOvercome []string `json:"challenges_overcome"`
	SpecificMemories   []string `json:"specific_memories"`
	WisdomGained       []string `json:"wisdom_gained"`
}

// Profile is the user data a persona is derived from.
type Profile struct {
	Name            string `json:"name"`
	Age             int    `json:"age"`
	YearsExperience int    `json:"years_experience"`
}

// Default returns the persona used when the caller supplies none.
func Default() Persona {
	return Persona{
		Name:        "Friend",
		CurrentAge:  35,
		PastAge:     25,
		CurrentRole: "Successful Professional",
		CareerPath:  "professional",
		Achievements: []string{
			"Built a meaningful career",
			"Found work-life balance",
			"Made lasting impact",
		},
		ChallengesOvercome: []string{
			"job search struggles",
			"imposter syndrome",
			"self-doubt",
		},
		SpecificMemories: []string{
			"those sleepless nights",
			"the first breakthrough",
			"when everything clicked",
		},
		WisdomGained: []string{
			"consistency beats perfection",
			"failure is just data",
			"small steps compound",
		},
	}
}

// FromProfile builds the future self for a user chasing careerGoal. The
// future self is ten years older and ten years further into the career.
func FromProfile(p Profile, careerGoal string) Persona {
	name := strings.TrimSpace(p.Name)
	if len(name) < 2 {
		name = "Friend"
	}
	age := p.Age
	if age <= 0 {
		age = 25
	}

	return Persona{
		Name:        name,
		CurrentAge:  age + 10,
		PastAge:     age,
		CurrentRole: RoleTitle(careerGoal, p.YearsExperience+10),
		CareerPath:  careerGoal,
		Achievements: []string{
			"Built successful products",
			"Led amazing teams",
			"Found work-life balance",
			"Made lasting impact",
			"Became industry expert",
		},
		ChallengesOvercome: []string{
			"months of rejections",
			"imposter syndrome",
			"skill gaps",
			"burnout",
			"career pivots",
		},
		SpecificMemories: []string{
			"application #73 getting rejected",
			"crying after failed interviews",
			"the email that changed everything",
			"first day at dream job",
			"moment I knew I made it",
		},
		WisdomGained: []string{
			"rejection is redirection",
			"progress over perfection",
			"network beats resume",
			"consistency compounds",
			"failure teaches fastest",
		},
	}
}

// RoleTitle turns a career id like "software_engineer" into a display
// title, adding a Senior prefix past five years of experience.
func RoleTitle(career string, years int) string {
	base := titleCase(strings.ReplaceAll(career, "_", " "))
	if base == "" {
		base = "Professional"
	}
	if years > 5 {
		return "Senior " + base
	}
	return base
}

// Normalized returns a copy with empty fields replaced by defaults, so
// prompt and fallback rendering never deal with blanks.
func (p Persona) Normalized() Persona {
	def := Default()
	if strings.TrimSpace(p.Name) == "" {
		p.Name = def.Name
	}
	if p.CurrentRole == "" {
		p.CurrentRole = "Professional"
	}
	if p.CurrentAge <= 0 {
		p.CurrentAge = def.CurrentAge
	}
	if p.PastAge <= 0 {
		p.PastAge = def.PastAge
	}
	if len(p.Achievements) == 0 {
		p.Achievements = def.Achievements
	}
	if len(p.ChallengesOvercome) == 0 {
		p.ChallengesOvercome = def.ChallengesOvercome
	}
	if len(p.SpecificMemories) == 0 {
		p.SpecificMemories = def.SpecificMemories
	}
	if len(p.WisdomGained) == 0 {
		p.WisdomGained = def.WisdomGained
	}
	return p
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
