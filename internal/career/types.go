package career

// SalaryRange holds annual salary bands in USD.
type SalaryRange struct {
	Entry  int `json:"entry" yaml:"entry"`
	Mid    int `json:"mid" yaml:"mid"`
	Senior int `json:"senior" yaml:"senior"`
}

// Record is the structured knowledge the store holds about one career.
type Record struct {
	Title           string            `json:"title" yaml:"title"`
	Personality     string            `json:"personality" yaml:"personality"`
	SalaryRange     SalaryRange       `json:"salary_range" yaml:"salary_range"`
	RequiredSkills  []string          `json:"required_skills" yaml:"required_skills"`
	PreferredSkills []string          `json:"preferred_skills" yaml:"preferred_skills"`
	Tools           []string          `json:"tools" yaml:"tools"`
	Languages       []string          `json:"languages" yaml:"languages"`
	EducationPath   []string          `json:"education_path" yaml:"education_path"`
	Certifications  []string          `json:"certifications" yaml:"certifications"`
	Progression     map[string]string `json:"career_progression" yaml:"career_progression"`
}

// Insights is the structured summary served by the careers API.
type Insights struct {
	Title          string            `json:"title"`
	SkillsRoadmap  []string          `json:"skills_roadmap"`
	SalaryBands    SalaryRange       `json:"salary_progression"`
	Milestones     map[string]string `json:"career_milestones"`
	EducationPath  []string          `json:"education_path"`
	Certifications []string          `json:"certifications"`
}

// InsightsFor summarizes a record for the API surface.
func InsightsFor(id string, rec Record) Insights {
	title := rec.Title
	if title == "" {
		title = id
	}
	return Insights{
		Title:          title,
		SkillsRoadmap:  rec.RequiredSkills,
		SalaryBands:    rec.SalaryRange,
		Milestones:     rec.Progression,
		EducationPath:  rec.EducationPath,
		Certifications: rec.Certifications,
	}
}
