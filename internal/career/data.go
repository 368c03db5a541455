package career

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// BuiltIn returns the careers the backend knows about out of the box.
// Deployments can extend or replace these with a careers YAML file.
func BuiltIn() map[string]Record {
	return map[string]Record{
		"software_engineer": {
			Title:       "Software Engineer",
			Personality: "Logical, creative, problem-solver, continuous learner",
			SalaryRange: SalaryRange{Entry: 75000, Mid: 130000, Senior: 200000},
			RequiredSkills: []string{
				"Programming", "Data Structures", "Algorithms", "System Design",
				"Git", "Testing", "Debugging", "Agile", "Cloud Computing",
			},
			PreferredSkills: []string{"Open Source Contributions", "Distributed Systems", "Mentoring"},
			Tools:           []string{"Git", "Docker", "Kubernetes", "VS Code", "CI/CD pipelines"},
			Languages:       []string{"Go", "Python", "JavaScript", "SQL"},
			EducationPath: []string{
				"Computer Science degree (4 years) or bootcamp (3-6 months)",
				"Internships during study",
				"Entry-level position",
				"Continuous learning and certifications",
			},
			Certifications: []string{"AWS Certified", "Google Cloud", "Azure", "Scrum Master"},
			Progression: map[string]string{
				"0-2":   "Junior Developer",
				"3-5":   "Mid-level Developer",
				"6-10":  "Senior Developer",
				"10-15": "Staff/Principal Engineer",
				"15+":   "Engineering Manager/Architect",
			},
		},
		"data_scientist": {
			Title:       "Data Scientist",
			Personality: "Analytical, curious, detail-oriented, communicative",
			SalaryRange: SalaryRange{Entry: 85000, Mid: 130000, Senior: 180000},
			RequiredSkills: []string{
				"Python", "R", "SQL", "Statistics", "Machine Learning",
				"Data Visualization", "Big Data", "Deep Learning", "Business Acumen",
			},
			PreferredSkills: []string{"MLOps", "Experiment Design", "Storytelling with Data"},
			Tools:           []string{"Jupyter", "pandas", "scikit-learn", "TensorFlow", "Tableau"},
			Languages:       []string{"Python", "R", "SQL"},
			EducationPath: []string{
				"Mathematics/Statistics/CS degree",
				"Master's in Data Science (optional)",
				"Online courses and projects",
				"Kaggle competitions",
			},
			Certifications: []string{"TensorFlow Certificate", "AWS ML", "Tableau", "SAS"},
			Progression: map[string]string{
				"0-2":   "Junior Data Analyst",
				"3-5":   "Data Scientist",
				"6-10":  "Senior Data Scientist",
				"10-15": "Lead Data Scientist",
				"15+":   "Chief Data Officer",
			},
		},
		"doctor": {
			Title:       "Medical Doctor",
			Personality: "Professional, caring, analytical, detail-oriented",
			SalaryRange: SalaryRange{Entry: 60000, Mid: 180000, Senior: 350000},
			RequiredSkills: []string{
				"Biology", "Chemistry", "Anatomy", "Physiology", "Pharmacology",
				"Clinical Skills", "Patient Care", "Medical Ethics", "Research",
			},
			EducationPath: []string{
				"Pre-med undergraduate (4 years)",
				"Medical school (4 years)",
				"Residency (3-7 years)",
				"Optional: Fellowship (1-3 years)",
			},
			Certifications: []string{"MCAT", "USMLE Step 1-3", "Board Certification"},
			Progression: map[string]string{
				"0-2":   "Medical Student",
				"3-7":   "Resident Physician",
				"8-12":  "Attending Physician",
				"13-20": "Senior Physician",
				"20+":   "Department Head/Chief",
			},
		},
		"entrepreneur": {
			Title:       "Entrepreneur",
			Personality: "Risk-taker, visionary, resilient, adaptable",
			SalaryRange: SalaryRange{Entry: -50000, Mid: 100000, Senior: 1000000},
			RequiredSkills: []string{
				"Business Strategy", "Marketing", "Sales", "Finance", "Leadership",
				"Networking", "Product Development", "Risk Management", "Negotiation",
			},
			EducationPath: []string{
				"Any degree (business preferred)",
				"MBA (optional but helpful)",
				"Accelerator programs",
				"Mentorship and networking",
			},
			Certifications: []string{"Lean Startup", "Digital Marketing", "PMP"},
			Progression: map[string]string{
				"0-2":   "Startup Founder",
				"3-5":   "Growing Business Owner",
				"6-10":  "Established Entrepreneur",
				"10-15": "Serial Entrepreneur",
				"15+":   "Investor/Mentor",
			},
		},
		"teacher": {
			Title:       "Teacher",
			Personality: "Patient, nurturing, communicative, organized",
			SalaryRange: SalaryRange{Entry: 40000, Mid: 55000, Senior: 75000},
			RequiredSkills: []string{
				"Subject Expertise", "Curriculum Development", "Classroom Management",
				"Communication", "Assessment", "Technology Integration", "Psychology",
			},
			EducationPath: []string{
				"Bachelor's in Education or Subject",
				"Teaching Credential Program",
				"Student Teaching",
				"Master's in Education (for advancement)",
			},
			Certifications: []string{"Teaching License", "Subject Specialization", "ESL"},
			Progression: map[string]string{
				"0-2":   "New Teacher",
				"3-7":   "Experienced Teacher",
				"8-15":  "Department Head",
				"15-20": "Assistant Principal",
				"20+":   "Principal/Administrator",
			},
		},
	}
}

// LoadFile reads a careers YAML file mapping career id → record.
func LoadFile(path string) (map[string]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading careers file %s: %w", path, err)
	}
	var records map[string]Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing careers file %s: %w", path, err)
	}
	return records, nil
}

// IDs returns the sorted career identifiers of a record set.
func IDs(records map[string]Record) []string {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
