package resume

// PersonalInfo holds contact details pulled out of the resume header.
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Location string `json:"location,omitempty"`
}

// Skills groups extracted skills by category.
type Skills struct {
	Languages     []string `json:"languages"`
	Frameworks    []string `json:"frameworks"`
	Databases     []string `json:"databases"`
	Cloud         []string `json:"cloud"`
	Tools         []string `json:"tools"`
	Methodologies []string `json:"methodologies"`
	Soft          []string `json:"soft"`
}

// Flatten returns every extracted skill as a single deduplicated list.
func (s Skills) Flatten() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range [][]string{
		s.Languages, s.Frameworks, s.Databases, s.Cloud,
		s.Tools, s.Methodologies, s.Soft,
	} {
		for _, skill := range group {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			out = append(out, skill)
		}
	}
	return out
}

// Experience is one detected work-history entry.
type Experience struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
	Years    int    `json:"years"`
}

// Education is one detected degree entry.
type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// CareerMatch scores the resume against one career's required skills.
// MatchedSkills and MissingSkills are disjoint and together cover the
// career's full required-skill set.
type CareerMatch struct {
	CareerID        string   `json:"careerId"`
	MatchPercentage float64  `json:"matchPercentage"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
}

// Analysis is the structured profile produced by the resume analyzer.
type Analysis struct {
	PersonalInfo    PersonalInfo           `json:"personalInfo"`
	Skills          Skills                 `json:"skills"`
	AllSkills       []string               `json:"allSkills"`
	Experience      []Experience           `json:"experience,omitempty"`
	Education       []Education            `json:"education,omitempty"`
	YearsExperience int                    `json:"yearsExperience"`
	EducationLevel  int                    `json:"educationLevel"`
	Certifications  []string               `json:"certifications,omitempty"`
	DetectedCareer  string                 `json:"detectedCareer"`
	CareerMatches   map[string]CareerMatch `json:"careerMatches,omitempty"`
	AIInsight       string                 `json:"aiInsight,omitempty"`
}
