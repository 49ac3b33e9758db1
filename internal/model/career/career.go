package career

// SalaryRange holds typical yearly pay at the three tenure phases.
type SalaryRange struct {
	Entry  int `json:"entry"`
	Mid    int `json:"mid"`
	Senior int `json:"senior"`
}

// Stage maps a tenure band to the job title held during it.
// MaxYears of zero means the band is open-ended.
type Stage struct {
	MinYears int    `json:"minYears"`
	MaxYears int    `json:"maxYears,omitempty"`
	Title    string `json:"title"`
}

// Career captures everything the guidance endpoints know about a career path.
type Career struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Personality     string      `json:"personality"`
	RequiredSkills  []string    `json:"requiredSkills"`
	Salary          SalaryRange `json:"salary"`
	YearsTraining   int         `json:"yearsTraining"`
	EducationPath   []string    `json:"educationPath,omitempty"`
	Certifications  []string    `json:"certifications,omitempty"`
	Progression     []Stage     `json:"progression,omitempty"`
	WorkLifeBalance int         `json:"workLifeBalance"`
	JobSatisfaction int         `json:"jobSatisfaction"`
	GrowthPotential int         `json:"growthPotential"`
}

// TitleForYear resolves the job title held after the given number of years.
func (c Career) TitleForYear(year int) string {
	for _, stage := range c.Progression {
		if year < stage.MinYears {
			continue
		}
		if stage.MaxYears == 0 || year <= stage.MaxYears {
			return stage.Title
		}
	}
	return c.Title
}

// SalaryForYear picks the phase salary matching the given tenure year.
func (c Career) SalaryForYear(year int) int {
	switch {
	case year <= 2:
		return c.Salary.Entry
	case year <= 5:
		return c.Salary.Mid
	default:
		return c.Salary.Senior
	}
}

// PhaseForYear names the tenure phase for timeline entries.
func PhaseForYear(year int) string {
	switch {
	case year <= 2:
		return "Entry Level"
	case year <= 5:
		return "Mid Level"
	default:
		return "Senior Level"
	}
}
