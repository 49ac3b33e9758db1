package career

import (
	"fmt"

	careerModel "github.com/future-self/backend/internal/model/career"
)

// TimelineEntry projects one year of the career journey.
type TimelineEntry struct {
	Year   int    `json:"year"`
	Phase  string `json:"phase"`
	Title  string `json:"title"`
	Salary int    `json:"salary"`
}

// Timeline projects the first ten years of the given career.
func Timeline(c careerModel.Career) []TimelineEntry {
	entries := make([]TimelineEntry, 0, 10)
	for year := 1; year <= 10; year++ {
		entries = append(entries, TimelineEntry{
			Year:   year,
			Phase:  careerModel.PhaseForYear(year),
			Title:  c.TitleForYear(year),
			Salary: c.SalaryForYear(year),
		})
	}
	return entries
}

// SalaryPoint is one year of the compounded salary projection.
type SalaryPoint struct {
	Year   int `json:"year"`
	Salary int `json:"salary"`
}

// SalaryProjection compounds the entry salary with phase-dependent growth:
// 8% for the first three years, 6% through year seven, then 4%.
func SalaryProjection(c careerModel.Career) []SalaryPoint {
	points := make([]SalaryPoint, 0, 10)
	salary := float64(c.Salary.Entry)
	for year := 1; year <= 10; year++ {
		var growth float64
		switch {
		case year <= 3:
			growth = 0.08
		case year <= 7:
			growth = 0.06
		default:
			growth = 0.04
		}
		salary *= 1 + growth
		points = append(points, SalaryPoint{Year: year, Salary: int(salary + 0.5)})
	}
	return points
}

// NegotiationTips is static guidance attached to salary projections.
func NegotiationTips() []string {
	return []string{
		"Research market rates",
		"Highlight your unique value",
		"Consider total compensation",
		"Be prepared to negotiate",
	}
}

// Project is a portfolio project suggestion.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Duration    string   `json:"duration"`
}

// Projects suggests portfolio work for the career. Careers without a
// curated list get a generic research project.
func Projects(careerID string) []Project {
	switch careerID {
	case "software_engineer":
		return []Project{
			{
				Title:       "Personal Portfolio Website",
				Description: "Build a responsive portfolio using modern web technologies",
				Skills:      []string{"HTML", "CSS", "JavaScript", "React"},
				Duration:    "2-3 weeks",
			},
			{
				Title:       "Task Management App",
				Description: "Create a full-stack application for managing tasks",
				Skills:      []string{"Node.js", "Express", "MongoDB", "React"},
				Duration:    "4 weeks",
			},
		}
	case "data_scientist":
		return []Project{
			{
				Title:       "Predictive Model Project",
				Description: "Build a machine learning model for predictions",
				Skills:      []string{"Python", "Scikit-learn", "Pandas", "Visualization"},
				Duration:    "3 weeks",
			},
		}
	default:
		return []Project{
			{
				Title:       "Industry Research Project",
				Description: "Research and document industry trends",
				Skills:      []string{"Research", "Analysis", "Presentation"},
				Duration:    "2 weeks",
			},
		}
	}
}

// InterviewQuestions groups prep questions by kind.
type InterviewQuestions struct {
	Technical  []string `json:"technical"`
	Behavioral []string `json:"behavioral"`
}

// InterviewPrep returns questions and tips for the career.
func InterviewPrep(c careerModel.Career) (InterviewQuestions, []string) {
	questions := InterviewQuestions{
		Technical:  []string{fmt.Sprintf("Describe the technical skills a %s relies on day to day", c.Title)},
		Behavioral: []string{"Why are you interested in this field?"},
	}

	if c.ID == "software_engineer" {
		questions = InterviewQuestions{
			Technical: []string{
				"Explain the difference between a stack and a queue",
				"What is time complexity?",
				"How would you design a URL shortener?",
			},
			Behavioral: []string{
				"Tell me about a challenging project",
				"How do you handle disagreements?",
				"Why this career?",
			},
		}
	}

	tips := []string{
		"Research the company thoroughly",
		"Practice your responses",
		"Prepare questions to ask",
		"Dress professionally",
		"Arrive early",
	}
	return questions, tips
}
