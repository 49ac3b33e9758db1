package career

import (
	"math"
	"strings"

	careerModel "github.com/future-self/backend/internal/model/career"
	"github.com/future-self/backend/internal/model/resume"
)

// Match scores the user's skills against one career. Matched and missing
// partition the career's required-skill set; comparison is case-insensitive.
func Match(userSkills []string, c careerModel.Career) resume.CareerMatch {
	have := make(map[string]struct{}, len(userSkills))
	for _, skill := range userSkills {
		have[strings.ToLower(skill)] = struct{}{}
	}

	matched := make([]string, 0, len(c.RequiredSkills))
	missing := make([]string, 0, len(c.RequiredSkills))
	for _, skill := range c.RequiredSkills {
		if _, ok := have[strings.ToLower(skill)]; ok {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	var percentage float64
	if len(c.RequiredSkills) > 0 {
		percentage = float64(len(matched)) / float64(len(c.RequiredSkills)) * 100
		percentage = math.Round(percentage*100) / 100
	}

	return resume.CareerMatch{
		CareerID:        c.ID,
		MatchPercentage: percentage,
		MatchedSkills:   matched,
		MissingSkills:   missing,
	}
}

// LearningPath splits missing skills into acquisition horizons.
type LearningPath struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"shortTerm"`
	LongTerm  []string `json:"longTerm"`
}

// BuildLearningPath orders the skill gap into immediate (first 3), short
// term (next 4) and long term (the rest) buckets.
func BuildLearningPath(missing []string) LearningPath {
	path := LearningPath{
		Immediate: []string{},
		ShortTerm: []string{},
		LongTerm:  []string{},
	}
	for i, skill := range missing {
		switch {
		case i < 3:
			path.Immediate = append(path.Immediate, skill)
		case i < 7:
			path.ShortTerm = append(path.ShortTerm, skill)
		default:
			path.LongTerm = append(path.LongTerm, skill)
		}
	}
	return path
}
