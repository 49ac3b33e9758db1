package persona

import (
	"fmt"
	"strings"
	"time"

	careerModel "github.com/future-self/backend/internal/model/career"
	"github.com/future-self/backend/internal/model/persona"
	"github.com/future-self/backend/internal/model/resume"
)

// YearsAhead is how far into the future the synthesized self lives.
const YearsAhead = 10

// Build derives the future-self persona from the resume analysis and the
// chosen career. The caller may pass a nil analysis (photo-only flow) and
// an empty display name; sensible defaults fill the gaps.
func Build(analysis *resume.Analysis, c careerModel.Career, displayName string) persona.Persona {
	name := strings.TrimSpace(displayName)
	if name == "" && analysis != nil {
		name = strings.TrimSpace(analysis.PersonalInfo.Name)
	}
	if name == "" {
		name = "Friend"
	}

	currentRole := c.TitleForYear(YearsAhead)

	return persona.Persona{
		Name:        name,
		CurrentRole: currentRole,
		CareerPath:  c.ID,
		YearsAhead:  YearsAhead,
		Trajectory:  buildTrajectory(analysis, c, currentRole),
		Traits:      splitTraits(c.Personality),
		CreatedAt:   time.Now().UTC(),
	}
}

// buildTrajectory writes the one-paragraph narrative of how the user got
// from where they are to the future role.
func buildTrajectory(analysis *resume.Analysis, c careerModel.Career, futureRole string) string {
	var b strings.Builder

	if analysis != nil && analysis.YearsExperience > 0 {
		fmt.Fprintf(&b, "Started with %d years of experience", analysis.YearsExperience)
		if match, ok := analysis.CareerMatches[c.ID]; ok && len(match.MatchedSkills) > 0 {
			fmt.Fprintf(&b, " and a foundation in %s", strings.Join(topN(match.MatchedSkills, 3), ", "))
		}
		b.WriteString(". ")
	}

	fmt.Fprintf(&b, "Over %d years grew step by step into a %s", YearsAhead, futureRole)
	if len(c.EducationPath) > 0 {
		fmt.Fprintf(&b, ", following the usual path: %s", strings.ToLower(c.EducationPath[0]))
	}
	b.WriteString(".")

	return b.String()
}

func splitTraits(personality string) []string {
	parts := strings.Split(personality, ",")
	traits := make([]string, 0, len(parts))
	for _, part := range parts {
		if trait := strings.TrimSpace(part); trait != "" {
			traits = append(traits, trait)
		}
	}
	return traits
}

func topN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
