package persona

import "time"

// Persona is the synthesized "future self" profile shown to the user.
// It is derived once from resume analysis plus the chosen career and is
// immutable afterwards.
type Persona struct {
	Name        string    `json:"name"`
	CurrentRole string    `json:"currentRole"`
	CareerPath  string    `json:"careerPath"`
	YearsAhead  int       `json:"yearsAhead"`
	Greeting    string    `json:"greeting,omitempty"`
	Trajectory  string    `json:"trajectory,omitempty"`
	Traits      []string  `json:"traits,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
