package resume

import (
	"regexp"
	"sort"
	"strings"
	"time"

	careerModel "github.com/future-self/backend/internal/model/career"
	"github.com/future-self/backend/internal/model/resume"
	careerService "github.com/future-self/backend/internal/service/career"
)

// Keyword tables the pattern analyzer scans for, by category.
var (
	languageKeywords = []string{
		"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go",
		"Rust", "Swift", "Kotlin", "PHP", "Ruby", "Scala", "R", "MATLAB",
		"HTML", "CSS", "SQL", "GraphQL", "Bash",
	}
	frameworkKeywords = []string{
		"React", "Angular", "Vue", "Svelte", "Next.js", "Express",
		"Node.js", "Django", "Flask", "FastAPI", "Spring", "Rails",
		"Pandas", "NumPy", "TensorFlow", "PyTorch", "Scikit-learn",
		"React Native", "Flutter",
	}
	databaseKeywords = []string{
		"MySQL", "PostgreSQL", "MongoDB", "Redis", "Cassandra",
		"Elasticsearch", "DynamoDB", "SQLite", "Oracle", "SQL Server",
	}
	cloudKeywords = []string{
		"AWS", "Azure", "GCP", "Google Cloud", "Heroku", "DigitalOcean",
		"Lambda", "EC2", "S3", "Cloudflare", "Vercel", "Netlify",
	}
	toolKeywords = []string{
		"Git", "GitHub", "GitLab", "Docker", "Kubernetes", "Terraform",
		"Jenkins", "Ansible", "Prometheus", "Grafana", "Jira", "Figma",
		"Selenium", "Cypress", "Jest", "Pytest", "Postman",
	}
	methodologyKeywords = []string{
		"Agile", "Scrum", "Kanban", "DevOps", "CI/CD", "TDD",
		"Microservices", "RESTful API", "Design Patterns", "Clean Code",
	}
	softKeywords = []string{
		"Leadership", "Communication", "Problem Solving", "Teamwork",
		"Project Management", "Time Management", "Critical Thinking",
		"Creativity", "Adaptability", "Mentoring", "Negotiation",
		"Patience", "Empathy", "Research",
	}
	certificationKeywords = []string{
		"AWS Certified", "Azure Certified", "Google Cloud Certified",
		"CompTIA", "PMP", "ITIL", "Scrum Master", "Six Sigma", "CISSP",
		"CCNA", "Teaching License", "Board Certification",
	}
)

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`\+?\(?\d{3}\)?[-\s.]?\d{3}[-\s.]?\d{4}`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
	locationPattern = regexp.MustCompile(`([A-Z][a-z]+(?: [A-Z][a-z]+)*), ([A-Z]{2})\b`)
	namePattern     = regexp.MustCompile(`^([A-Z][a-z]+ (?:[A-Z]\. )?[A-Z][a-z]+(?: [A-Z][a-z]+)?)\s*$`)

	experiencePattern = regexp.MustCompile(
		`(?im)^\s*([A-Za-z ,&.]+?(?:Engineer|Developer|Manager|Analyst|Designer|Architect|Scientist|Lead|Intern|Consultant|Teacher|Physician|Founder))\s+at\s+([A-Za-z0-9 ,&.()-]+?)\s*[(\[]?\s*(\d{4})\s*[-–—]\s*(\d{4}|[Pp]resent|[Cc]urrent)`)
	yearsPattern = regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?(?:professional\s*|work(?:ing)?\s*)?experience`)
	gradPattern  = regexp.MustCompile(`(?i)graduat(?:ed|ion)\s*:?\s*(\d{4})`)
	yearPattern  = regexp.MustCompile(`\d{4}`)
)

// educationLevels map degree keywords to the 0-5 scale, highest first.
var educationLevels = []struct {
	level    int
	keywords []string
}{
	{5, []string{"phd", "ph.d", "doctorate", "doctoral"}},
	{4, []string{"master", "mba", "m.s.", "m.a.", "msc", "m.tech"}},
	{3, []string{"bachelor", "b.s.", "b.a.", "bsc", "b.tech", "b.e."}},
	{2, []string{"associate", "a.s.", "a.a."}},
	{1, []string{"diploma", "certificate", "certification"}},
	{0, []string{"high school", "secondary"}},
}

// Analyzer turns raw resume text into a structured profile scored
// against the career catalog.
type Analyzer struct {
	careers careerModel.Store
}

// NewAnalyzer creates an analyzer backed by the given career catalog.
func NewAnalyzer(careers careerModel.Store) *Analyzer {
	return &Analyzer{careers: careers}
}

// Analyze runs the full pattern analysis. It never fails; a resume the
// patterns cannot read produces an empty-but-valid profile.
func (a *Analyzer) Analyze(text string) resume.Analysis {
	skills := extractSkills(text)
	flat := skills.Flatten()

	analysis := resume.Analysis{
		PersonalInfo:    extractPersonalInfo(text),
		Skills:          skills,
		AllSkills:       flat,
		Experience:      extractExperience(text),
		Education:       extractEducation(text),
		Certifications:  extractCertifications(text),
		EducationLevel:  educationLevel(text),
		YearsExperience: yearsExperience(text),
		CareerMatches:   make(map[string]resume.CareerMatch),
	}

	for _, c := range a.careers.List() {
		analysis.CareerMatches[c.ID] = careerService.Match(flat, c)
	}
	analysis.DetectedCareer = a.detectCareer(text, analysis.CareerMatches)

	return analysis
}

// detectCareer picks the catalog career with the strongest skill match,
// with a bonus when the career's title appears verbatim in the resume.
func (a *Analyzer) detectCareer(text string, matches map[string]resume.CareerMatch) string {
	lower := strings.ToLower(text)

	best := ""
	bestScore := -1.0
	ids := make([]string, 0, len(matches))
	for id := range matches {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic tie-breaking

	for _, id := range ids {
		score := matches[id].MatchPercentage
		if c, ok := a.careers.FindByID(id); ok {
			if strings.Contains(lower, strings.ToLower(c.Title)) {
				score += 25
			}
		}
		if score > bestScore {
			best = id
			bestScore = score
		}
	}

	if best == "" {
		return "software_engineer"
	}
	return best
}

func containsKeyword(lower, keyword string) bool {
	pattern := `(?i)(^|[^a-z0-9])` + regexp.QuoteMeta(strings.ToLower(keyword)) + `($|[^a-z0-9+#.])`
	matched, _ := regexp.MatchString(pattern, lower)
	return matched
}

func matchKeywords(lower string, keywords []string) []string {
	var found []string
	for _, keyword := range keywords {
		if containsKeyword(lower, keyword) {
			found = append(found, keyword)
		}
	}
	sort.Strings(found)
	return found
}

func extractSkills(text string) resume.Skills {
	lower := strings.ToLower(text)
	return resume.Skills{
		Languages:     matchKeywords(lower, languageKeywords),
		Frameworks:    matchKeywords(lower, frameworkKeywords),
		Databases:     matchKeywords(lower, databaseKeywords),
		Cloud:         matchKeywords(lower, cloudKeywords),
		Tools:         matchKeywords(lower, toolKeywords),
		Methodologies: matchKeywords(lower, methodologyKeywords),
		Soft:          matchKeywords(lower, softKeywords),
	}
}

func extractPersonalInfo(text string) resume.PersonalInfo {
	info := resume.PersonalInfo{}

	// The name is usually one of the first non-empty lines.
	for _, line := range strings.SplitN(text, "\n", 6) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if match := namePattern.FindStringSubmatch(line); match != nil {
			info.Name = match[1]
			break
		}
	}

	if match := emailPattern.FindString(text); match != "" {
		info.Email = match
	}
	if match := phonePattern.FindString(text); match != "" {
		info.Phone = match
	}
	if match := linkedinPattern.FindString(text); match != "" {
		info.LinkedIn = match
	}
	if match := githubPattern.FindString(text); match != "" {
		info.GitHub = match
	}
	if match := locationPattern.FindString(text); match != "" {
		info.Location = match
	}

	return info
}

func extractExperience(text string) []resume.Experience {
	var entries []resume.Experience
	seen := make(map[string]struct{})

	for _, match := range experiencePattern.FindAllStringSubmatch(text, -1) {
		title := strings.TrimSpace(match[1])
		company := strings.TrimSpace(match[2])
		key := title + "|" + company
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		start, end := match[3], match[4]
		entries = append(entries, resume.Experience{
			Title:    title,
			Company:  company,
			Duration: start + " - " + end,
			Years:    durationYears(start, end),
		})
	}

	return entries
}

func durationYears(start, end string) int {
	endYear := time.Now().Year()
	if match := yearPattern.FindString(end); match != "" {
		endYear = atoiSafe(match)
	}
	startYear := endYear - 1
	if match := yearPattern.FindString(start); match != "" {
		startYear = atoiSafe(match)
	}
	if years := endYear - startYear; years > 1 {
		return years
	}
	return 1
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}

var degreePattern = regexp.MustCompile(
	`(?im)(Bachelor|B\.S\.|B\.A\.|Master|M\.S\.|M\.A\.|MBA|Ph\.?D|Doctorate|Associate|Diploma)[^\n]*?(?:in|of)\s+([A-Za-z ]+?)(?:,|from|at)\s+([A-Za-z ,&.]+?)[,\s]*\(?(\d{4})?\)?\s*$`)

func extractEducation(text string) []resume.Education {
	var entries []resume.Education
	for _, match := range degreePattern.FindAllStringSubmatch(text, -1) {
		entries = append(entries, resume.Education{
			Degree:      strings.TrimSpace(match[1]),
			Field:       strings.TrimSpace(match[2]),
			Institution: strings.TrimSpace(match[3]),
			Year:        match[4],
		})
	}
	return entries
}

func extractCertifications(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, cert := range certificationKeywords {
		if strings.Contains(lower, strings.ToLower(cert)) {
			found = append(found, cert)
		}
	}
	return found
}

func yearsExperience(text string) int {
	lower := strings.ToLower(text)

	// An explicit "N years experience" claim wins.
	best := 0
	for _, match := range yearsPattern.FindAllStringSubmatch(lower, -1) {
		if years := atoiSafe(match[1]); years > best {
			best = years
		}
	}
	if best > 0 {
		return best
	}

	// Otherwise sum detected work-history durations.
	var total int
	for _, exp := range extractExperience(text) {
		total += exp.Years
	}
	if total > 0 {
		return total
	}

	// Last resort: time since graduation.
	if match := gradPattern.FindStringSubmatch(text); match != nil {
		if years := time.Now().Year() - atoiSafe(match[1]); years > 0 && years < 50 {
			return years
		}
	}

	return 0
}

func educationLevel(text string) int {
	lower := strings.ToLower(text)
	for _, entry := range educationLevels {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.level
			}
		}
	}
	return 0
}
