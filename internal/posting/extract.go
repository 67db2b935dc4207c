package posting

import (
	"regexp"
	"strings"
)

// Unknown marks a fact the extractor could not recover from the text.
const Unknown = "unknown"

// Facts is the structured signal set extracted from one posting. Every field
// is always populated: string fields degrade to Unknown, skill slices to
// empty slices. Extraction is heuristic and never fails.
type Facts struct {
	Company         string   `json:"company"`
	Title           string   `json:"title"`
	Seniority       string   `json:"seniority"`
	EmploymentType  string   `json:"employment_type"`
	Location        string   `json:"location"`
	SalaryHint      string   `json:"salary_hint"`
	Industry        string   `json:"industry"`
	CultureHint     string   `json:"culture_hint"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
}

// AllSkills returns required skills followed by preferred ones.
func (f *Facts) AllSkills() []string {
	all := make([]string, 0, len(f.RequiredSkills)+len(f.PreferredSkills))
	all = append(all, f.RequiredSkills...)
	all = append(all, f.PreferredSkills...)
	return all
}

var (
	titleLabelRe = regexp.MustCompile(`(?i)(?:position|role|job title|vacancy)\s*:\s*([^\n]+)`)
	titleLineRe  = regexp.MustCompile(`([A-Z][A-Za-z+#./&-]*(?:\s+[A-Z][A-Za-z+#./&-]*)*\s+(?:Engineer|Developer|Scientist|Manager|Designer|Analyst|Architect|Specialist|Consultant|Coordinator|Representative|Lead))\b`)

	companyLabelRe  = regexp.MustCompile(`(?i)(?:company|organization|employer)\s*:\s*([^\n]+)`)
	companyJoinRe   = regexp.MustCompile(`(?:at|with|join)\s+([A-Z][A-Za-z0-9&.' -]*?(?:Inc|Corp|Corporation|LLC|Ltd|GmbH|Company|Technologies|Labs|Solutions|Systems)\.?)`)
	companySuffixRe = regexp.MustCompile(`\b([A-Z][A-Za-z0-9&.' -]*?(?:Inc|Corp|Corporation|LLC|Ltd|GmbH|Technologies|Labs|Solutions|Systems)\.?)(?:\s|$)`)

	locationLabelRe = regexp.MustCompile(`(?i)location\s*:\s*([^\n]+)`)
	locationBasedRe = regexp.MustCompile(`(?i)based in\s+([A-Z][A-Za-z ,.]+)`)

	salaryFigureRe = regexp.MustCompile(`[$€£]\s?\d[\d,.]*\s?[kK]?(?:\s?[-–]\s?[$€£]?\s?\d[\d,.]*\s?[kK]?)?`)

	preferredHeaderRe = regexp.MustCompile(`(?i)\b(preferred|nice to have|nice-to-have|bonus|a plus|desirable|good to have)\b`)
	requiredHeaderRe  = regexp.MustCompile(`(?i)\b(requirements|qualifications|must have|must-have|what you.ll need|responsibilities)\b`)
)

// skillDictionary is the closed keyword set used for skill extraction. Order
// is fixed so repeated extraction yields identical slices.
var skillDictionary = []string{
	"Go", "Python", "JavaScript", "TypeScript", "Java", "C++", "C#", "Ruby", "Rust", "PHP", "Swift", "Kotlin",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "Spring",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform", "Linux", "Git", "CI/CD",
	"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Kafka",
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Pandas", "NumPy", "Spark", "Statistics", "Data Analysis",
	"Agile", "Scrum", "Roadmap", "Product Strategy", "Stakeholder Management", "A/B Testing",
	"Figma", "Sketch", "Adobe", "UX", "UI", "Wireframing", "Prototyping",
	"SEO", "SEM", "Content Marketing", "Google Analytics", "Social Media", "Email Marketing", "Branding",
	"CRM", "Salesforce", "Lead Generation", "Negotiation", "Account Management", "Cold Outreach",
	"Communication", "Leadership", "Problem Solving",
}

var industryHints = []struct{ keyword, industry string }{
	{"machine learning", "machine learning"},
	{"artificial intelligence", "artificial intelligence"},
	{"fintech", "financial services"},
	{"finance", "financial services"},
	{"healthcare", "healthcare"},
	{"e-commerce", "e-commerce"},
	{"ecommerce", "e-commerce"},
	{"education", "education"},
	{"data", "data"},
	{"software", "technology"},
	{"tech", "technology"},
}

var cultureHints = []struct{ keyword, hint string }{
	{"fast-paced", "fast-paced startup environment"},
	{"startup", "fast-paced startup environment"},
	{"innovative", "innovative and creative culture"},
	{"collaborative", "collaborative team environment"},
	{"remote-first", "remote-first culture"},
	{"flexible", "flexible work environment"},
	{"growth", "growth-oriented company"},
	{"learning", "learning-focused organization"},
}

// Extract parses raw posting text into a Facts value. It is total and
// idempotent: the same input always yields the same facts and no field is
// ever absent.
func Extract(text string) *Facts {
	facts := &Facts{
		Company:         Unknown,
		Title:           Unknown,
		Seniority:       Unknown,
		EmploymentType:  Unknown,
		Location:        Unknown,
		SalaryHint:      Unknown,
		Industry:        Unknown,
		CultureHint:     Unknown,
		RequiredSkills:  []string{},
		PreferredSkills: []string{},
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return facts
	}

	if title := extractTitle(text); title != "" {
		facts.Title = title
	}
	if company := extractCompany(text); company != "" {
		facts.Company = company
	}
	if seniority := extractSeniority(text); seniority != "" {
		facts.Seniority = seniority
	}
	if employment := extractEmploymentType(text); employment != "" {
		facts.EmploymentType = employment
	}
	if location := extractLocation(text); location != "" {
		facts.Location = location
	}
	if salary := extractSalaryHint(text); salary != "" {
		facts.SalaryHint = salary
	}

	lower := strings.ToLower(text)
	for _, hint := range industryHints {
		if strings.Contains(lower, hint.keyword) {
			facts.Industry = hint.industry
			break
		}
	}
	for _, hint := range cultureHints {
		if strings.Contains(lower, hint.keyword) {
			facts.CultureHint = hint.hint
			break
		}
	}

	facts.RequiredSkills, facts.PreferredSkills = extractSkills(text)

	return facts
}

func extractTitle(text string) string {
	if m := titleLabelRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := titleLineRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func extractCompany(text string) string {
	if m := companyLabelRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := companyJoinRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := companySuffixRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func extractSeniority(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "senior", "staff", "principal", "lead ", "architect"):
		return "senior"
	case containsAny(lower, "junior", "entry level", "entry-level", "graduate", "intern"):
		return "junior"
	case containsAny(lower, "mid-level", "intermediate", "3+ years", "4+ years", "5+ years"):
		return "mid"
	}
	return ""
}

func extractEmploymentType(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "full-time", "full time"):
		return "full_time"
	case containsAny(lower, "part-time", "part time"):
		return "part_time"
	case containsAny(lower, "internship", "intern position"):
		return "internship"
	case containsAny(lower, "contract", "freelance", "contractor"):
		return "contract"
	}
	return ""
}

func extractLocation(text string) string {
	if m := locationLabelRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := locationBasedRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "hybrid"):
		return "hybrid"
	case strings.Contains(lower, "remote"):
		return "remote"
	}
	return ""
}

func extractSalaryHint(text string) string {
	if m := salaryFigureRe.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "competitive salary", "competitive compensation", "market rate"):
		return "competitive"
	case containsAny(lower, "equity", "stock options"):
		return "equity included"
	}
	return ""
}

// extractSkills walks the posting line by line, tracking whether the current
// section is a requirements or a preferred/nice-to-have block. Skills found
// outside any preferred block count as required; a skill listed in both
// places counts as required only.
func extractSkills(text string) (required, preferred []string) {
	required = []string{}
	preferred = []string{}

	requiredSet := map[string]bool{}
	preferredSet := map[string]bool{}

	section := "required"
	for _, line := range strings.Split(text, "\n") {
		if preferredHeaderRe.MatchString(line) {
			section = "preferred"
		} else if requiredHeaderRe.MatchString(line) {
			section = "required"
		}

		for _, skill := range skillDictionary {
			if !containsSkill(line, skill) {
				continue
			}
			if section == "preferred" {
				preferredSet[skill] = true
			} else {
				requiredSet[skill] = true
			}
		}
	}

	for _, skill := range skillDictionary {
		switch {
		case requiredSet[skill]:
			required = append(required, skill)
		case preferredSet[skill]:
			preferred = append(preferred, skill)
		}
	}

	return required, preferred
}

func containsSkill(line, skill string) bool {
	return ContainsToken(line, skill)
}

// ContainsToken reports whether the token occurs in the text as a standalone
// word, case-insensitively. Plain word boundaries do not work for names like
// "C++" or "Node.js", so neighbours are checked by hand.
func ContainsToken(text, token string) bool {
	lower := strings.ToLower(text)
	needle := strings.ToLower(token)

	for start := 0; ; {
		idx := strings.Index(lower[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start

		before := idx - 1
		after := idx + len(needle)
		beforeOK := before < 0 || !isWordByte(lower[before])
		afterOK := after >= len(lower) || !isWordByte(lower[after])
		if beforeOK && afterOK {
			return true
		}

		start = idx + 1
		if start >= len(lower) {
			return false
		}
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
