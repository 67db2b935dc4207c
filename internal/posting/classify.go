package posting

import "strings"

// RoleCategory is the coarse bucket used to pick an email template.
type RoleCategory string

const (
	CategorySoftwareEngineer RoleCategory = "software_engineer"
	CategoryDataScientist    RoleCategory = "data_scientist"
	CategoryProductManager   RoleCategory = "product_manager"
	CategoryDesigner         RoleCategory = "designer"
	CategoryMarketing        RoleCategory = "marketing"
	CategorySales            RoleCategory = "sales"
	CategoryGeneral          RoleCategory = "general"
)

// Categories lists every role category, most specific first. The order is
// also the tie-break priority for classification and must stay fixed.
var Categories = []RoleCategory{
	CategorySoftwareEngineer,
	CategoryDataScientist,
	CategoryProductManager,
	CategoryDesigner,
	CategoryMarketing,
	CategorySales,
	CategoryGeneral,
}

var categoryKeywords = map[RoleCategory][]string{
	CategorySoftwareEngineer: {
		"software", "engineer", "developer", "backend", "frontend", "full stack", "full-stack",
		"go", "python", "javascript", "typescript", "java", "c++", "c#", "ruby", "rust",
		"react", "node.js", "aws", "docker", "kubernetes", "ci/cd", "linux", "git", "api",
	},
	CategoryDataScientist: {
		"data scientist", "data science", "machine learning", "deep learning", "statistics",
		"tensorflow", "pytorch", "pandas", "numpy", "spark", "data analysis", "analytics", "model",
	},
	CategoryProductManager: {
		"product manager", "product owner", "roadmap", "product strategy", "stakeholder management",
		"backlog", "a/b testing", "agile", "scrum", "discovery",
	},
	CategoryDesigner: {
		"designer", "design", "ux", "ui", "figma", "sketch", "adobe", "wireframing", "prototyping",
		"user research", "visual",
	},
	CategoryMarketing: {
		"marketing", "seo", "sem", "content marketing", "google analytics", "social media",
		"email marketing", "branding", "campaign", "growth marketing",
	},
	CategorySales: {
		"sales", "crm", "salesforce", "lead generation", "negotiation", "account management",
		"quota", "pipeline", "cold outreach", "business development",
	},
}

// Classify maps extracted facts to a role category. Each non-general category
// is scored by keyword overlap with the posting's skills and title words; the
// highest score wins with ties broken by the fixed Categories order. A best
// score of zero always yields CategoryGeneral.
func Classify(facts *Facts) RoleCategory {
	terms := classificationTerms(facts)
	if len(terms) == 0 {
		return CategoryGeneral
	}

	best := CategoryGeneral
	bestScore := 0

	for _, category := range Categories {
		if category == CategoryGeneral {
			continue
		}

		score := 0
		for _, keyword := range categoryKeywords[category] {
			if terms[keyword] {
				score++
			}
		}

		// Strictly greater keeps the earlier (higher priority) category on ties.
		if score > bestScore {
			best = category
			bestScore = score
		}
	}

	return best
}

// classificationTerms collects the lowercase term set compared against the
// category keyword lists: every skill, every title word, and every two-word
// title phrase (so "product manager" and "data scientist" can match).
func classificationTerms(facts *Facts) map[string]bool {
	terms := map[string]bool{}

	for _, skill := range facts.AllSkills() {
		terms[strings.ToLower(skill)] = true
	}

	if facts.Title != Unknown {
		words := strings.Fields(strings.ToLower(facts.Title))
		for i, word := range words {
			terms[strings.Trim(word, ",.:;()")] = true
			if i+1 < len(words) {
				terms[strings.Trim(word+" "+words[i+1], ",.:;()")] = true
			}
		}
	}

	return terms
}
