package posting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seniorEngineerPosting = `Senior Software Engineer
Company: TechCorp Inc.
Location: San Francisco, CA
Full-time, $150k - $180k

We are a fast-paced software startup.

Requirements:
- 5+ years with Python
- AWS and Docker experience

Nice to have:
- Kubernetes
`

func TestExtractStructuredPosting(t *testing.T) {
	facts := Extract(seniorEngineerPosting)

	assert.Equal(t, "Senior Software Engineer", facts.Title)
	assert.Equal(t, "TechCorp Inc.", facts.Company)
	assert.Equal(t, "senior", facts.Seniority)
	assert.Equal(t, "full_time", facts.EmploymentType)
	assert.Equal(t, "San Francisco, CA", facts.Location)
	assert.Equal(t, "$150k - $180k", facts.SalaryHint)
	assert.Equal(t, "technology", facts.Industry)
	assert.Equal(t, "fast-paced startup environment", facts.CultureHint)
	assert.Equal(t, []string{"Python", "AWS", "Docker"}, facts.RequiredSkills)
	assert.Equal(t, []string{"Kubernetes"}, facts.PreferredSkills)
}

func TestExtractDegenerateInput(t *testing.T) {
	for _, text := range []string{"", "   \n  ", "lorem ipsum dolor sit amet"} {
		facts := Extract(text)
		require.NotNil(t, facts)

		assert.Equal(t, Unknown, facts.Company)
		assert.Equal(t, Unknown, facts.Title)
		assert.Equal(t, Unknown, facts.Seniority)
		assert.Equal(t, Unknown, facts.EmploymentType)
		assert.Equal(t, Unknown, facts.Location)
		assert.Equal(t, Unknown, facts.SalaryHint)
		assert.Equal(t, Unknown, facts.Industry)
		assert.Equal(t, Unknown, facts.CultureHint)
		assert.Empty(t, facts.RequiredSkills)
		assert.Empty(t, facts.PreferredSkills)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	first := Extract(seniorEngineerPosting)
	second := Extract(seniorEngineerPosting)

	assert.Equal(t, first, second)
}

func TestExtractCompanyFromProse(t *testing.T) {
	facts := Extract("This is a chance to work at CloudNine Technologies on hard problems.")

	assert.Equal(t, "CloudNine Technologies", facts.Company)
}

func TestExtractTitleFromLabel(t *testing.T) {
	facts := Extract("Position: Head of Growth\nWe move fast.")

	assert.Equal(t, "Head of Growth", facts.Title)
}

func TestExtractSkillListedInBothSectionsCountsAsRequired(t *testing.T) {
	facts := Extract(`Requirements:
- Python

Nice to have:
- Python
- Spark
`)

	assert.Equal(t, []string{"Python"}, facts.RequiredSkills)
	assert.Equal(t, []string{"Spark"}, facts.PreferredSkills)
}

func TestExtractRemoteAndContractSignals(t *testing.T) {
	facts := Extract("Contract role, fully remote. Competitive salary.")

	assert.Equal(t, "contract", facts.EmploymentType)
	assert.Equal(t, "remote", facts.Location)
	assert.Equal(t, "competitive", facts.SalaryHint)
}

func TestAllSkillsKeepsRequiredFirst(t *testing.T) {
	facts := &Facts{
		RequiredSkills:  []string{"Go", "Docker"},
		PreferredSkills: []string{"Kafka"},
	}

	assert.Equal(t, []string{"Go", "Docker", "Kafka"}, facts.AllSkills())
}

func TestContainsToken(t *testing.T) {
	assert.True(t, ContainsToken("We use C++ and Java daily", "C++"))
	assert.True(t, ContainsToken("experience with node.js services", "Node.js"))
	assert.True(t, ContainsToken("Go, Python", "Go"))
	assert.False(t, ContainsToken("Good knowledge of Gopher habits", "Go"))
	assert.False(t, ContainsToken("Django only", "Go"))
	assert.False(t, ContainsToken("", "Go"))
}
