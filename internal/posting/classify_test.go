package posting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyByCategory(t *testing.T) {
	cases := []struct {
		name  string
		facts *Facts
		want  RoleCategory
	}{
		{
			name: "software engineer by title and skills",
			facts: &Facts{
				Title:          "Senior Software Engineer",
				RequiredSkills: []string{"Go", "Docker", "AWS"},
			},
			want: CategorySoftwareEngineer,
		},
		{
			name: "data scientist by title phrase",
			facts: &Facts{
				Title:          "Data Scientist",
				RequiredSkills: []string{"Pandas", "Machine Learning"},
			},
			want: CategoryDataScientist,
		},
		{
			name: "product manager",
			facts: &Facts{
				Title:          "Product Manager",
				RequiredSkills: []string{"Roadmap", "Agile"},
			},
			want: CategoryProductManager,
		},
		{
			name: "designer",
			facts: &Facts{
				Title:          Unknown,
				RequiredSkills: []string{"Figma", "Wireframing", "UX"},
			},
			want: CategoryDesigner,
		},
		{
			name: "marketing",
			facts: &Facts{
				Title:          Unknown,
				RequiredSkills: []string{"SEO", "Branding", "Email Marketing"},
			},
			want: CategoryMarketing,
		},
		{
			name: "sales",
			facts: &Facts{
				Title:           Unknown,
				RequiredSkills:  []string{"Salesforce", "Negotiation"},
				PreferredSkills: []string{"Cold Outreach"},
			},
			want: CategorySales,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.facts))
		})
	}
}

func TestClassifyZeroOverlapIsGeneral(t *testing.T) {
	facts := &Facts{
		Title:          "Chief Happiness Officer",
		RequiredSkills: []string{"Basket Weaving"},
	}

	assert.Equal(t, CategoryGeneral, Classify(facts))
}

func TestClassifyNoTermsIsGeneral(t *testing.T) {
	assert.Equal(t, CategoryGeneral, Classify(&Facts{Title: Unknown}))
}

// A tied score resolves to the earlier entry in the Categories order.
func TestClassifyTieBreaksByPriority(t *testing.T) {
	facts := &Facts{
		Title:          Unknown,
		RequiredSkills: []string{"Python", "Pandas"},
	}

	assert.Equal(t, CategorySoftwareEngineer, Classify(facts))
}

func TestClassifyIsDeterministic(t *testing.T) {
	facts := Extract(seniorEngineerPosting)

	first := Classify(facts)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(facts))
	}
}
