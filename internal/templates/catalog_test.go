package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thireb/AI-agent-email-generator/internal/posting"
)

func TestCatalogCoversEveryCategory(t *testing.T) {
	catalog := NewCatalog()

	for _, category := range posting.Categories {
		tmpl := catalog.Lookup(category)
		require.NotNil(t, tmpl, "category %s has no template", category)

		assert.Equal(t, category, tmpl.Category)
		assert.NotEmpty(t, tmpl.Body)
		assert.Contains(t, tmpl.Body, "{role_title}")
		assert.Contains(t, tmpl.Body, "{company}")
		assert.Contains(t, tmpl.Body, "{candidate_name}")
	}
}

func TestCatalogUnknownCategoryFallsBackToGeneral(t *testing.T) {
	catalog := NewCatalog()

	tmpl := catalog.Lookup(posting.RoleCategory("astronaut"))
	require.NotNil(t, tmpl)
	assert.Equal(t, posting.CategoryGeneral, tmpl.Category)
}

func TestSlots(t *testing.T) {
	tmpl := NewCatalog().Lookup(posting.CategoryGeneral)

	slots := tmpl.Slots()
	assert.Equal(t, []string{
		"{role_title}",
		"{company}",
		"{relevant_skill}",
		"{custom_hook}",
		"{candidate_name}",
		"{contact_info}",
	}, slots)
}
