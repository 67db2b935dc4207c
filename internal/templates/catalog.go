// Package templates holds the parameterized email skeletons, one per role
// category plus a generic fallback.
package templates

import (
	"regexp"

	_ "embed"

	"github.com/Thireb/AI-agent-email-generator/internal/posting"
)

//go:embed skeletons/software_engineer.md
var softwareEngineerSkeleton string

//go:embed skeletons/data_scientist.md
var dataScientistSkeleton string

//go:embed skeletons/product_manager.md
var productManagerSkeleton string

//go:embed skeletons/designer.md
var designerSkeleton string

//go:embed skeletons/marketing.md
var marketingSkeleton string

//go:embed skeletons/sales.md
var salesSkeleton string

//go:embed skeletons/general.md
var generalSkeleton string

// EmailTemplate is a named skeleton with {slot} placeholders, belonging to
// exactly one role category.
type EmailTemplate struct {
	Name     string
	Category posting.RoleCategory
	Body     string
}

var slotRe = regexp.MustCompile(`\{[a-z_]+\}`)

// Slots returns the placeholder slots declared in the template body, in order
// of first appearance.
func (t *EmailTemplate) Slots() []string {
	seen := map[string]bool{}
	slots := []string{}
	for _, slot := range slotRe.FindAllString(t.Body, -1) {
		if !seen[slot] {
			seen[slot] = true
			slots = append(slots, slot)
		}
	}
	return slots
}

// Catalog maps role categories to their email skeletons.
type Catalog struct {
	entries map[posting.RoleCategory]*EmailTemplate
}

// NewCatalog builds the catalog from the embedded skeletons. Every role
// category has exactly one entry.
func NewCatalog() *Catalog {
	entries := map[posting.RoleCategory]*EmailTemplate{
		posting.CategorySoftwareEngineer: {Name: "software-engineer", Category: posting.CategorySoftwareEngineer, Body: softwareEngineerSkeleton},
		posting.CategoryDataScientist:    {Name: "data-scientist", Category: posting.CategoryDataScientist, Body: dataScientistSkeleton},
		posting.CategoryProductManager:   {Name: "product-manager", Category: posting.CategoryProductManager, Body: productManagerSkeleton},
		posting.CategoryDesigner:         {Name: "designer", Category: posting.CategoryDesigner, Body: designerSkeleton},
		posting.CategoryMarketing:        {Name: "marketing", Category: posting.CategoryMarketing, Body: marketingSkeleton},
		posting.CategorySales:            {Name: "sales", Category: posting.CategorySales, Body: salesSkeleton},
		posting.CategoryGeneral:          {Name: "general", Category: posting.CategoryGeneral, Body: generalSkeleton},
	}

	return &Catalog{entries: entries}
}

// Lookup returns the template for the given category. It never fails: an
// unknown or uncovered category falls back to the general template.
func (c *Catalog) Lookup(category posting.RoleCategory) *EmailTemplate {
	if tmpl, ok := c.entries[category]; ok {
		return tmpl
	}
	return c.entries[posting.CategoryGeneral]
}
