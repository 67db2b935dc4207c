// Package candidate holds the caller-supplied applicant data. The pipeline
// treats a Profile as read-only input and never mutates it.
package candidate

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Profile is the candidate record consumed by the generation pipeline. It is
// supplied by configuration; parsing resumes into this shape is out of scope.
type Profile struct {
	Name            string   `json:"name" mapstructure:"name"`
	Email           string   `json:"email" mapstructure:"email"`
	Phone           string   `json:"phone" mapstructure:"phone"`
	LinkedIn        string   `json:"linkedin" mapstructure:"linkedin"`
	CurrentRole     string   `json:"current_role" mapstructure:"current-role"`
	YearsExperience string   `json:"years_experience" mapstructure:"years-experience"`
	Skills          []string `json:"skills" mapstructure:"skills"`
	Summary         string   `json:"summary" mapstructure:"summary"`
	NotableProjects []string `json:"notable_projects" mapstructure:"notable-projects"`
}

// Decode builds a Profile from a loosely typed configuration section.
func Decode(raw map[string]any) (*Profile, error) {
	var profile Profile

	cfg := &mapstructure.DecoderConfig{
		Result:           &profile,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("build profile decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode candidate profile: %w", err)
	}

	return &profile, nil
}

// Validate reports whether the profile carries the minimum the pipeline needs.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("candidate name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return fmt.Errorf("candidate email is required")
	}
	return nil
}

// Oneliner renders the short self-description embedded in generation prompts.
func (p *Profile) Oneliner() string {
	parts := []string{fmt.Sprintf("I am %s", p.Name)}

	if p.CurrentRole != "" {
		role := p.CurrentRole
		if p.YearsExperience != "" {
			role = fmt.Sprintf("a %s with %s of experience", role, p.YearsExperience)
		} else {
			role = "a " + role
		}
		parts = append(parts, role)
	}

	if len(p.Skills) > 0 {
		top := p.Skills
		if len(top) > 5 {
			top = top[:5]
		}
		parts = append(parts, fmt.Sprintf("specializing in %s", strings.Join(top, ", ")))
	}

	return strings.Join(parts, ", ") + "."
}

// ContactBlock renders the signature contact lines appended to drafts.
func (p *Profile) ContactBlock() string {
	lines := []string{p.Name}
	if p.Email != "" {
		lines = append(lines, "Email: "+p.Email)
	}
	if p.Phone != "" {
		lines = append(lines, "Phone: "+p.Phone)
	}
	if p.LinkedIn != "" {
		lines = append(lines, "LinkedIn: "+p.LinkedIn)
	}
	return strings.Join(lines, "\n")
}

// MatchSkills returns the candidate skills that also appear in the posting's
// skill set, preserving the candidate's own ordering.
func (p *Profile) MatchSkills(postingSkills []string) []string {
	wanted := make(map[string]bool, len(postingSkills))
	for _, skill := range postingSkills {
		wanted[strings.ToLower(strings.TrimSpace(skill))] = true
	}

	matched := []string{}
	for _, skill := range p.Skills {
		if wanted[strings.ToLower(strings.TrimSpace(skill))] {
			matched = append(matched, skill)
		}
	}
	return matched
}
