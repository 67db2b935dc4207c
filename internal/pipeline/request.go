package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Thireb/AI-agent-email-generator/internal/ai"
	"github.com/Thireb/AI-agent-email-generator/internal/candidate"
	"github.com/Thireb/AI-agent-email-generator/internal/logger"
	"github.com/Thireb/AI-agent-email-generator/internal/posting"
	"github.com/Thireb/AI-agent-email-generator/internal/templates"
)

// ErrGenerationUnavailable marks a failure of the external text-generation
// collaborator. It is fatal to the current run and is never retried by the
// draft stage itself.
var ErrGenerationUnavailable = errors.New("generation unavailable")

const writerSystemPrompt = `You are a professional email writer helping a job candidate apply for a position.
You always write from the candidate's perspective, someone applying FOR a job.
You use the real company name, the real job title and the real requirements you are given.
You never leave placeholder text such as [Company Name] or {company} in the output.
Output only the email text, starting with the subject line.`

// GenerationRequest is the structured request sent to the generation
// collaborator. It is kept on the resulting draft for traceability.
type GenerationRequest struct {
	System      string       `json:"-"`
	Instruction string       `json:"instruction"`
	Tone        string       `json:"tone,omitempty"`
	MinWords    int          `json:"min_words"`
	MaxWords    int          `json:"max_words"`
	Feedback    []Deficiency `json:"feedback,omitempty"`
}

// DraftEmail is one generated email plus the request that produced it.
type DraftEmail struct {
	Text    string             `json:"text"`
	Request *GenerationRequest `json:"request"`
}

// Drafter builds generation requests from facts, profile and template, and
// captures the collaborator's response. It owns request construction only;
// the prose comes from the Generator.
type Drafter struct {
	generator ai.Generator
	tone      string
	minWords  int
	maxWords  int
	maxLogLen int
	logger    *zap.Logger
}

// BuildRequest fills the template slots with facts and profile values and, on
// a retry, appends the accumulated reviewer feedback as corrective
// instructions.
func (d *Drafter) BuildRequest(facts *posting.Facts, profile *candidate.Profile, tmpl *templates.EmailTemplate, feedback []Deficiency) *GenerationRequest {
	skeleton := fillSlots(tmpl.Body, facts, profile)

	var b strings.Builder
	b.WriteString("Write a complete job application email from the candidate's perspective.\n\n")

	b.WriteString("Job facts:\n")
	b.WriteString("- Company: " + factOr(facts.Company, "not stated") + "\n")
	b.WriteString("- Role title: " + factOr(facts.Title, "not stated") + "\n")
	b.WriteString("- Seniority: " + factOr(facts.Seniority, "not stated") + "\n")
	b.WriteString("- Required skills: " + listOr(facts.RequiredSkills, "none listed") + "\n")
	b.WriteString("- Preferred skills: " + listOr(facts.PreferredSkills, "none listed") + "\n")
	if facts.Industry != posting.Unknown {
		b.WriteString("- Industry: " + facts.Industry + "\n")
	}
	if facts.CultureHint != posting.Unknown {
		b.WriteString("- Company culture: " + facts.CultureHint + "\n")
	}

	b.WriteString("\nCandidate:\n" + profile.Oneliner() + "\n")
	for _, project := range profile.NotableProjects {
		b.WriteString("- " + project + "\n")
	}

	b.WriteString("\nUse this skeleton as the basis, keeping its structure and personalization:\n\n")
	b.WriteString(skeleton)

	b.WriteString("\n\nConstraints:\n")
	b.WriteString(fmt.Sprintf("- The email body must be between %d and %d words.\n", d.minWords, d.maxWords))
	b.WriteString("- Tone: " + d.tone + ".\n")
	if facts.Company != posting.Unknown {
		b.WriteString(fmt.Sprintf("- Mention the company name %q exactly as written.\n", facts.Company))
	}
	if facts.Title != posting.Unknown {
		b.WriteString(fmt.Sprintf("- Mention the role title %q exactly as written.\n", facts.Title))
	}
	if len(facts.AllSkills()) > 0 {
		b.WriteString("- Reference at least one of the required or preferred skills.\n")
	}
	b.WriteString("- Do not leave any {placeholder} slots unfilled.\n")

	if len(feedback) > 0 {
		b.WriteString("\nA previous draft was rejected. Correct these issues:\n")
		for _, deficiency := range feedback {
			b.WriteString(fmt.Sprintf("- %s: %s\n", deficiency.Check, deficiency.Reason))
		}
	}

	return &GenerationRequest{
		System:      writerSystemPrompt,
		Instruction: b.String(),
		Tone:        d.tone,
		MinWords:    d.minWords,
		MaxWords:    d.maxWords,
		Feedback:    feedback,
	}
}

// Draft sends the request to the generation collaborator. An unreachable
// collaborator or an empty response surfaces as ErrGenerationUnavailable;
// retrying is the controller's decision, not the drafter's.
func (d *Drafter) Draft(ctx context.Context, req *GenerationRequest) (*DraftEmail, error) {
	d.logger.Debug("generation request",
		zap.Int("instruction_length", utf8.RuneCountInString(req.Instruction)),
		zap.Int("feedback_items", len(req.Feedback)),
		zap.String("instruction_preview", logger.TruncateForLog(req.Instruction, d.maxLogLen)),
	)

	text, err := d.generator.GenerateContent(ctx, req.System, req.Instruction)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationUnavailable, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty output", ErrGenerationUnavailable)
	}

	d.logger.Debug("generation response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
		zap.String("response_preview", logger.TruncateForLog(text, d.maxLogLen)),
	)

	return &DraftEmail{Text: text, Request: req}, nil
}

// fillSlots substitutes the declared template slots. Unknown facts degrade to
// neutral phrasing so the skeleton never carries the Unknown marker.
func fillSlots(body string, facts *posting.Facts, profile *candidate.Profile) string {
	relevantSkill := pickRelevantSkill(facts, profile)

	values := map[string]string{
		"{company}":        factOr(facts.Company, "your company"),
		"{role_title}":     factOr(facts.Title, "advertised position"),
		"{relevant_skill}": relevantSkill,
		"{custom_hook}":    buildHook(facts, profile),
		"{candidate_name}": profile.Name,
		"{contact_info}":   profile.ContactBlock(),
	}

	for slot, value := range values {
		body = strings.ReplaceAll(body, slot, value)
	}

	return strings.TrimSpace(body)
}

// pickRelevantSkill prefers a skill the posting asks for and the candidate
// actually has, then the posting's first requirement, then the candidate's
// own leading skill.
func pickRelevantSkill(facts *posting.Facts, profile *candidate.Profile) string {
	if matched := profile.MatchSkills(facts.AllSkills()); len(matched) > 0 {
		return matched[0]
	}
	if skills := facts.AllSkills(); len(skills) > 0 {
		return skills[0]
	}
	if len(profile.Skills) > 0 {
		return profile.Skills[0]
	}
	return "my field"
}

// buildHook writes the personalized talking-point paragraph for the
// {custom_hook} slot.
func buildHook(facts *posting.Facts, profile *candidate.Profile) string {
	sentences := []string{}

	if matched := profile.MatchSkills(facts.AllSkills()); len(matched) > 0 {
		top := matched
		if len(top) > 3 {
			top = top[:3]
		}
		sentences = append(sentences, fmt.Sprintf(
			"I have strong experience in %s, which directly aligns with your requirements.",
			strings.Join(top, ", ")))
	}

	if facts.Company != posting.Unknown {
		industry := factOr(facts.Industry, "your")
		if industry != "your" {
			industry = "the " + industry
		}
		sentences = append(sentences, fmt.Sprintf(
			"I have been following %s's work in %s space and am impressed by your approach.",
			facts.Company, industry))
	}

	if facts.CultureHint != posting.Unknown {
		sentences = append(sentences, fmt.Sprintf(
			"The %s you describe is exactly the environment where I do my best work.",
			facts.CultureHint))
	}

	if len(sentences) == 0 {
		sentences = append(sentences,
			"I am confident my background and motivation would make me a strong addition to your team.")
	}

	return strings.Join(sentences, " ")
}

func factOr(value, fallback string) string {
	if value == posting.Unknown || strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func listOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
