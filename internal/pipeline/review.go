package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Thireb/AI-agent-email-generator/internal/ai"
	"github.com/Thireb/AI-agent-email-generator/internal/posting"
)

// Checklist item names used in deficiencies.
const (
	CheckPersonalization = "personalization"
	CheckLength          = "length"
	CheckSkillMention    = "skill_mention"
	CheckPlaceholders    = "placeholders"
	CheckTone            = "tone"
)

// Deficiency names a failed checklist item with a human-readable reason.
type Deficiency struct {
	Check  string `json:"check"`
	Reason string `json:"reason"`
}

// Verdict is the terminal result of reviewing one draft: accepted with the
// final text, or rejected with the deficiency list.
type Verdict struct {
	Accepted     bool         `json:"accepted"`
	FinalText    string       `json:"final_text,omitempty"`
	Deficiencies []Deficiency `json:"deficiencies,omitempty"`
}

const toneJudgeSystemPrompt = `You review job application emails for tone.
Answer with exactly "OK" when the tone is professional and appropriate for a
job application, otherwise answer with "ISSUE: " followed by a one-sentence reason.`

var leftoverSlotRe = regexp.MustCompile(`\{[a-z_]+\}`)

// Reviewer scores drafts against the quality checklist. The checklist is
// deterministic; the optional tone judgment delegates to the generation
// collaborator and is skipped whenever that collaborator is unavailable.
type Reviewer struct {
	judge     ai.Generator
	minWords  int
	maxWords  int
	toneCheck bool
	logger    *zap.Logger
}

// Review runs the checklist against the draft. Accept requires zero
// deficiencies; each checklist item contributes at most one.
func (r *Reviewer) Review(ctx context.Context, draft *DraftEmail, facts *posting.Facts) *Verdict {
	deficiencies := []Deficiency{}

	if d := r.checkPersonalization(draft.Text, facts); d != nil {
		deficiencies = append(deficiencies, *d)
	}
	if d := r.checkLength(draft.Text); d != nil {
		deficiencies = append(deficiencies, *d)
	}
	if d := r.checkSkillMention(draft.Text, facts); d != nil {
		deficiencies = append(deficiencies, *d)
	}
	if d := r.checkPlaceholders(draft.Text); d != nil {
		deficiencies = append(deficiencies, *d)
	}

	// The subjective judgment is only worth a collaborator round trip when
	// the deterministic checks already pass.
	if len(deficiencies) == 0 && r.toneCheck && r.judge != nil {
		if d := r.judgeTone(ctx, draft.Text); d != nil {
			deficiencies = append(deficiencies, *d)
		}
	}

	if len(deficiencies) > 0 {
		return &Verdict{Accepted: false, Deficiencies: deficiencies}
	}

	return &Verdict{Accepted: true, FinalText: draft.Text}
}

// checkPersonalization requires the company name and role title verbatim,
// except when both are unknown.
func (r *Reviewer) checkPersonalization(text string, facts *posting.Facts) *Deficiency {
	if facts.Company == posting.Unknown && facts.Title == posting.Unknown {
		return nil
	}

	missing := []string{}
	if facts.Company != posting.Unknown && !strings.Contains(text, facts.Company) {
		missing = append(missing, "company name "+facts.Company)
	}
	if facts.Title != posting.Unknown && !strings.Contains(text, facts.Title) {
		missing = append(missing, "role title "+facts.Title)
	}

	if len(missing) == 0 {
		return nil
	}

	return &Deficiency{
		Check:  CheckPersonalization,
		Reason: "draft does not mention " + strings.Join(missing, " and ") + " verbatim",
	}
}

func (r *Reviewer) checkLength(text string) *Deficiency {
	words := len(strings.Fields(text))
	if words < r.minWords {
		return &Deficiency{
			Check:  CheckLength,
			Reason: fmt.Sprintf("draft is too short: %d words, minimum is %d", words, r.minWords),
		}
	}
	if words > r.maxWords {
		return &Deficiency{
			Check:  CheckLength,
			Reason: fmt.Sprintf("draft is too long: %d words, maximum is %d", words, r.maxWords),
		}
	}
	return nil
}

// checkSkillMention requires at least one extracted skill in the draft. It is
// skipped when the posting yielded no skills at all.
func (r *Reviewer) checkSkillMention(text string, facts *posting.Facts) *Deficiency {
	skills := facts.AllSkills()
	if len(skills) == 0 {
		return nil
	}

	for _, skill := range skills {
		if posting.ContainsToken(text, skill) {
			return nil
		}
	}

	return &Deficiency{
		Check:  CheckSkillMention,
		Reason: "draft mentions none of the posting's skills: " + strings.Join(skills, ", "),
	}
}

func (r *Reviewer) checkPlaceholders(text string) *Deficiency {
	leftovers := leftoverSlotRe.FindAllString(text, -1)
	if len(leftovers) == 0 {
		return nil
	}
	return &Deficiency{
		Check:  CheckPlaceholders,
		Reason: "draft contains unfilled placeholders: " + strings.Join(leftovers, ", "),
	}
}

// judgeTone asks the collaborator for a subjective tone verdict. Any failure
// degrades to the deterministic checklist alone.
func (r *Reviewer) judgeTone(ctx context.Context, text string) *Deficiency {
	response, err := r.judge.GenerateContent(ctx, toneJudgeSystemPrompt, text)
	if err != nil {
		r.logger.Debug("tone judgment unavailable, relying on deterministic checklist", zap.Error(err))
		return nil
	}

	response = strings.TrimSpace(response)
	if strings.EqualFold(response, "OK") || strings.HasPrefix(strings.ToLower(response), "ok") {
		return nil
	}

	reason := strings.TrimSpace(strings.TrimPrefix(response, "ISSUE:"))
	if reason == "" {
		reason = "tone flagged by reviewer"
	}

	return &Deficiency{Check: CheckTone, Reason: reason}
}
