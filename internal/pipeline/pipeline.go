// Package pipeline drives the research, draft and review stages that turn a
// job posting and a candidate profile into an outreach email.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Thireb/AI-agent-email-generator/internal/ai"
	"github.com/Thireb/AI-agent-email-generator/internal/candidate"
	"github.com/Thireb/AI-agent-email-generator/internal/posting"
	"github.com/Thireb/AI-agent-email-generator/internal/templates"
)

// Status is the terminal state of a pipeline run.
type Status string

const (
	// StatusSuccess means a draft passed review.
	StatusSuccess Status = "success"
	// StatusExhaustedRetries means no draft passed within the attempt
	// budget; the outcome still carries the last draft as best effort.
	StatusExhaustedRetries Status = "exhausted_retries"
	// StatusFailed means the generation collaborator was unavailable.
	StatusFailed Status = "failed"
)

const (
	defaultMaxAttempts = 3
	defaultMinWords    = 80
	defaultMaxWords    = 400
	defaultTone        = "professional yet enthusiastic"
	defaultMaxLogLen   = 200
)

// Config carries the tunable bounds of a pipeline. Zero values fall back to
// the defaults above; nothing here is read from ambient state.
type Config struct {
	MaxAttempts  int    `mapstructure:"max-attempts"`
	MinWords     int    `mapstructure:"min-words"`
	MaxWords     int    `mapstructure:"max-words"`
	Tone         string `mapstructure:"tone"`
	ToneCheck    bool   `mapstructure:"tone-check"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

func (c *Config) withDefaults() *Config {
	cfg := Config{}
	if c != nil {
		cfg = *c
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.MinWords < 1 {
		cfg.MinWords = defaultMinWords
	}
	if cfg.MaxWords <= cfg.MinWords {
		cfg.MaxWords = defaultMaxWords
	}
	if cfg.Tone == "" {
		cfg.Tone = defaultTone
	}
	if cfg.MaxLogLength <= 0 {
		cfg.MaxLogLength = defaultMaxLogLen
	}
	return &cfg
}

// Attempt is one draft plus its review verdict, in execution order. Err is
// set instead of a draft when the generation collaborator failed.
type Attempt struct {
	Request *GenerationRequest `json:"request"`
	Draft   *DraftEmail        `json:"draft,omitempty"`
	Verdict *Verdict           `json:"verdict,omitempty"`
	Err     string             `json:"error,omitempty"`
}

// Outcome is the terminal result the caller consumes.
type Outcome struct {
	Status Status `json:"status"`
	Email  string `json:"email,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Run is one unit of work: one posting, one profile, the ordered attempt
// history and a terminal outcome. It is created per invocation and discarded
// once the caller has consumed the outcome.
type Run struct {
	ID       string               `json:"id"`
	Posting  posting.RawPosting   `json:"posting"`
	Facts    *posting.Facts       `json:"facts"`
	Category posting.RoleCategory `json:"category"`
	Attempts []*Attempt           `json:"attempts"`
	Outcome  *Outcome             `json:"outcome"`
}

// DumpToTmpFile serializes the attempt history to a temp file for debugging.
func (r *Run) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "pipeline_run_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Pipeline executes the extract → classify → draft → review state machine
// with bounded retries. One Pipeline may serve concurrent runs; all per-run
// state lives in the Run value.
type Pipeline struct {
	config   *Config
	drafter  *Drafter
	reviewer *Reviewer
	catalog  *templates.Catalog
	logger   *zap.Logger
}

// New builds a pipeline around the given generation collaborator and
// template catalog.
func New(cfg *Config, generator ai.Generator, catalog *templates.Catalog, log *zap.Logger) *Pipeline {
	cfg = cfg.withDefaults()

	return &Pipeline{
		config: cfg,
		drafter: &Drafter{
			generator: generator,
			tone:      cfg.Tone,
			minWords:  cfg.MinWords,
			maxWords:  cfg.MaxWords,
			maxLogLen: cfg.MaxLogLength,
			logger:    log,
		},
		reviewer: &Reviewer{
			judge:     generator,
			minWords:  cfg.MinWords,
			maxWords:  cfg.MaxWords,
			toneCheck: cfg.ToneCheck,
			logger:    log,
		},
		catalog: catalog,
		logger:  log,
	}
}

// Execute runs the full state machine for one posting. It always returns a
// run with a terminal outcome: success, exhausted retries carrying the last
// draft, or failure when the collaborator was unavailable.
func (p *Pipeline) Execute(ctx context.Context, raw posting.RawPosting, profile *candidate.Profile) *Run {
	run := &Run{
		ID:       uuid.NewString(),
		Posting:  raw,
		Attempts: []*Attempt{},
	}

	log := p.logger.With(zap.String("run_id", run.ID))

	run.Facts = posting.Extract(raw.Text)
	run.Category = posting.Classify(run.Facts)

	log.Info("posting analyzed",
		zap.String("company", run.Facts.Company),
		zap.String("title", run.Facts.Title),
		zap.String("category", string(run.Category)),
		zap.Strings("required_skills", run.Facts.RequiredSkills),
		zap.Strings("preferred_skills", run.Facts.PreferredSkills),
	)

	tmpl := p.catalog.Lookup(run.Category)

	var feedback []Deficiency
	var lastDraft *DraftEmail

	for attempt := 1; attempt <= p.config.MaxAttempts; attempt++ {
		req := p.drafter.BuildRequest(run.Facts, profile, tmpl, feedback)

		draft, err := p.drafter.Draft(ctx, req)
		if err != nil {
			run.Attempts = append(run.Attempts, &Attempt{Request: req, Err: err.Error()})

			// Collaborator failures are fatal to the run and do not
			// count against the retry budget.
			if errors.Is(err, ErrGenerationUnavailable) {
				log.Error("generation collaborator unavailable", zap.Int("attempt", attempt), zap.Error(err))
				run.Outcome = &Outcome{Status: StatusFailed, Reason: err.Error()}
				return run
			}

			log.Error("draft stage failed", zap.Int("attempt", attempt), zap.Error(err))
			run.Outcome = &Outcome{Status: StatusFailed, Reason: err.Error()}
			return run
		}

		lastDraft = draft

		verdict := p.reviewer.Review(ctx, draft, run.Facts)
		run.Attempts = append(run.Attempts, &Attempt{Request: req, Draft: draft, Verdict: verdict})

		if verdict.Accepted {
			log.Info("draft accepted", zap.Int("attempt", attempt))
			run.Outcome = &Outcome{Status: StatusSuccess, Email: verdict.FinalText}
			return run
		}

		log.Info("draft rejected",
			zap.Int("attempt", attempt),
			zap.Int("deficiencies", len(verdict.Deficiencies)),
		)
		for _, deficiency := range verdict.Deficiencies {
			log.Debug("deficiency",
				zap.Int("attempt", attempt),
				zap.String("check", deficiency.Check),
				zap.String("reason", deficiency.Reason),
			)
		}

		feedback = append(feedback, verdict.Deficiencies...)
	}

	log.Warn("attempt budget exhausted, returning best-effort draft",
		zap.Int("max_attempts", p.config.MaxAttempts),
	)

	run.Outcome = &Outcome{
		Status: StatusExhaustedRetries,
		Email:  lastDraft.Text,
		Reason: "no draft passed review within the attempt budget",
	}
	return run
}
