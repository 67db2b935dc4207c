package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Thireb/AI-agent-email-generator/internal/ai"
	"github.com/Thireb/AI-agent-email-generator/internal/ai/gemini"
	"github.com/Thireb/AI-agent-email-generator/internal/candidate"
	"github.com/Thireb/AI-agent-email-generator/internal/logger"
	"github.com/Thireb/AI-agent-email-generator/internal/pipeline"
	"github.com/Thireb/AI-agent-email-generator/internal/posting"
	"github.com/Thireb/AI-agent-email-generator/internal/secrets"
	"github.com/Thireb/AI-agent-email-generator/internal/templates"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptUseBestEffort = "Use the best-effort draft"
	PromptDumpAttempts  = "Dump attempt history to file"
	PromptDiscard       = "Discard"
)

var errExit = errors.New("exit requested")

var bestEffortPrompt = promptui.Select{
	Label: "No draft passed review. What now?",
	Items: []string{PromptUseBestEffort, PromptDumpAttempts, PromptDiscard},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the jd-mailer main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("posting-file", "p", "", "file with the job posting text, overrides the config")
	runCmd.Flags().BoolP("auto-approve", "y", false, "accept a best-effort draft without confirmation")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jd-mailer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if len(config.Candidate) == 0 {
		logger.Fatal("candidate profile is required under the candidate section")
	}

	profile, err := candidate.Decode(config.Candidate)
	if err != nil {
		logger.Fatal("decoding candidate profile", zap.Error(err))
	}
	if err := profile.Validate(); err != nil {
		logger.Fatal("validating candidate profile", zap.Error(err))
	}

	raw, err := resolvePosting(cmd, config)
	if err != nil {
		logger.Fatal("loading the job posting",
			zap.Error(err),
			zap.String("hint", "set posting.file or posting.text in the configuration file, or pass --posting-file"),
		)
	}

	logger.Info("loaded job posting",
		zap.String("source", raw.Source),
		zap.Int("length", len(raw.Text)),
	)

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building the generator", zap.Error(err))
	}

	p := pipeline.New(config.Pipeline, generator, templates.NewCatalog(), logger)

	result := p.Execute(ctx, raw, profile)

	if err := handleOutcome(cmd, logger, result); err != nil {
		if errors.Is(err, errExit) {
			return
		}
		logger.Fatal("exiting", zap.Error(err))
	}
}

func handleOutcome(cmd *cobra.Command, logger *zap.Logger, result *pipeline.Run) error {
	switch result.Outcome.Status {
	case pipeline.StatusSuccess:
		logger.Info("email accepted by review",
			zap.Int("attempts", len(result.Attempts)),
			zap.String("category", string(result.Category)),
		)
		printEmail(result.Outcome.Email)
		return nil

	case pipeline.StatusExhaustedRetries:
		logger.Warn("review budget exhausted",
			zap.Int("attempts", len(result.Attempts)),
			zap.String("reason", result.Outcome.Reason),
		)

		if strings.EqualFold(cmd.Flag("auto-approve").Value.String(), "true") {
			printEmail(result.Outcome.Email)
			return nil
		}

		for {
			_, action, err := bestEffortPrompt.Run()
			if err != nil {
				return err
			}

			switch action {
			case PromptUseBestEffort:
				printEmail(result.Outcome.Email)
				return nil
			case PromptDumpAttempts:
				filename, err := result.DumpToTmpFile()
				if err != nil {
					return fmt.Errorf("dump attempts to file: %w", err)
				}
				logger.Info("dumped attempt history", zap.String("filename", filename))
			case PromptDiscard:
				logger.Info("exiting", zap.String("reason", "best-effort draft discarded"))
				return errExit
			default:
				return fmt.Errorf("invalid action: %s", action)
			}
		}

	case pipeline.StatusFailed:
		return fmt.Errorf("pipeline failed: %s", result.Outcome.Reason)

	default:
		return fmt.Errorf("unexpected outcome status: %s", result.Outcome.Status)
	}
}

func printEmail(email string) {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println(email)
	fmt.Println(strings.Repeat("=", 50))
}

// resolvePosting picks the posting text source: the flag wins over the config
// file path, which wins over inline config text.
func resolvePosting(cmd *cobra.Command, config *Config) (posting.RawPosting, error) {
	path := ""
	if cmd != nil {
		if flag := cmd.Flag("posting-file"); flag != nil {
			path = strings.TrimSpace(flag.Value.String())
		}
	}

	if path == "" && config.Posting != nil {
		path = strings.TrimSpace(config.Posting.File)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return posting.RawPosting{}, fmt.Errorf("reading posting file %q: %w", path, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return posting.RawPosting{}, fmt.Errorf("posting file %q is empty", path)
		}
		return posting.RawPosting{Text: string(data), Source: path}, nil
	}

	if config.Posting != nil && strings.TrimSpace(config.Posting.Text) != "" {
		return posting.RawPosting{Text: config.Posting.Text, Source: "config"}, nil
	}

	return posting.RawPosting{}, errors.New("job posting is not configured")
}

func newGenerator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Generator, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required under the ai section")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := logger.WithCommonFields(log, "gemini", cfg.Gemini.Model)

	return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
}
