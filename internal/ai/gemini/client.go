// Package gemini implements the text-generation contract on top of the
// Google GenAI API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.5-pro"

	// Quota errors carrying a retry delay longer than this are not worth
	// waiting out inside a single pipeline run.
	maxQuotaDelay = 30 * time.Second

	retryBaseDelay = 2 * time.Second
)

// Overridable in tests.
var sleep = time.Sleep

var retryAfterRe = regexp.MustCompile(`retry after (\d+) seconds?`)

type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type chatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)
}

type genaiChats struct {
	client *genai.Client
}

func (g *genaiChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	chat, err := g.client.Chats.Create(ctx, model, config, history)
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// Generator sends prompts to Gemini with a bounded retry policy for
// temporary API errors.
type Generator struct {
	chats      chatCreator
	model      string
	maxRetries int
	logger     *zap.Logger
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Generator{
		chats:      &genaiChats{client: client},
		model:      model,
		maxRetries: maxRetries,
		logger:     logger,
	}, nil
}

// GenerateContent sends the message to Gemini with the provided system
// instruction and returns the concatenated textual response. Temporary API
// errors are retried up to the configured attempt count.
func (g *Generator) GenerateContent(ctx context.Context, system, message string) (string, error) {
	if g == nil || g.chats == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("message must not be empty")
	}

	config := &genai.GenerateContentConfig{}
	if system = strings.TrimSpace(system); system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		chat, err := g.chats.Create(ctx, g.model, config, nil)
		if err != nil {
			return "", fmt.Errorf("create chat session: %w", err)
		}

		resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
		if err == nil {
			output := collectText(resp)
			if output == "" {
				return "", errors.New("gemini api returned empty response")
			}
			return output, nil
		}

		lastErr = err

		delay, retryable := retryDelay(err, attempt)
		if !retryable || attempt == g.maxRetries {
			break
		}

		g.logger.Debug("retrying gemini request",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		sleep(delay)
	}

	return "", fmt.Errorf("generate content: %w", lastErr)
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

// retryDelay classifies the error and returns how long to wait before the
// next attempt. Server-side errors back off linearly; quota errors honour the
// advertised delay unless it exceeds maxQuotaDelay.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}

	switch {
	case apiErr.Code >= 500:
		return time.Duration(attempt) * retryBaseDelay, true
	case apiErr.Code == 429:
		delay := quotaDelay(apiErr.Message)
		if delay <= 0 {
			delay = retryBaseDelay
		}
		if delay > maxQuotaDelay {
			return 0, false
		}
		return delay, true
	default:
		return 0, false
	}
}

func quotaDelay(message string) time.Duration {
	m := retryAfterRe.FindStringSubmatch(strings.ToLower(message))
	if m == nil {
		return 0
	}
	seconds, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}
