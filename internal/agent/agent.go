package agent

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/benjihealth/sanctuary/internal/models"
)

const (
	DefaultModel = "claude-sonnet-4-20250514"

	checkInMaxTokens    = 1000
	insightsMaxTokens   = 1500
	suggestionMaxTokens = 200

	// weeklyInsightsMinimum check-ins must exist before the weekly digest
	// is worth generating.
	weeklyInsightsMinimum = 3
)

var (
	ErrMissingAPIKey     = errors.New("anthropic api key not set")
	ErrNotEnoughCheckIns = errors.New("not enough check-ins for weekly insights")
)

// User-facing messages for the error states the agent surfaces directly.
const (
	MissingAPIKeyMessage     = "Please set your API key in Settings first."
	NotEnoughCheckInsMessage = "Not enough data yet. Complete at least 3 check-ins to see weekly insights."
)

// completer is the one SDK call the agent makes, extracted so tests can
// substitute the network.
type completer func(ctx context.Context, apiKey, model, prompt string, maxTokens int64) (string, error)

// Agent generates wellness responses with the Anthropic messages API. The
// key is read per call so a key saved in settings takes effect immediately.
type Agent struct {
	keyFn    func() string
	model    string
	complete completer
}

func New(keyFn func() string, model string) *Agent {
	if model == "" {
		model = DefaultModel
	}
	return &Agent{keyFn: keyFn, model: model, complete: completeMessage}
}

func completeMessage(ctx context.Context, apiKey, model, prompt string, maxTokens int64) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var parts []string
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			parts = append(parts, variant.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func (agent *Agent) run(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	apiKey := agent.keyFn()
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}
	return agent.complete(ctx, apiKey, agent.model, prompt, maxTokens)
}

// CheckInResponse reacts to a just-submitted check-in, with the recent
// weekly aggregates as context when available.
func (agent *Agent) CheckInResponse(ctx context.Context, checkIn models.CheckIn, stats *models.CheckInStats) (string, error) {
	return agent.run(ctx, buildCheckInPrompt(checkIn, stats), checkInMaxTokens)
}

// WeeklyInsights digests the past week of check-ins.
func (agent *Agent) WeeklyInsights(ctx context.Context, recent []models.CheckIn) (string, error) {
	if len(recent) < weeklyInsightsMinimum {
		return "", ErrNotEnoughCheckIns
	}
	return agent.run(ctx, buildInsightsPrompt(recent), insightsMaxTokens)
}

// Suggestion produces one short actionable suggestion for the given
// situation description.
func (agent *Agent) Suggestion(ctx context.Context, situation string) (string, error) {
	return agent.run(ctx, buildSuggestionPrompt(situation), suggestionMaxTokens)
}
