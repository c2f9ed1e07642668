package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"reviewlens/internal/model"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"

	maxSummaryTokens = 1000
)

var ErrNoReviews = errors.New("no reviews to summarize")

type SummaryResult struct {
	Text      string
	ModelUsed string
}

type ReviewSummarizer interface {
	Summarize(ctx context.Context, reviews []model.Review) (*SummaryResult, error)
}

// GenerationError is returned when the upstream service fails or answers with
// something other than generated text.
type GenerationError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.StatusCode != 0 {
		msg := fmt.Sprintf("failed to generate summary: %d", e.StatusCode)
		if text := http.StatusText(e.StatusCode); text != "" {
			msg += " " + text
		}
		return msg
	}
	return fmt.Sprintf("failed to generate summary: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Details renders the upstream status and body for diagnostics.
func (e *GenerationError) Details() string {
	details := fmt.Sprintf("provider=%s", e.Provider)
	if e.StatusCode != 0 {
		details += fmt.Sprintf(" status=%d", e.StatusCode)
	}
	if e.Body != "" {
		details += fmt.Sprintf(" body=%s", e.Body)
	}
	if e.Err != nil {
		details += fmt.Sprintf(" cause=%v", e.Err)
	}
	return details
}

func NewClient(provider, apiKey string) (ReviewSummarizer, error) {
	switch provider {
	case ProviderAnthropic, "":
		return NewAnthropicClient(apiKey), nil
	case ProviderOpenAI:
		return NewOpenAIClient(apiKey), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
