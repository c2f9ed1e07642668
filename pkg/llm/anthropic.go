package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"reviewlens/internal/model"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

// NewAnthropicClient builds a client with SDK retries turned off; upstream
// failures are reported to the caller as they happen.
func NewAnthropicClient(apiKey string, opts ...option.RequestOption) *AnthropicClient {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	client := anthropic.NewClient(opts...)
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.Model("claude-3-5-sonnet-20241022"),
		modelName: "claude-3-5-sonnet-20241022",
	}
}

func (c *AnthropicClient) Summarize(ctx context.Context, reviews []model.Review) (*SummaryResult, error) {
	if len(reviews) == 0 {
		return nil, ErrNoReviews
	}

	prompt := BuildPrompt(reviews)
	slog.Debug("sending summary request", "provider", ProviderAnthropic, "reviews", len(reviews), "prompt_chars", len(prompt))

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxSummaryTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	if err != nil {
		genErr := &GenerationError{Provider: ProviderAnthropic, Err: err}
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			genErr.StatusCode = apiErr.StatusCode
			genErr.Body = apiErr.Error()
		}
		return nil, genErr
	}

	if len(resp.Content) == 0 {
		return nil, &GenerationError{Provider: ProviderAnthropic, Err: fmt.Errorf("invalid response format: no content")}
	}

	block := resp.Content[0]
	if block.Type != "text" || block.Text == "" {
		return nil, &GenerationError{Provider: ProviderAnthropic, Err: fmt.Errorf("invalid content format: %q block", block.Type)}
	}

	return &SummaryResult{
		Text:      block.Text,
		ModelUsed: c.modelName,
	}, nil
}
