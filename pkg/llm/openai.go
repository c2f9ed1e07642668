package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"reviewlens/internal/model"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(apiKey string, opts ...option.RequestOption) *OpenAIClient {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (c *OpenAIClient) Summarize(ctx context.Context, reviews []model.Review) (*SummaryResult, error) {
	if len(reviews) == 0 {
		return nil, ErrNoReviews
	}

	prompt := BuildPrompt(reviews)
	slog.Debug("sending summary request", "provider", ProviderOpenAI, "reviews", len(reviews), "prompt_chars", len(prompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     c.model,
		MaxTokens: openai.Int(maxSummaryTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})

	if err != nil {
		genErr := &GenerationError{Provider: ProviderOpenAI, Err: err}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			genErr.StatusCode = apiErr.StatusCode
			genErr.Body = apiErr.Error()
		}
		return nil, genErr
	}

	if len(resp.Choices) == 0 {
		return nil, &GenerationError{Provider: ProviderOpenAI, Err: fmt.Errorf("invalid response format: no choices")}
	}

	if resp.Choices[0].Message.Content == "" {
		return nil, &GenerationError{Provider: ProviderOpenAI, Err: fmt.Errorf("invalid content format: empty message")}
	}

	return &SummaryResult{
		Text:      resp.Choices[0].Message.Content,
		ModelUsed: c.modelName,
	}, nil
}
