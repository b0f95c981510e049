package advisory

import (
	"context"
	"errors"

	"github.com/miriamsimone/upwind/internal/provider"
	"github.com/miriamsimone/upwind/pkg/logger"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Completer is the generative text collaborator contract
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// OpenAIClient implements Completer against the OpenAI chat
// completions API
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
	configured  bool
	logger      *logger.Logger
}

// NewOpenAIClient creates an OpenAI-backed completer
func NewOpenAIClient(apiKey, model string, temperature float64, maxTokens int, log *logger.Logger) *OpenAIClient {
	if apiKey == "" {
		log.Warn("OpenAI API key is empty - advisory suggestions will not work")
	}

	return &OpenAIClient{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		configured:  apiKey != "",
		logger:      log.Named("openai-client"),
	}
}

// Complete sends the prompts to the chat completions API and returns
// the raw reply text
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	// Fail fast if no key is configured - never retried
	if !c.configured {
		return "", &provider.ConfigError{Setting: "OpenAI API key"}
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(c.temperature),
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.maxTokens))
	}

	c.logger.Debug("Requesting advisory completion",
		logger.String("model", c.model),
		logger.Int("user_prompt_chars", len(userPrompt)),
	)

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", provider.NewError("openai", err)
	}
	if len(completion.Choices) == 0 {
		return "", provider.NewError("openai", errors.New("completion contained no choices"))
	}

	return completion.Choices[0].Message.Content, nil
}
