package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIClient talks to any OpenAI-compatible chat-completions server
// through the official SDK. Retries are disabled so the 25s budget holds.
type OpenAIClient struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	topP        float64
	httpClient  *http.Client
}

func NewOpenAI(baseURL, apiKey, model string, temperature, topP float64) (*OpenAIClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("openai base URL is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	return &OpenAIClient{
		baseURL:     baseURL,
		apiKey:      strings.TrimSpace(apiKey),
		model:       strings.TrimSpace(model),
		temperature: temperature,
		topP:        topP,
		httpClient:  NewHTTPClient(),
	}, nil
}

func (c *OpenAIClient) Chat(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	client := openaigo.NewClient(
		option.WithBaseURL(c.baseURL),
		option.WithAPIKey(c.apiKey),
		option.WithHTTPClient(c.httpClient),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(RequestTimeout),
	)

	params := openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(c.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.SystemMessage(systemPrompt),
			openaigo.UserMessage(userQuery),
		},
		Temperature: openaigo.Float(c.temperature),
		TopP:        openaigo.Float(c.topP),
		ResponseFormat: openaigo.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &CriticalError{Err: err}
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("llm response has no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
