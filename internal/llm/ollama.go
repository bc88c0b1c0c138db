package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const ollamaChatPath = "/api/chat"

// OllamaClient speaks Ollama's native chat endpoint, which carries the
// format and options fields the OpenAI wire shape has no place for.
type OllamaClient struct {
	host        string
	model       string
	temperature float64
	topP        float64
	httpClient  *http.Client
}

func NewOllama(host, model string, temperature, topP float64) *OllamaClient {
	return &OllamaClient{
		host:        strings.TrimRight(strings.TrimSpace(host), "/"),
		model:       strings.TrimSpace(model),
		temperature: temperature,
		topP:        topP,
		httpClient:  NewHTTPClient(),
	}
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaChatResponse struct {
	Message *struct {
		Role    string  `json:"role"`
		Content *string `json:"content"`
	} `json:"message"`
}

func (c *OllamaClient) Chat(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	if c.host == "" {
		return "", fmt.Errorf("ollama host is required")
	}
	if c.model == "" {
		return "", fmt.Errorf("model is required")
	}

	reqBody := ollamaChatRequest{
		Model: c.model,
		Messages: []ollamaMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userQuery},
		},
		Stream: false,
		Format: "json",
		Options: ollamaOptions{
			Temperature: c.temperature,
			TopP:        c.topP,
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+ollamaChatPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &CriticalError{Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &CriticalError{Err: fmt.Errorf("llm status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))}
	}

	var parsed ollamaChatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse llm response: %w", err)
	}
	if parsed.Message == nil || parsed.Message.Content == nil {
		return "", fmt.Errorf("llm response has no message content")
	}
	return *parsed.Message.Content, nil
}
