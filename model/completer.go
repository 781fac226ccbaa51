package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rockyxcoded/Example-PDF-vector-search/types"
)

// CompleterInterface maps a system instruction and user prompt to generated text.
type CompleterInterface interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAICompleter calls an OpenAI-compatible /chat/completions endpoint.
type OpenAICompleter struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float32
	client      *http.Client
}

func NewOpenAICompleter(baseURL, apiKey, model string, maxTokens int, temperature float32) *OpenAICompleter {
	return &OpenAICompleter{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		// LLM responses can take a while
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	const op = "complete"

	if strings.TrimSpace(user) == "" {
		return "", types.NewProviderError(op, types.ProviderInvalidInput, fmt.Errorf("empty prompt"))
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", types.NewProviderError(op, types.ProviderInvalidInput, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", types.NewProviderError(op, types.ProviderInvalidInput, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", types.NewProviderError(op, types.ProviderTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(op, resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", types.NewProviderError(op, types.ProviderTransient, err)
	}

	var out chatResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", types.NewProviderError(op, types.ProviderPermanent, fmt.Errorf("unmarshal response: %w", err))
	}
	if len(out.Choices) == 0 {
		return "", types.NewProviderError(op, types.ProviderPermanent, fmt.Errorf("response contains no choices"))
	}

	return out.Choices[0].Message.Content, nil
}
