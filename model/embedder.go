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

// EmbedderInterface maps text to a fixed-length vector.
type EmbedderInterface interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAIEmbedder calls an OpenAI-compatible /embeddings endpoint.
type OpenAIEmbedder struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewOpenAIEmbedder(baseURL, apiKey, model string) *OpenAIEmbedder {
	return &OpenAIEmbedder{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	const op = "embed"

	if strings.TrimSpace(text) == "" {
		return nil, types.NewProviderError(op, types.ProviderInvalidInput, fmt.Errorf("empty input"))
	}

	body, err := json.Marshal(embeddingRequest{Model: e.model, Input: text})
	if err != nil {
		return nil, types.NewProviderError(op, types.ProviderInvalidInput, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, types.NewProviderError(op, types.ProviderInvalidInput, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, types.NewProviderError(op, types.ProviderTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(op, resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.NewProviderError(op, types.ProviderTransient, err)
	}

	var out embeddingResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, types.NewProviderError(op, types.ProviderPermanent, fmt.Errorf("unmarshal response: %w", err))
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, types.NewProviderError(op, types.ProviderPermanent, fmt.Errorf("response contains no embedding"))
	}

	return out.Data[0].Embedding, nil
}

// statusError turns a non-2xx provider response into a classified error.
// Rate limits and server-side failures are worth retrying, the rest are not.
func statusError(op string, resp *http.Response) *types.ProviderError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))

	kind := types.ProviderPermanent
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		kind = types.ProviderTransient
	}
	return types.NewProviderError(op, kind, err)
}
