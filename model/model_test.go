package model

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockyxcoded/Example-PDF-vector-search/types"
)

func TestEmbed_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, "hello", req.Input)

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{0.1, 0.2, 0.3}}},
		})
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(srv.URL, "test-key", "test-model")
	vec, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbed_BlankInputRejectedBeforeRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(srv.URL, "k", "m")
	_, err := e.Embed(context.Background(), "   ")
	require.Error(t, err)
	assert.False(t, called)

	var pe *types.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, types.ProviderInvalidInput, pe.Kind)
}

func TestEmbed_StatusClassification(t *testing.T) {
	cases := []struct {
		status int
		kind   types.ProviderErrorKind
	}{
		{http.StatusTooManyRequests, types.ProviderTransient},
		{http.StatusInternalServerError, types.ProviderTransient},
		{http.StatusBadGateway, types.ProviderTransient},
		{http.StatusUnauthorized, types.ProviderPermanent},
		{http.StatusBadRequest, types.ProviderPermanent},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		e := NewOpenAIEmbedder(srv.URL, "k", "m")
		_, err := e.Embed(context.Background(), "hello")
		require.Error(t, err)

		var pe *types.ProviderError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, tc.kind, pe.Kind, "status %d", tc.status)
		assert.Equal(t, tc.kind == types.ProviderTransient, types.IsRetryable(err))
		srv.Close()
	}
}

func TestEmbed_ConnectionFailureIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	e := NewOpenAIEmbedder(srv.URL, "k", "m")
	_, err := e.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, types.IsRetryable(err))
}

func TestComplete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, 256, req.MaxTokens)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "the answer"}},
			},
		})
	}))
	defer srv.Close()

	c := NewOpenAICompleter(srv.URL, "k", "chat-model", 256, 0.1)
	out, err := c.Complete(context.Background(), "be helpful", "what is up?")
	require.NoError(t, err)
	assert.Equal(t, "the answer", out)
}

func TestComplete_NoChoicesIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := NewOpenAICompleter(srv.URL, "k", "m", 10, 0)
	_, err := c.Complete(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.False(t, types.IsRetryable(err))
}
