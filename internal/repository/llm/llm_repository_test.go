package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) LLMConfig {
	return LLMConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "test-model",
	}
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, NewLLMRepository(testConfig("http://localhost")).IsConfigured())
	assert.False(t, NewLLMRepository(LLMConfig{APIKey: "k", Model: "m"}).IsConfigured())
	assert.False(t, NewLLMRepository(LLMConfig{BaseURL: "u", Model: "m"}).IsConfigured())
	assert.False(t, NewLLMRepository(LLMConfig{BaseURL: "u", APIKey: "k"}).IsConfigured())
}

func TestGenerateText(t *testing.T) {
	var gotRequest chatCompletionRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "[{\"product_id\": 1}]"}}]}`))
	}))
	defer srv.Close()

	repo := NewLLMRepository(testConfig(srv.URL))

	content, err := repo.GenerateText(context.Background(), "system says", "user asks", 0.7, 1000)
	require.NoError(t, err)
	assert.Equal(t, `[{"product_id": 1}]`, content)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotRequest.Model)
	assert.InDelta(t, 0.7, gotRequest.Temperature, 0.001)
	assert.Equal(t, 1000, gotRequest.MaxTokens)
	require.Len(t, gotRequest.Messages, 2)
	assert.Equal(t, "system", gotRequest.Messages[0].Role)
	assert.Equal(t, "system says", gotRequest.Messages[0].Content)
	assert.Equal(t, "user", gotRequest.Messages[1].Role)
}

func TestGenerateTextBasicAuth(t *testing.T) {
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.BasicAuthUsername = "gateway"
	cfg.BasicAuthPassword = "secret"
	repo := NewLLMRepository(cfg)

	_, err := repo.GenerateText(context.Background(), "s", "u", 0.7, 100)
	require.NoError(t, err)
	assert.Contains(t, gotAuth, "Basic ")
}

func TestGenerateTextUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	repo := NewLLMRepository(testConfig(srv.URL))

	_, err := repo.GenerateText(context.Background(), "s", "u", 0.7, 100)
	assert.Error(t, err)
}

func TestGenerateTextNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	repo := NewLLMRepository(testConfig(srv.URL))

	_, err := repo.GenerateText(context.Background(), "s", "u", 0.7, 100)
	assert.Error(t, err)
}

func TestGenerateTextUnconfigured(t *testing.T) {
	repo := NewLLMRepository(LLMConfig{})

	_, err := repo.GenerateText(context.Background(), "s", "u", 0.7, 100)
	assert.Error(t, err)
}

func TestGenerateTextHonorsContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	repo := NewLLMRepository(testConfig(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GenerateText(ctx, "s", "u", 0.7, 100)
	assert.Error(t, err)
}
