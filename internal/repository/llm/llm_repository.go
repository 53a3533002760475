package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pobyzaarif/goshortcute"
)

// requestTimeout bounds a single chat-completions call. A timed-out call is a
// failure, not a retry.
const requestTimeout = 30 * time.Second

type LLMConfig struct {
	BaseURL           string
	APIKey            string
	Model             string
	BasicAuthUsername string
	BasicAuthPassword string
}

type LLMRepository struct {
	llmConfig LLMConfig
	client    *http.Client
}

func NewLLMRepository(cfg LLMConfig) *LLMRepository {
	return &LLMRepository{
		llmConfig: cfg,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

// IsConfigured reports whether endpoint, credential and model name are all set.
func (r *LLMRepository) IsConfigured() bool {
	return r.llmConfig.BaseURL != "" && r.llmConfig.APIKey != "" && r.llmConfig.Model != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateText sends one chat-completion request and returns the raw assistant
// message content.
func (r *LLMRepository) GenerateText(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error) {
	if !r.IsConfigured() {
		return "", fmt.Errorf("llm repository not configured")
	}

	url := r.llmConfig.BaseURL + "/chat/completions"

	payload := chatCompletionRequest{
		Model: r.llmConfig.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadByte))
	if err != nil {
		return "", err
	}

	req.Header.Add("Content-Type", "application/json")
	if r.llmConfig.BasicAuthUsername != "" {
		// some gateways front the completion API with basic auth instead
		buildBasicAuth := goshortcute.StringtoBase64Encode(r.llmConfig.BasicAuthUsername + ":" + r.llmConfig.BasicAuthPassword)
		req.Header.Add("Authorization", "Basic "+buildBasicAuth)
	} else {
		req.Header.Add("Authorization", "Bearer "+r.llmConfig.APIKey)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("llm service returned negative response %v", res.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to decode llm response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("llm response contained no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
