package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
	openAIModel    = "gpt-4o-mini"
)

// httpClient is shared by all OpenAI requests; the 30s timeout guards against
// stalled connections while context cancellation is still honoured via
// NewRequestWithContext.
var httpClient = &http.Client{Timeout: 30 * time.Second}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float32        `json:"temperature"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenAIExtractor implements IntentExtractor against the OpenAI chat
// completions endpoint.
type OpenAIExtractor struct {
	apiKey   string
	endpoint string
}

// NewOpenAIExtractor builds an extractor talking to api.openai.com.
func NewOpenAIExtractor(apiKey string) *OpenAIExtractor {
	return &OpenAIExtractor{apiKey: apiKey, endpoint: openAIEndpoint}
}

// NewOpenAIExtractorWithEndpoint allows pointing the extractor at a different
// base URL; used by tests.
func NewOpenAIExtractorWithEndpoint(apiKey, endpoint string) *OpenAIExtractor {
	return &OpenAIExtractor{apiKey: apiKey, endpoint: endpoint}
}

// ExtractIntent sends the extraction prompt and parses the JSON reply.
func (e *OpenAIExtractor) ExtractIntent(ctx context.Context, query string) (*Intent, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model: openAIModel,
		Messages: []chatMessage{
			{Role: "system", Content: "You extract structured food-search attributes and reply with JSON only."},
			{Role: "user", Content: buildExtractionPrompt(query)},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("openai: unmarshal response: %w", err)
	}
	if cr.Error != nil {
		return nil, fmt.Errorf("openai: api error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("openai: API returned empty choices array (raw: %s)", body)
	}

	intent, err := ParseIntentJSON(cr.Choices[0].Message.Content, query)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	return intent, nil
}
