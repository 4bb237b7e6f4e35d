package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

// GeminiExtractor implements IntentExtractor using Google's Gemini models.
type GeminiExtractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiExtractor initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiExtractor(ctx context.Context, apiKey string) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(geminiModel)

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Low temperature keeps the extraction deterministic.
	model.SetTemperature(0.2)

	return &GeminiExtractor{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (e *GeminiExtractor) Close() {
	e.client.Close()
}

// ExtractIntent analyzes the user's food query and extracts structured attributes.
func (e *GeminiExtractor) ExtractIntent(ctx context.Context, query string) (*Intent, error) {
	resp, err := e.model.GenerateContent(ctx, genai.Text(buildExtractionPrompt(query)))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	intent, err := ParseIntentJSON(responseText.String(), query)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return intent, nil
}
