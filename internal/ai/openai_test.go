package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeOpenAI replies with a canned chat completion whose content is the given
// intent JSON string.
func fakeOpenAI(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIExtractor_ExtractIntent(t *testing.T) {
	srv := fakeOpenAI(t, `{"dish": "burger", "food_style": ["cheesy", "spicy"], "budget": 200}`, http.StatusOK)
	defer srv.Close()

	e := NewOpenAIExtractorWithEndpoint("test-key", srv.URL)
	intent, err := e.ExtractIntent(context.Background(), "spicy cheesy fast food under 200")
	if err != nil {
		t.Fatalf("ExtractIntent: %v", err)
	}
	if len(intent.Dish) != 1 || intent.Dish[0] != "burger" {
		t.Errorf("dish = %v", intent.Dish)
	}
	if len(intent.FoodStyle) != 2 {
		t.Errorf("food_style = %v", intent.FoodStyle)
	}
	if intent.Budget == nil || *intent.Budget != 200 {
		t.Errorf("budget = %v", intent.Budget)
	}
}

func TestOpenAIExtractor_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid api key"}}`))
	}))
	defer srv.Close()

	e := NewOpenAIExtractorWithEndpoint("test-key", srv.URL)
	if _, err := e.ExtractIntent(context.Background(), "anything"); err == nil {
		t.Fatal("expected error from API error payload")
	}
}

func TestOpenAIExtractor_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	e := NewOpenAIExtractorWithEndpoint("test-key", srv.URL)
	if _, err := e.ExtractIntent(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestOpenAIExtractor_UnparsableContent(t *testing.T) {
	srv := fakeOpenAI(t, "sorry, I cannot help with that", http.StatusOK)
	defer srv.Close()

	e := NewOpenAIExtractorWithEndpoint("test-key", srv.URL)
	if _, err := e.ExtractIntent(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for unparsable model output")
	}
}
