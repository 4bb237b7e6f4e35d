package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleSearchResponse = `{
	"results": [
		{
			"fsq_id": "abc123",
			"name": "Guindy Dosa Corner",
			"categories": [
				{"id": 13199, "name": "South Indian Restaurant"},
				{"id": 13065, "name": "Restaurant"}
			],
			"distance": 420,
			"geocodes": {"main": {"latitude": 12.9961, "longitude": 80.2211}},
			"location": {"address": "12 Anna Salai", "locality": "Guindy", "region": "Tamil Nadu"},
			"price": 1,
			"rating": 8.6,
			"description": "Legendary crispy dosas and filter coffee since 1982.",
			"tips": [
				{"text": "Try the ghee roast, it is outstanding."},
				{"text": ""}
			]
		},
		{
			"fsq_id": "def456",
			"name": "Burger Hub",
			"categories": [{"id": 13031, "name": "Burger Joint"}],
			"distance": 900,
			"geocodes": {"main": {"latitude": 12.99, "longitude": 80.23}},
			"location": {"locality": "Guindy"},
			"popularity": 0.82
		}
	]
}`

func TestSearchNearby(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/places/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "fsq-test-key" {
			t.Errorf("authorization = %q", got)
		}
		q := r.URL.Query()
		if q.Get("query") != "dosa" {
			t.Errorf("query param = %q", q.Get("query"))
		}
		if q.Get("ll") == "" {
			t.Error("ll param missing")
		}
		if q.Get("sort") != "DISTANCE" {
			t.Errorf("sort param = %q", q.Get("sort"))
		}
		if fields := q.Get("fields"); !strings.Contains(fields, "description") || !strings.Contains(fields, "tips") {
			t.Errorf("fields param missing review sources: %q", fields)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleSearchResponse))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("fsq-test-key", srv.URL)
	venues, err := c.SearchNearby(context.Background(), "dosa", 12.9959, 80.22, 10000, 30)
	if err != nil {
		t.Fatalf("SearchNearby: %v", err)
	}
	if len(venues) != 2 {
		t.Fatalf("got %d venues, want 2", len(venues))
	}

	v := venues[0]
	if v.PlaceID != "abc123" {
		t.Errorf("place_id = %q", v.PlaceID)
	}
	if v.Category != "South Indian Restaurant" {
		t.Errorf("category = %q", v.Category)
	}
	if v.Tags != "south indian restaurant restaurant" {
		t.Errorf("tags = %q", v.Tags)
	}
	if v.DistanceM == nil || *v.DistanceM != 420 {
		t.Errorf("distance = %v", v.DistanceM)
	}
	if v.Address != "12 Anna Salai, Guindy, Tamil Nadu" {
		t.Errorf("address = %q", v.Address)
	}
	if v.PriceTier == nil || *v.PriceTier != 1 {
		t.Errorf("price tier = %v", v.PriceTier)
	}
	if v.Popularity != 8.6 {
		t.Errorf("popularity = %v", v.Popularity)
	}
	// Description first, then non-empty tips.
	if len(v.Reviews) != 2 {
		t.Fatalf("reviews = %v, want description plus one tip", v.Reviews)
	}
	if v.Reviews[0] != "Legendary crispy dosas and filter coffee since 1982." {
		t.Errorf("reviews[0] = %q", v.Reviews[0])
	}
	if v.Reviews[1] != "Try the ghee roast, it is outstanding." {
		t.Errorf("reviews[1] = %q", v.Reviews[1])
	}

	// Second venue has no rating; popularity must be rescaled from 0-1 to 0-10.
	if venues[1].Popularity != 8.2 {
		t.Errorf("rescaled popularity = %v", venues[1].Popularity)
	}
	if venues[1].PriceTier != nil {
		t.Errorf("price tier should be absent, got %v", venues[1].PriceTier)
	}
	if venues[1].Reviews != nil {
		t.Errorf("reviews should be absent, got %v", venues[1].Reviews)
	}
}

func TestSearchNearby_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("bad-key", srv.URL)
	if _, err := c.SearchNearby(context.Background(), "dosa", 12.99, 80.22, 0, 10); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}

func TestSearchNearby_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("k", srv.URL)
	if _, err := c.SearchNearby(context.Background(), "dosa", 12.99, 80.22, 0, 10); err == nil {
		t.Fatal("expected error on malformed body")
	}
}

func TestSearchNearby_LimitClamped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("limit = %q, want 50", got)
		}
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("k", srv.URL)
	if _, err := c.SearchNearby(context.Background(), "dosa", 12.99, 80.22, 0, 500); err != nil {
		t.Fatalf("SearchNearby: %v", err)
	}
}
