package recommend

import (
	"strings"
	"testing"

	"foodfinder/internal/ai"
	"foodfinder/internal/places"
)

func TestReviewMatchScore(t *testing.T) {
	intent := &ai.Intent{Dish: []string{"dosa"}, FoodStyle: []string{"crispy"}}

	matching := reviewMatchScore("crispy dosa", intent, "best crispy dosa in town, loved the sambar")
	unrelated := reviewMatchScore("crispy dosa", intent, "great burgers and shakes")

	if matching <= unrelated {
		t.Errorf("matching reviews should score higher: %v vs %v", matching, unrelated)
	}
	if matching < 0.3 || matching > 1 {
		t.Errorf("score out of range: %v", matching)
	}
	if unrelated < 0.3 {
		t.Errorf("floor of 0.3 violated: %v", unrelated)
	}
}

func TestReviewMatchScore_NoReviews(t *testing.T) {
	if got := reviewMatchScore("anything", &ai.Intent{}, ""); got != 0.5 {
		t.Errorf("empty reviews should be neutral, got %v", got)
	}
}

func TestShortReviewSummary(t *testing.T) {
	got := shortReviewSummary("Amazing dosa. The chutney was also great and the place was clean.")
	if got != "Amazing dosa." {
		t.Errorf("summary = %q", got)
	}

	long := strings.Repeat("x", 300)
	got = shortReviewSummary(long)
	if len(got) != 143 || !strings.HasSuffix(got, "...") {
		t.Errorf("long text should be cropped with ellipsis, got %d chars", len(got))
	}
}

func TestReRankWithReviews_NoReviewsIsNoop(t *testing.T) {
	ranked := []*scoredVenue{
		{Venue: places.Venue{PlaceID: "a"}, Score: 0.9},
		{Venue: places.Venue{PlaceID: "b"}, Score: 0.8},
	}
	out := reRankWithReviews("dosa", &ai.Intent{}, ranked)
	if out[0].PlaceID != "a" || out[1].PlaceID != "b" {
		t.Error("order changed without any reviews")
	}
	if out[0].ScoreWithReviews != 0.9 || out[1].ScoreWithReviews != 0.8 {
		t.Error("base scores not carried over")
	}
}

func TestReRankWithReviews_BoostReorders(t *testing.T) {
	intent := &ai.Intent{Dish: []string{"dosa"}}
	ranked := []*scoredVenue{
		{
			Venue: places.Venue{PlaceID: "top", Reviews: []string{"average burgers, nothing special"}},
			Score: 0.70,
		},
		{
			Venue: places.Venue{PlaceID: "second", Reviews: []string{"fantastic crispy dosa, authentic sambar"}},
			Score: 0.68,
		},
	}

	out := reRankWithReviews("crispy dosa", intent, ranked)
	if out[0].PlaceID != "second" {
		t.Errorf("review boost should promote the dosa place, got %q first", out[0].PlaceID)
	}
	if !strings.Contains(out[0].Reason, "Reviews highlight:") {
		t.Errorf("reason missing review highlight: %q", out[0].Reason)
	}
}

func TestReRankWithReviews_Empty(t *testing.T) {
	if out := reRankWithReviews("q", &ai.Intent{}, nil); len(out) != 0 {
		t.Errorf("expected empty output, got %d", len(out))
	}
}
