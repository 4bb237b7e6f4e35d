package recommend

import (
	"regexp"
	"strings"

	"foodfinder/internal/ai"
)

const (
	// topKForReviews bounds how many leading candidates get review scoring.
	topKForReviews = 15
	// reviewBlendWeight is the share of the final score taken from reviews.
	reviewBlendWeight = 0.25
	reviewSummaryLen  = 140
)

var stopwords = map[string]struct{}{
	"i": {}, "me": {}, "my": {}, "we": {}, "you": {}, "he": {}, "she": {}, "they": {},
	"want": {}, "need": {}, "some": {}, "something": {}, "food": {}, "place": {}, "restaurant": {},
	"near": {}, "nearby": {}, "around": {}, "very": {}, "really": {}, "just": {},
	"give": {}, "get": {}, "for": {}, "to": {}, "a": {}, "an": {}, "the": {}, "in": {}, "at": {}, "of": {},
	"on": {}, "with": {}, "and": {}, "or": {}, "but": {}, "too": {}, "also": {}, "like": {},
}

var tokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

func tokenize(text string) []string {
	var out []string
	for _, t := range tokenSplit.Split(strings.ToLower(text), -1) {
		if t == "" {
			continue
		}
		if _, stop := stopwords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// buildQueryTerms collects distinctive terms from the query and the intent.
func buildQueryTerms(query string, intent *ai.Intent) map[string]struct{} {
	terms := map[string]struct{}{}
	add := func(text string) {
		for _, t := range tokenize(text) {
			terms[t] = struct{}{}
		}
	}

	add(query)
	add(intent.Cuisine)
	add(intent.InferredCuisineFromDish)
	add(intent.Mood)
	add(intent.CategoryHint)
	for _, d := range intent.Dish {
		add(d)
	}
	for _, s := range intent.FoodStyle {
		add(s)
	}
	return terms
}

// reviewMatchScore measures term overlap between the query and review text,
// mapped onto [0.3, 1.0] so reviews can never fully kill a venue.
func reviewMatchScore(query string, intent *ai.Intent, reviewsText string) float64 {
	if reviewsText == "" {
		return 0.5
	}
	queryTerms := buildQueryTerms(query, intent)
	if len(queryTerms) == 0 {
		return 0.5
	}
	reviewTokens := map[string]struct{}{}
	for _, t := range tokenize(reviewsText) {
		reviewTokens[t] = struct{}{}
	}
	if len(reviewTokens) == 0 {
		return 0.5
	}

	common := 0
	for t := range queryTerms {
		if _, ok := reviewTokens[t]; ok {
			common++
		}
	}
	overlap := float64(common) / float64(len(queryTerms))
	return 0.3 + 0.7*clamp(overlap, 0, 1)
}

// shortReviewSummary takes the first sentence, or a hard crop.
func shortReviewSummary(reviewsText string) string {
	text := strings.TrimSpace(reviewsText)
	if text == "" {
		return ""
	}
	for _, sep := range []string{". ", "!", "? "} {
		if idx := strings.Index(text, sep); idx > 0 && idx < reviewSummaryLen {
			return strings.TrimSpace(text[:idx+1])
		}
	}
	if len(text) > reviewSummaryLen {
		return strings.TrimRight(text[:reviewSummaryLen], " ") + "..."
	}
	return text
}

// reRankWithReviews blends a review-overlap score into the top candidates and
// attaches a review highlight to their reasons. Venues without review text
// keep their base score; the list is a no-op when nothing has reviews.
func reRankWithReviews(query string, intent *ai.Intent, ranked []*scoredVenue) []*scoredVenue {
	if len(ranked) == 0 {
		return ranked
	}

	hasAny := false
	for _, v := range ranked {
		if strings.TrimSpace(strings.Join(v.Reviews, " ")) != "" {
			hasAny = true
			break
		}
	}
	if !hasAny {
		for _, v := range ranked {
			v.ScoreWithReviews = v.Score
		}
		return ranked
	}

	boosted := map[string]bool{}
	for i, v := range ranked {
		if i >= topKForReviews {
			break
		}
		reviewsText := strings.TrimSpace(strings.Join(v.Reviews, " "))
		if reviewsText == "" {
			continue
		}
		r := reviewMatchScore(query, intent, reviewsText)
		v.ScoreWithReviews = (1-reviewBlendWeight)*v.Score + reviewBlendWeight*r
		boosted[v.PlaceID] = true

		if summary := shortReviewSummary(reviewsText); summary != "" {
			if v.Reason != "" {
				v.Reason = v.Reason + ". Reviews highlight: " + summary
			} else {
				v.Reason = "Reviews highlight: " + summary
			}
		}
	}

	for _, v := range ranked {
		if !boosted[v.PlaceID] {
			v.ScoreWithReviews = v.Score
		}
	}

	sorted := make([]*scoredVenue, len(ranked))
	copy(sorted, ranked)
	for i := 1; i < len(sorted); i++ {
		key := sorted[i]
		j := i - 1
		for j >= 0 && sorted[j].ScoreWithReviews < key.ScoreWithReviews {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = key
	}
	return sorted
}
