package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Intent captures the structured interpretation of a food query. Field names in
// the JSON form mirror what the extraction prompt asks the model to emit, so the
// struct round-trips into the API response's "attributes" object.
type Intent struct {
	Mood                    string   `json:"mood,omitempty"`
	Cuisine                 string   `json:"cuisine,omitempty"`
	InferredCuisineFromDish string   `json:"inferred_cuisine_from_dish,omitempty"`
	Dish                    []string `json:"dish,omitempty"`
	FoodStyle               []string `json:"food_style,omitempty"`
	AvoidFoodStyle          []string `json:"avoid_food_style,omitempty"`
	AvoidCuisine            []string `json:"avoid_cuisine,omitempty"`
	Budget                  *float64 `json:"budget,omitempty"`
	Location                string   `json:"location,omitempty"`
	MealType                string   `json:"meal_type,omitempty"`
	DietaryPreference       string   `json:"dietary_preference,omitempty"`
	GroupSize               *int     `json:"group_size,omitempty"`
	DistancePreference      string   `json:"distance_preference,omitempty"`
	CategoryHint            string   `json:"category_hint,omitempty"`
	RankingPreferences      []string `json:"ranking_preferences"`
	VegOnly                 bool     `json:"veg_only"`
	RawQuery                string   `json:"raw_query"`

	// MaxDistanceM is an explicit caller override (max_distance_km * 1000),
	// never produced by the model itself.
	MaxDistanceM *float64 `json:"max_distance_m,omitempty"`

	// Fallback flags set during ranking and consumed by the formatter.
	FallbackType string `json:"-"`
	DishFallback bool   `json:"-"`
}

// rawIntent tolerates the loose typing of model output: strings where lists are
// expected, numbers as strings, nulls everywhere.
type rawIntent struct {
	Mood                    any `json:"mood"`
	Cuisine                 any `json:"cuisine"`
	InferredCuisineFromDish any `json:"inferred_cuisine_from_dish"`
	Dish                    any `json:"dish"`
	FoodStyle               any `json:"food_style"`
	AvoidFoodStyle          any `json:"avoid_food_style"`
	AvoidCuisine            any `json:"avoid_cuisine"`
	Budget                  any `json:"budget"`
	Location                any `json:"location"`
	MealType                any `json:"meal_type"`
	DietaryPreference       any `json:"dietary_preference"`
	GroupSize               any `json:"group_size"`
	DistancePreference      any `json:"distance_preference"`
	CategoryHint            any `json:"category_hint"`
	RankingPreferences      any `json:"ranking_preferences"`
	VegOnly                 any `json:"veg_only"`
}

// ParseIntentJSON turns raw model output into a normalized Intent. It strips
// markdown fences, slices to the outermost JSON object and coerces loose types.
func ParseIntentJSON(text, query string) (*Intent, error) {
	clean := cleanJSONString(text)

	var raw rawIntent
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, fmt.Errorf("parse intent JSON: %w (raw: %s)", err, clean)
	}

	intent := &Intent{
		Mood:                    asLowerString(raw.Mood),
		Cuisine:                 asLowerString(raw.Cuisine),
		InferredCuisineFromDish: asLowerString(raw.InferredCuisineFromDish),
		Dish:                    asLowerList(raw.Dish),
		FoodStyle:               asLowerList(raw.FoodStyle),
		AvoidFoodStyle:          asLowerList(raw.AvoidFoodStyle),
		AvoidCuisine:            asLowerList(raw.AvoidCuisine),
		Budget:                  asNumber(raw.Budget),
		Location:                asLowerString(raw.Location),
		MealType:                asLowerString(raw.MealType),
		DietaryPreference:       asLowerString(raw.DietaryPreference),
		GroupSize:               asInt(raw.GroupSize),
		DistancePreference:      asLowerString(raw.DistancePreference),
		CategoryHint:            asLowerString(raw.CategoryHint),
		VegOnly:                 asBool(raw.VegOnly),
		RawQuery:                query,
	}
	intent.RankingPreferences = cleanRankingPreferences(asLowerList(raw.RankingPreferences), query)

	if DetectVegOnly(query) {
		intent.VegOnly = true
	}

	return intent, nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
// and trims to the outermost object braces.
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	input = strings.TrimSpace(input)

	start := strings.Index(input, "{")
	end := strings.LastIndex(input, "}")
	if start != -1 && end > start {
		input = input[start : end+1]
	}
	return input
}

var vegPatterns = []string{
	"veg only", "only veg", "pure veg", "pure-veg", "pure vegetarian",
	"vegetarian only", "only vegetarian", "strictly veg", "strict veg",
	"veg restaurant", "veg hotel", "veg hotels", "veg food", "vegetarian",
}

// DetectVegOnly is a lightweight veg-only detector on the raw query text.
func DetectVegOnly(query string) bool {
	q := strings.ToLower(query)
	for _, pat := range vegPatterns {
		if strings.Contains(q, pat) {
			return true
		}
	}
	return false
}

// cleanRankingPreferences keeps only known preference tokens, drops ones the
// user explicitly negated ("distance doesn't matter") and folds "rating" into
// "popularity".
func cleanRankingPreferences(prefs []string, query string) []string {
	q := strings.ToLower(query)
	negated := func(term string) bool {
		for _, phrase := range []string{
			term + " doesn’t matter",
			term + " doesn't matter",
			term + " does not matter",
			"i don’t care about " + term,
			"i don't care about " + term,
		} {
			if strings.Contains(q, phrase) {
				return true
			}
		}
		return false
	}

	cleaned := make([]string, 0, len(prefs))
	for _, p := range prefs {
		switch p {
		case "distance", "popularity":
			if !negated(p) {
				cleaned = append(cleaned, p)
			}
		case "budget":
			cleaned = append(cleaned, p)
		case "rating":
			if !negated("rating") {
				cleaned = append(cleaned, "popularity")
			}
		case "cuisine", "style":
			cleaned = append(cleaned, p)
		}
	}
	return cleaned
}

func asLowerString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(s))
}

func asLowerList(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if s == "" {
			return nil
		}
		return []string{s}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			switch iv := item.(type) {
			case string:
				out = append(out, strings.ToLower(strings.TrimSpace(iv)))
			case float64:
				out = append(out, fmt.Sprintf("%v", iv))
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return nil
}

func asNumber(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(t), "%f", &f); err == nil {
			return &f
		}
	}
	return nil
}

func asInt(v any) *int {
	if f := asNumber(v); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

func asBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
