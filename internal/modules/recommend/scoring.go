package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"foodfinder/internal/ai"
	"foodfinder/internal/places"
)

// weights control how much each factor contributes to a venue's score.
type weights struct {
	cuisine    float64
	style      float64
	popularity float64
	distance   float64
	budget     float64
}

var baseWeights = weights{
	cuisine:    0.35,
	style:      0.15,
	popularity: 0.20,
	distance:   0.15,
	budget:     0.10,
}

// dishHints maps dishes to the cuisine/category they imply.
var dishHints = map[string]struct{ cuisine, category string }{
	"dosa":           {cuisine: "south indian"},
	"idli":           {cuisine: "south indian"},
	"vada":           {cuisine: "south indian"},
	"pongal":         {cuisine: "south indian"},
	"biryani":        {cuisine: "indian"},
	"naan":           {cuisine: "north indian"},
	"butter naan":    {cuisine: "north indian"},
	"butter chicken": {cuisine: "north indian"},
	"fried rice":     {cuisine: "chinese"},
	"manchurian":     {cuisine: "chinese"},
	"noodles":        {cuisine: "chinese"},
	"pizza":          {cuisine: "italian"},
	"pasta":          {cuisine: "italian"},
	"burger":         {category: "fast food"},
	"ice cream":      {category: "dessert"},
	"brownie":        {category: "dessert"},
	"litti":          {cuisine: "bihari"},
	"litti chokha":   {cuisine: "bihari"},
	"dal bati":       {cuisine: "rajasthani"},
	"misal pav":      {cuisine: "maharashtrian"},
}

// cuisineFamilies groups regional labels into coarse families.
var cuisineFamilies = map[string][]string{
	"south indian":   {"south indian", "andhra", "telangana", "tamil", "kerala", "karnataka", "udupi", "chettinad"},
	"north indian":   {"north indian", "punjabi", "mughlai", "awadhi", "bihari"},
	"east indian":    {"bengali", "odia", "oriya", "assamese"},
	"west indian":    {"rajasthani", "gujarati", "maharashtrian", "goan"},
	"coastal":        {"mangalorean", "konkan", "seafood"},
	"generic_indian": {"indian"},
}

var stateFamily = map[string]string{
	"andhra": "south indian", "telangana": "south indian", "tamil nadu": "south indian",
	"kerala": "south indian", "karnataka": "south indian",
	"punjab": "north indian", "uttar pradesh": "north indian", "bihar": "north indian",
	"delhi": "north indian", "haryana": "north indian",
	"rajasthan": "west indian", "gujarat": "west indian", "maharashtra": "west indian", "goa": "west indian",
	"west bengal": "east indian", "odisha": "east indian", "orissa": "east indian", "assam": "east indian",
}

// styleHints map taste adjectives to cuisines/categories they usually imply.
var styleHints = map[string]struct{ cuisines, categories []string }{
	"soft":    {cuisines: []string{"south indian"}},
	"light":   {cuisines: []string{"south indian", "healthy"}},
	"comfort": {cuisines: []string{"south indian", "indian"}},
	"crunchy": {categories: []string{"fast food"}},
	"crispy":  {categories: []string{"fast food", "chinese"}},
	"cheesy":  {cuisines: []string{"italian"}, categories: []string{"fast food"}},
	"spicy":   {cuisines: []string{"andhra", "chettinad", "indo-chinese", "north indian"}},
	"sweet":   {categories: []string{"dessert", "bakery"}},
	"healthy": {categories: []string{"salad", "healthy food"}},
}

// priceTierAmount maps Foursquare's 1-4 price tiers onto approximate
// per-person amounts so user budgets in currency keep working.
func priceTierAmount(tier int) float64 {
	switch tier {
	case 1:
		return 150
	case 2:
		return 400
	case 3:
		return 800
	default:
		return 1500
	}
}

// adjustWeights rebalances scoring weights from the extracted preferences.
func adjustWeights(intent *ai.Intent) weights {
	w := baseWeights

	if prefs := intent.RankingPreferences; len(prefs) > 0 {
		// Near-zero baseline so unrequested factors almost vanish.
		w = weights{cuisine: 0.02, style: 0.02, popularity: 0.02, distance: 0.02, budget: 0.02}

		if len(prefs) == 1 {
			switch prefs[0] {
			case "budget":
				w.budget = 0.9
			case "distance":
				w.distance = 0.9
			case "popularity":
				w.popularity = 0.9
			case "cuisine":
				w.cuisine = 0.9
			case "style":
				w.style = 0.9
			}
		} else {
			for _, p := range prefs {
				switch p {
				case "budget":
					w.budget += 0.4
				case "distance":
					w.distance += 0.4
				case "popularity":
					w.popularity += 0.4
				case "cuisine":
					w.cuisine += 0.4
				case "style":
					w.style += 0.4
				}
			}
		}

		total := w.cuisine + w.style + w.popularity + w.distance + w.budget
		if total == 0 {
			total = 1
		}
		w.cuisine /= total
		w.style /= total
		w.popularity /= total
		w.distance /= total
		w.budget /= total
		return w
	}

	if dp := intent.DistancePreference; strings.Contains(dp, "near") || strings.Contains(dp, "nearby") {
		return weights{cuisine: 0.10, style: 0.05, popularity: 0.15, distance: 0.60, budget: 0.10}
	}

	q := strings.ToLower(intent.RawQuery)
	if strings.Contains(q, "popular") || strings.Contains(q, "high rating") || strings.Contains(q, "top rated") {
		return weights{cuisine: 0.15, style: 0.05, popularity: 0.50, distance: 0.20, budget: 0.10}
	}

	if intent.Budget != nil {
		return weights{cuisine: 0.15, style: 0.05, popularity: 0.10, distance: 0.20, budget: 0.50}
	}

	if intent.Cuisine != "" || intent.InferredCuisineFromDish != "" {
		return weights{cuisine: 0.50, style: 0.10, popularity: 0.15, distance: 0.20, budget: 0.05}
	}

	if len(intent.FoodStyle) > 0 {
		return weights{cuisine: 0.25, style: 0.40, popularity: 0.10, distance: 0.15, budget: 0.10}
	}

	return w
}

// normalizePopularity maps a 0-5 or 0-10 rating onto [0,1].
func normalizePopularity(raw float64) float64 {
	if raw <= 0 {
		return 0
	}
	if raw <= 5 {
		return math.Min(raw/5, 1)
	}
	return math.Min(raw/10, 1)
}

// distanceScore decays exponentially with distance; 0m -> 1.0, ~5km -> ~0.
func distanceScore(distM *float64) float64 {
	if distM == nil {
		return 0.5 // neutral if unknown
	}
	if *distM <= 0 {
		return 1
	}
	return math.Exp(-*distM / 4000) // 4km characteristic length
}

// budgetSimilarity is 1.0 within budget, tapering off above it.
func budgetSimilarity(userBudget *float64, priceTier *int) float64 {
	if userBudget == nil || priceTier == nil {
		return 0.5
	}
	b := *userBudget
	p := priceTierAmount(*priceTier)

	switch {
	case p <= b:
		return 1.0
	case p <= 1.3*b:
		return 0.7
	case p <= 1.6*b:
		return 0.4
	default:
		return 0.1
	}
}

// cuisineFamily maps a cuisine/region string to a coarse family name.
func cuisineFamily(label string) string {
	if label == "" {
		return ""
	}
	txt := strings.ToLower(label)
	if fam, ok := stateFamily[txt]; ok {
		return fam
	}
	for fam, vals := range cuisineFamilies {
		for _, v := range vals {
			if strings.Contains(txt, v) {
				return fam
			}
		}
	}
	if strings.Contains(txt, "indian") {
		return "generic_indian"
	}
	return ""
}

// cuisineRelation classifies the venue against the requested cuisine:
// "strong", "weak" or "none".
func cuisineRelation(intent *ai.Intent, v *places.Venue) string {
	userCuisine := intent.Cuisine
	if userCuisine == "" {
		userCuisine = intent.InferredCuisineFromDish
	}
	if userCuisine == "" {
		return "none"
	}

	cuisineText := strings.ToLower(v.Category)
	if cuisineText == "" {
		cuisineText = strings.ToLower(v.Cuisine)
	}
	if cuisineText == "" {
		return "none"
	}

	if strings.Contains(cuisineText, userCuisine) {
		return "strong"
	}

	userFam := cuisineFamily(userCuisine)
	placeFam := cuisineFamily(cuisineText)
	if userFam != "" && placeFam != "" {
		if userFam == placeFam {
			return "strong"
		}
		if (userFam == "south indian" && placeFam == "generic_indian") ||
			(userFam == "generic_indian" && (placeFam == "south indian" || placeFam == "north indian")) {
			return "weak"
		}
	}
	return "none"
}

// cuisineMatchScore: strong -> 1.0, weak -> 0.6, none -> 0.0; neutral 0.5 when
// no cuisine was asked for.
func cuisineMatchScore(intent *ai.Intent, v *places.Venue) float64 {
	if intent.Cuisine == "" && intent.InferredCuisineFromDish == "" {
		return 0.5
	}
	switch cuisineRelation(intent, v) {
	case "strong":
		return 1.0
	case "weak":
		return 0.6
	default:
		return 0.0
	}
}

// styleScore measures how many requested style adjectives appear in the tags.
func styleScore(intent *ai.Intent, v *places.Venue) float64 {
	if len(intent.FoodStyle) == 0 || v.Tags == "" {
		return 0
	}
	matches := 0
	for _, s := range intent.FoodStyle {
		if strings.Contains(v.Tags, s) {
			matches++
		}
	}
	return float64(matches) / float64(len(intent.FoodStyle))
}

// avoidPenalty subtracts 0.4 per avoided style/cuisine found on the venue.
func avoidPenalty(intent *ai.Intent, v *places.Venue) float64 {
	score := 0.0
	cat := strings.ToLower(v.Category)
	for _, s := range intent.AvoidFoodStyle {
		if strings.Contains(v.Tags, s) {
			score -= 0.4
		}
	}
	for _, c := range intent.AvoidCuisine {
		if strings.Contains(cat, c) {
			score -= 0.4
		}
	}
	return score
}

// dishBoost rewards venues whose category matches the requested dish's hint,
// scaled by the cuisine relation.
func dishBoost(intent *ai.Intent, v *places.Venue) float64 {
	if len(intent.Dish) == 0 {
		return 0
	}
	relation := cuisineRelation(intent, v)
	if relation == "none" {
		return 0
	}

	cat := strings.ToLower(v.Category)
	boost := 0.0
	for _, d := range intent.Dish {
		hint, ok := dishHints[d]
		if !ok {
			continue
		}
		matched := (hint.cuisine != "" && strings.Contains(cat, hint.cuisine)) ||
			(hint.category != "" && strings.Contains(cat, hint.category))
		if !matched {
			continue
		}
		if relation == "strong" {
			boost = math.Max(boost, 0.25)
		} else {
			boost = math.Max(boost, 0.15)
		}
	}
	return boost
}

// styleInferenceBoost rewards venues implied by style adjectives alone
// (soft -> south indian, crunchy -> fast food, ...), clamped to ±0.25.
func styleInferenceBoost(intent *ai.Intent, v *places.Venue) float64 {
	if len(intent.FoodStyle) == 0 {
		return 0
	}
	cat := strings.ToLower(v.Category)
	boost := 0.0
	for _, s := range intent.FoodStyle {
		hint, ok := styleHints[s]
		if !ok {
			continue
		}
		for _, c := range hint.cuisines {
			if strings.Contains(cat, c) || strings.Contains(v.Tags, c) {
				boost += 0.08
			}
		}
		for _, c := range hint.categories {
			if strings.Contains(cat, c) || strings.Contains(v.Tags, c) {
				boost += 0.08
			}
		}
	}
	return clamp(boost, -0.25, 0.25)
}

// moodBoost applies a soft, non-strict mood effect, clamped to ±0.25.
func moodBoost(intent *ai.Intent, v *places.Venue) float64 {
	if intent.Mood == "" {
		return 0
	}
	mood := intent.Mood
	cat := strings.ToLower(v.Category)
	tags := v.Tags
	boost := 0.0

	if containsAny(mood, "comfort", "rough", "bad day", "sad", "tired") {
		switch {
		case strings.Contains(cat, "vegetarian") || strings.Contains(cat, "veg"):
			boost += 0.18
		case strings.Contains(cat, "south indian"):
			boost += 0.15
		case strings.Contains(cat, "indian"):
			boost += 0.08
		}
		if containsAny(tags, "light", "home-style", "healthy", "soft") {
			boost += 0.10
		}
		if strings.Contains(cat, "fast food") || strings.Contains(cat, "chinese") {
			boost -= 0.08
		}
		if containsAny(tags, "fried", "biryani", "tandoori", "oily") {
			boost -= 0.10
		}
	}

	if containsAny(mood, "celebration", "party", "birthday") {
		if containsAny(cat, "mughlai", "north indian") || strings.Contains(tags, "biryani") {
			boost += 0.12
		}
		if containsAny(cat, "dessert", "bakery") || strings.Contains(tags, "sweet") {
			boost += 0.08
		}
	}

	return clamp(boost, -0.25, 0.25)
}

// contributions records per-factor weighted scores for explanation building.
type contributions struct {
	cuisine    float64
	style      float64
	popularity float64
	distance   float64
	budget     float64
	dish       float64
	mood       float64
	relation   string
}

// scoredVenue pairs a venue with its score and human-readable reason.
type scoredVenue struct {
	places.Venue
	Score            float64
	ScoreWithReviews float64
	Reason           string
}

// computeScore blends the weighted factors and boosts into a final [0,1] score.
func computeScore(intent *ai.Intent, v *places.Venue, w weights) float64 {
	base := w.cuisine*cuisineMatchScore(intent, v) +
		w.style*styleScore(intent, v) +
		w.popularity*normalizePopularity(v.Popularity) +
		w.distance*distanceScore(v.DistanceM) +
		w.budget*budgetSimilarity(intent.Budget, v.PriceTier)

	final := base +
		dishBoost(intent, v) +
		moodBoost(intent, v) +
		styleInferenceBoost(intent, v) +
		avoidPenalty(intent, v)

	return clamp(final, 0, 1)
}

// describeTopFactors turns the score contributions into a reason sentence.
func describeTopFactors(intent *ai.Intent, v *places.Venue, c contributions) string {
	var parts []string

	if c.budget >= 0.05 {
		if intent.Budget != nil && v.PriceTier != nil {
			b := *intent.Budget
			p := priceTierAmount(*v.PriceTier)
			switch {
			case p <= b:
				parts = append(parts, fmt.Sprintf("Works well within your budget (around ₹%d).", int(b)))
			case p <= 1.3*b:
				parts = append(parts, "Slightly above your budget but still fairly affordable.")
			default:
				parts = append(parts, "Costs more than you planned, but recommended for other reasons.")
			}
		} else {
			parts = append(parts, "A good fit for your budget preference.")
		}
	}

	if v.DistanceM != nil && c.distance >= 0.05 {
		km := *v.DistanceM / 1000
		switch {
		case km <= 0.5:
			parts = append(parts, "Super close — just a short walk away")
		case km <= 1.5:
			parts = append(parts, fmt.Sprintf("Very close at about %.1f km", km))
		case km <= 3:
			parts = append(parts, fmt.Sprintf("Nearby at around %.1f km", km))
		default:
			parts = append(parts, fmt.Sprintf("About %.1f km away", km))
		}
	}

	if pop := normalizePopularity(v.Popularity) * 5; v.Popularity > 0 && c.popularity >= 0.05 {
		switch {
		case pop >= 4.5:
			parts = append(parts, "Extremely popular — highly rated by customers")
		case pop >= 4.0:
			parts = append(parts, "Well-loved place with great reviews")
		case pop >= 3.5:
			parts = append(parts, "Generally well-rated by visitors")
		}
	}

	cuisine := intent.Cuisine
	if cuisine == "" {
		cuisine = intent.InferredCuisineFromDish
	}
	if cuisine != "" && c.cuisine >= 0.05 {
		switch c.relation {
		case "strong":
			parts = append(parts, fmt.Sprintf("Perfect match for your %s preference", cuisine))
		case "weak":
			parts = append(parts, fmt.Sprintf("Close match to your preferred %s cuisine family", cuisine))
		}
	}

	if len(intent.FoodStyle) > 0 && c.style >= 0.05 {
		parts = append(parts, fmt.Sprintf("Matches your request for something %s", strings.Join(intent.FoodStyle, ", ")))
	}

	if len(intent.Dish) > 0 && c.dish > 0 {
		parts = append(parts, fmt.Sprintf("Good choice if you're craving %s", strings.Join(intent.Dish, ", ")))
	}

	if intent.Mood != "" && c.mood > 0 {
		parts = append(parts, fmt.Sprintf("Fits your mood for %s food", intent.Mood))
	}

	if len(parts) == 0 {
		parts = append(parts, "Good overall match based on your preferences")
	}
	return strings.Join(parts, ". ")
}

// rankVenues groups candidates by cuisine relation, records fallback flags on
// the intent and returns the scored venues best first.
func rankVenues(intent *ai.Intent, venues []places.Venue) []*scoredVenue {
	var strong, weak, neutral []places.Venue

	hasPreference := intent.Cuisine != "" || intent.InferredCuisineFromDish != "" || len(intent.Dish) > 0

	for _, v := range venues {
		if hasPreference {
			switch cuisineRelation(intent, &v) {
			case "strong":
				strong = append(strong, v)
			case "weak":
				weak = append(weak, v)
			default:
				neutral = append(neutral, v)
			}
		} else {
			neutral = append(neutral, v)
		}
	}

	candidates := neutral
	if hasPreference {
		switch {
		case len(strong) > 0:
			candidates = strong
		case len(weak) > 0:
			candidates = weak
		}
	}

	// Fallback detection feeds the formatter's explanation paragraph.
	requestedCuisine := intent.Cuisine
	if requestedCuisine == "" {
		requestedCuisine = intent.InferredCuisineFromDish
	}
	intent.FallbackType = ""
	if requestedCuisine != "" && len(candidates) > 0 {
		found := false
		for _, v := range candidates {
			if strings.Contains(strings.ToLower(v.Category), requestedCuisine) ||
				strings.Contains(strings.ToLower(v.Cuisine), requestedCuisine) {
				found = true
				break
			}
		}
		if !found {
			intent.FallbackType = "cuisine_family_fallback"
		}
	}

	intent.DishFallback = false
	if len(intent.Dish) > 0 && len(candidates) > 0 {
		found := false
		for _, v := range candidates {
			text := strings.ToLower(v.Name + " " + v.Category + " " + v.Tags)
			for _, d := range intent.Dish {
				if strings.Contains(text, d) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		intent.DishFallback = !found
	}

	w := adjustWeights(intent)
	ranked := make([]*scoredVenue, 0, len(candidates))
	for i := range candidates {
		v := candidates[i]
		c := contributions{
			cuisine:    w.cuisine * cuisineMatchScore(intent, &v),
			style:      w.style * styleScore(intent, &v),
			popularity: w.popularity * normalizePopularity(v.Popularity),
			distance:   w.distance * distanceScore(v.DistanceM),
			budget:     w.budget * budgetSimilarity(intent.Budget, v.PriceTier),
			dish:       dishBoost(intent, &v),
			mood:       moodBoost(intent, &v),
			relation:   cuisineRelation(intent, &v),
		}
		ranked = append(ranked, &scoredVenue{
			Venue:  v,
			Score:  computeScore(intent, &v, w),
			Reason: describeTopFactors(intent, &v, c),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

// isVegVenue checks category/cuisine text for a veg marker; "pure veg" often
// only appears in the tags.
func isVegVenue(v *places.Venue) bool {
	combined := strings.ToLower(v.Cuisine + " " + v.Category)
	return strings.Contains(combined, "veg") || strings.Contains(v.Tags, "pure veg")
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
