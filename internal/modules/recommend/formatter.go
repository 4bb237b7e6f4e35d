package recommend

import (
	"fmt"
	"strings"

	"foodfinder/internal/ai"
)

// moodIntros pick the opening line when the extracted mood matches a key.
var moodIntros = []struct{ key, text string }{
	{"comfort food", "Sounds like you need something warm and comforting today. Here are some cozy picks:"},
	{"sad", "Rough day? Here are some comforting food options to lift your mood:"},
	{"tired", "You must be exhausted — here are some easy, soothing meals nearby:"},
	{"celebration", "Nice! Here are some places perfect for a celebration:"},
	{"hangout", "Looking for a chill hangout spot? Try these:"},
	{"spicy craving", "Craving something spicy? These places should hit the spot!"},
}

func selectIntro(intent *ai.Intent) string {
	if intent.Mood != "" {
		for _, mi := range moodIntros {
			if strings.Contains(intent.Mood, mi.key) {
				return mi.text
			}
		}
	}
	if len(intent.FoodStyle) > 0 {
		return fmt.Sprintf("Here are some places that match your craving for something %s:", strings.Join(intent.FoodStyle, ", "))
	}
	return "Here are some great options I found for you!"
}

// buildGlobalExplanation produces one paragraph explaining veg-only filtering,
// cuisine-family fallbacks and dish fallbacks.
func buildGlobalExplanation(intent *ai.Intent, recs []Recommendation) string {
	if len(recs) == 0 {
		return ""
	}

	var parts []string

	requestedCuisine := intent.Cuisine
	if requestedCuisine == "" {
		requestedCuisine = intent.InferredCuisineFromDish
	}
	dishText := strings.Join(intent.Dish, ", ")

	if intent.VegOnly {
		parts = append(parts, "You asked for pure vegetarian options, so I'm only showing places that look vegetarian / pure-veg.")
	}

	switch {
	case intent.FallbackType == "cuisine_family_fallback" && requestedCuisine != "":
		topCat := strings.TrimSpace(recs[0].Category)
		if dishText != "" {
			if topCat != "" {
				parts = append(parts, fmt.Sprintf(
					"I couldn't find restaurants clearly labelled as %s for %s, so I'm recommending the closest matches like %s that should feel similar.",
					requestedCuisine, dishText, topCat))
			} else {
				parts = append(parts, fmt.Sprintf(
					"I couldn't find restaurants clearly labelled as %s for %s, so I'm recommending the closest cuisine matches instead.",
					requestedCuisine, dishText))
			}
		} else {
			if topCat != "" {
				parts = append(parts, fmt.Sprintf(
					"I couldn't find restaurants clearly labelled as %s nearby, so I'm recommending the closest matches like %s that should feel similar.",
					requestedCuisine, topCat))
			} else {
				parts = append(parts, fmt.Sprintf(
					"I couldn't find restaurants clearly labelled as %s nearby, so I'm recommending the closest cuisine matches instead.",
					requestedCuisine))
			}
		}
	case dishText != "" && intent.InferredCuisineFromDish != "":
		parts = append(parts, fmt.Sprintf(
			"Since %s is usually a %s dish, I'm prioritising strong %s restaurants that are likely to serve it.",
			dishText, intent.InferredCuisineFromDish, intent.InferredCuisineFromDish))
	}

	inCombinedFallback := intent.FallbackType == "cuisine_family_fallback" && dishText != "" && intent.InferredCuisineFromDish != ""
	if intent.DishFallback && !inCombinedFallback {
		if dishText != "" && intent.InferredCuisineFromDish != "" {
			parts = append(parts, fmt.Sprintf(
				"I couldn't find places that explicitly mention %s, so I'm showing well-rated %s options where you're likely to get it.",
				dishText, intent.InferredCuisineFromDish))
		} else {
			label := dishText
			if label == "" {
				label = intent.RawQuery
			}
			parts = append(parts, fmt.Sprintf(
				"I also couldn't find places that explicitly mention %s, so these are the best matches based on cuisine, style and reviews.",
				label))
		}
	}

	return strings.Join(parts, " ")
}

// buildReasonPhrase wraps a venue's technical reason with conversational context.
func buildReasonPhrase(intent *ai.Intent, r Recommendation) string {
	var phrases []string

	if len(intent.Dish) > 0 {
		phrases = append(phrases, fmt.Sprintf("%s is a good pick if you're craving %s.", r.Name, strings.Join(intent.Dish, ", ")))
	}

	cuisine := intent.Cuisine
	if cuisine == "" {
		cuisine = intent.InferredCuisineFromDish
	}
	if cuisine != "" {
		phrases = append(phrases, fmt.Sprintf("Fits your preference for %s food.", cuisine))
	}

	if len(intent.FoodStyle) > 0 {
		phrases = append(phrases, fmt.Sprintf("Matches your taste for something %s.", strings.Join(intent.FoodStyle, ", ")))
	}

	if len(intent.AvoidFoodStyle) > 0 {
		phrases = append(phrases, fmt.Sprintf("Avoids foods that are %s, just like you wanted.", strings.Join(intent.AvoidFoodStyle, ", ")))
	}

	if intent.Budget != nil {
		phrases = append(phrases, fmt.Sprintf("Works well within your budget (around ₹%d).", int(*intent.Budget)))
	}

	if r.DistanceM != nil {
		km := *r.DistanceM / 1000
		if km <= 0.7 {
			phrases = append(phrases, fmt.Sprintf("Super close — only %.1f km away.", km))
		} else {
			phrases = append(phrases, fmt.Sprintf("Not too far at about %.1f km away.", km))
		}
	}

	if r.Popularity > 0 {
		phrases = append(phrases, fmt.Sprintf("People love this place — rated %.1f.", r.Popularity))
	}

	if r.Reason != "" {
		phrases = append(phrases, "("+r.Reason+")")
	}

	return strings.Join(phrases, " ")
}

// buildMessage renders the whole recommendation list as a conversational reply.
func buildMessage(query string, intent *ai.Intent, recs []Recommendation) string {
	if len(recs) == 0 {
		return fmt.Sprintf(
			"Sorry, I couldn't find anything matching %q.\nWant to try changing cuisine, dish, style (soft / spicy / cheesy), or budget?",
			query)
	}

	var b strings.Builder
	b.WriteString("🍽️ " + selectIntro(intent) + "\n\n")

	if explanation := buildGlobalExplanation(intent, recs); explanation != "" {
		b.WriteString(explanation + "\n\n")
	}

	for i, r := range recs {
		distKm := 0.0
		if r.DistanceM != nil {
			distKm = *r.DistanceM / 1000
		}
		category := r.Category
		if category == "" {
			category = "N/A"
		}
		b.WriteString(fmt.Sprintf("⭐ %d. %s\n", i+1, r.Name))
		b.WriteString(fmt.Sprintf("- 🥗 Category: %s\n", category))
		b.WriteString(fmt.Sprintf("- 📍 %.1f km away\n", distKm))
		b.WriteString(fmt.Sprintf("- 💡 Why this place? %s\n\n", buildReasonPhrase(intent, r)))
	}

	b.WriteString("---\nWant something spicier, lighter, cheaper, only-veg, or more like street food? Tell me and I'll refine the list! 😊")
	return b.String()
}
