package ai

import "fmt"

// buildExtractionPrompt constructs the attribute-extraction instructions sent
// to whichever model backs the extractor. The schema lives inside the prompt so
// both providers can share one parser.
func buildExtractionPrompt(query string) string {
	return fmt.Sprintf(`Role: You are the query-understanding core of a food recommendation service.
Given a user's free-text food request, extract structured attributes.

RULES:
1. "dish" is a concrete food item ("dosa", "biryani", "pizza"). A dish may be a
   single string or a list if several are named. When a dish strongly implies a
   cuisine, set "inferred_cuisine_from_dish" (e.g. dosa -> "south indian").
2. "cuisine" is only set when the user names one explicitly ("kerala food",
   "chinese"). Do NOT copy the inferred cuisine here.
3. "food_style" holds texture/taste adjectives: spicy, cheesy, crunchy, soft,
   sweet, light, healthy. "avoid_food_style" / "avoid_cuisine" hold anything the
   user wants to exclude ("nothing oily", "no chinese").
4. "budget" is a plain number in the user's currency ("under 200" -> 200).
5. "location" is a place name mentioned inside the query ("near Guindy" ->
   "guindy"), never coordinates.
6. "ranking_preferences" lists what the user cares about most, in order, drawn
   from: "distance", "popularity", "budget", "cuisine", "style". "cheapest" ->
   ["budget"], "nearest" -> ["distance"], "best rated" -> ["popularity"].
7. "mood" captures emotional context ("comfort food", "celebration", "sad").
8. Unknown fields are null; list fields default to [].

Output JSON Schema:
{
  "mood": "string or null",
  "cuisine": "string or null",
  "inferred_cuisine_from_dish": "string or null",
  "dish": "string | [string] | null",
  "food_style": ["string"],
  "avoid_food_style": ["string"],
  "avoid_cuisine": ["string"],
  "budget": number | null,
  "location": "string or null",
  "meal_type": "breakfast|lunch|dinner|snack or null",
  "dietary_preference": "string or null",
  "group_size": number | null,
  "distance_preference": "string or null",
  "category_hint": "string or null",
  "ranking_preferences": ["string"],
  "veg_only": boolean
}

User Query:
"""%s"""

Return ONLY a valid JSON object. No extra text.`, query)
}
