package usecase

// Canned user-facing texts.
const (
	TextEmptyMessage   = "I didn't catch that. Could you type your question?"
	TextFallback       = "Sorry, I'm having trouble answering right now. I can connect you with a colleague who will help."
	TextNotFound       = "I couldn't find that in our menu. Could you check the name?"
	TextWhichExactly   = "Which one exactly? Here's what we have:"
	TextCategoryIntro  = "Here's our %s selection."
	TextCategoriesList = "We have these sections: %s."
	TextMenuIntro      = "Here's our menu."
	TextBanquet        = "We'd love to host your event! Tell me the date and the number of guests."
)

// Fast-path phrase sets. Matching is on normalized text (punctuation
// stripped, lowercase), membership-style.
var (
	breakfastPhrases = []string{
		"what do you have for breakfast",
		"breakfast menu",
		"show breakfasts",
		"whats for breakfast",
	}
	saladPhrases = []string{
		"what salads do you have",
		"salad menu",
		"show salads",
		"which salads are there",
	}
	hotDishPhrases = []string{
		"what hot dishes do you have",
		"hot dishes",
		"show hot dishes",
		"main courses",
	}
	categoriesPhrases = []string{
		"what categories exist",
		"what categories do you have",
		"what sections are there",
		"what kinds of food do you have",
	}
	showMenuPhrases = []string{
		"show the menu",
		"show me the menu",
		"menu",
		"open the menu",
	}
	banquetPhrases = []string{
		"do you host banquets",
		"can i book a banquet",
		"banquet",
		"private event",
	}

	// referentialPhrases are short follow-ups whose meaning lives in the
	// conversation history, not in the phrase itself.
	referentialPhrases = []string{
		"another one",
		"one more",
		"what else",
		"whats else",
		"something else",
		"anything else",
		"and more",
		"more options",
		"next",
	}

	// recommendationPhrases must not be treated as dish-name probes;
	// they go to the LLM with conversation-derived hints instead.
	recommendationPhrases = []string{
		"suggest something",
		"recommend something",
		"what do you have",
		"whats available",
		"what can you offer",
		"surprise me",
	}
)

// attributeKeywords trigger the explicit dish-attribute rule. The keyword
// tokens are stripped from the query before catalog matching.
var attributeKeywords = []string{
	"composition", "ingredients", "made",
	"photo", "picture", "looks",
	"calories", "caloric", "kcal",
	"price", "cost", "much",
	"weight", "grams", "big",
	"protein", "fat", "carbs", "carbohydrates", "macros",
}

// calorieKeywords is the subset used by the category+calorie rule.
var calorieKeywords = []string{"calories", "caloric", "kcal", "macros"}

// categoryKeywords maps evidence tokens (stemmed) to the canonical
// category name used for ShowCategory intents.
var categoryKeywords = map[string]string{
	"pizza":     "pizza",
	"soup":      "soups",
	"dessert":   "desserts",
	"salad":     "salads",
	"beer":      "beer",
	"wine":      "wine",
	"breakfast": "breakfast",
	"coffee":    "coffee",
	"steak":     "steaks",
	"pasta":     "pasta",
	"burger":    "burgers",
}

// menuDomainKeywords gate the FAQ rule: food questions never get FAQ
// answers even when question text overlaps (e.g. delivery FAQ vs
// "do you deliver pizza").
var menuDomainKeywords = []string{
	"menu", "pizza", "soup", "dessert", "salad", "breakfast",
	"steak", "pasta", "burger", "eat", "hungry", "tasty", "order",
}

// maxFollowUpTokens is the token cap for referential and bare-utterance
// rules.
const maxFollowUpTokens = 5
