package linkparse

import (
	"strings"

	"github.com/driftapp/drift-parse/app/save"
)

// categoryKeywords maps text signals to categories. Order matters: the
// first bucket with a hit wins, so "sushi bar" stays a restaurant.
var categoryKeywords = []struct {
	Category save.Category
	Words    []string
}{
	{save.CategoryRestaurant, []string{"restaurant", "dining", "food", "eat", "dinner", "lunch", "brunch", "sushi", "pizza", "bistro"}},
	{save.CategoryBar, []string{"bar", "cocktail", "pub", "brewery", "wine", "lounge", "nightlife"}},
	{save.CategoryCafe, []string{"cafe", "café", "coffee", "espresso", "bakery", "tea"}},
	{save.CategoryConcert, []string{"concert", "live music", "show", "tour", "festival", "band"}},
	{save.CategoryEvent, []string{"event", "party", "meetup", "workshop", "class", "exhibition"}},
	{save.CategoryActivity, []string{"activity", "tour", "hike", "sport", "museum", "gallery", "adventure"}},
	{save.CategoryTrip, []string{"hotel", "resort", "airbnb", "vacation", "stay", "lodge"}},
}

// InferCategory guesses a save category from free text. It returns
// CategoryOther when no keyword matches.
func InferCategory(text string) save.Category {
	if text == "" {
		return save.CategoryOther
	}
	lowered := strings.ToLower(text)

	for _, bucket := range categoryKeywords {
		for _, word := range bucket.Words {
			if strings.Contains(lowered, word) {
				return bucket.Category
			}
		}
	}
	return save.CategoryOther
}

// categoryOrNil maps CategoryOther to nil: an unconfident guess is left
// for the user to pick rather than pre-filled.
func categoryOrNil(category save.Category) *save.Category {
	if category == save.CategoryOther || category == "" {
		return nil
	}
	return &category
}
