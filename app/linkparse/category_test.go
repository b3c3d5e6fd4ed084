package linkparse

import (
	"testing"

	"github.com/driftapp/drift-parse/app/save"
)

func TestInferCategory(t *testing.T) {
	cases := []struct {
		text     string
		expected save.Category
	}{
		{"Best sushi dinner in town", save.CategoryRestaurant},
		{"Craft cocktail lounge opening", save.CategoryBar},
		{"Cozy coffee and bakery", save.CategoryCafe},
		{"Summer festival lineup announced", save.CategoryConcert},
		{"Pottery workshop for beginners", save.CategoryEvent},
		{"Sunrise hike to the summit", save.CategoryActivity},
		{"Beachfront resort getaway", save.CategoryTrip},
		{"Quarterly earnings report", save.CategoryOther},
		{"", save.CategoryOther},
	}

	for _, tc := range cases {
		if got := InferCategory(tc.text); got != tc.expected {
			t.Errorf("InferCategory(%q): expected '%s', got '%s'", tc.text, tc.expected, got)
		}
	}
}

func TestInferCategory_FirstBucketWins(t *testing.T) {
	// "sushi bar" hits both restaurant and bar words; restaurant is
	// checked first and must win.
	if got := InferCategory("Omakase sushi bar"); got != save.CategoryRestaurant {
		t.Errorf("Expected 'restaurant' for 'Omakase sushi bar', got '%s'", got)
	}
}

func TestCategoryOrNil(t *testing.T) {
	if categoryOrNil(save.CategoryOther) != nil {
		t.Error("Expected nil for 'other' category")
	}
	if categoryOrNil("") != nil {
		t.Error("Expected nil for empty category")
	}
	got := categoryOrNil(save.CategoryCafe)
	if got == nil || *got != save.CategoryCafe {
		t.Errorf("Expected 'cafe' pointer, got %v", got)
	}
}
