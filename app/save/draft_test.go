package save

import (
	"strings"
	"testing"
	"time"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func catPtr(c Category) *Category { return &c }

func TestMerge_EmptyDraftTakesAllFields(t *testing.T) {
	draft := NewDraft()

	eventDate := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)
	parsed := ParsedLink{
		Success:      true,
		SourceType:   SourceTypeEventbrite,
		Title:        strPtr("Jazz Night"),
		Description:  strPtr("Live jazz downtown"),
		Category:     catPtr(CategoryConcert),
		LocationName: strPtr("Blue Note"),
		Address:      strPtr("131 W 3rd St, New York"),
		ImageURL:     strPtr("https://img.example.com/jazz.jpg"),
		EventDate:    &eventDate,
	}

	draft.Merge(parsed)

	if draft.Title != "Jazz Night" {
		t.Errorf("Expected title 'Jazz Night', got '%s'", draft.Title)
	}
	if draft.Description != "Live jazz downtown" {
		t.Errorf("Expected description to be filled, got '%s'", draft.Description)
	}
	if draft.Category != CategoryConcert {
		t.Errorf("Expected category 'concert', got '%s'", draft.Category)
	}
	if draft.LocationName != "Blue Note" {
		t.Errorf("Expected location name 'Blue Note', got '%s'", draft.LocationName)
	}
	if draft.Address != "131 W 3rd St, New York" {
		t.Errorf("Expected address to be filled, got '%s'", draft.Address)
	}
	if draft.ImageURL != "https://img.example.com/jazz.jpg" {
		t.Errorf("Expected image URL to be filled, got '%s'", draft.ImageURL)
	}
	if draft.EventDate == nil || !draft.EventDate.Equal(eventDate) {
		t.Errorf("Expected event date %v, got %v", eventDate, draft.EventDate)
	}
	if draft.SourceType != SourceTypeEventbrite {
		t.Errorf("Expected source type 'eventbrite', got '%s'", draft.SourceType)
	}
}

func TestMerge_NeverClobbersUserInput(t *testing.T) {
	draft := NewDraft()
	draft.Title = "My Title"
	draft.Description = "my own notes"

	draft.Merge(ParsedLink{
		Success:     true,
		SourceType:  SourceTypeOtherURL,
		Title:       strPtr("Other"),
		Description: strPtr("scraped description"),
	})

	if draft.Title != "My Title" {
		t.Errorf("User-typed title was overwritten: got '%s'", draft.Title)
	}
	if draft.Description != "my own notes" {
		t.Errorf("User-typed description was overwritten: got '%s'", draft.Description)
	}
}

func TestMerge_CoordinateOnlyFallbackLabel(t *testing.T) {
	draft := NewDraft()

	draft.Merge(ParsedLink{
		Success:     true,
		SourceType:  SourceTypeGoogleMaps,
		LocationLat: floatPtr(40.7128),
		LocationLng: floatPtr(-74.0060),
	})

	if draft.LocationName == "" {
		t.Fatal("Expected a fallback location label for coordinate-only result")
	}
	if !strings.Contains(draft.LocationName, "40.71280") || !strings.Contains(draft.LocationName, "-74.00600") {
		t.Errorf("Expected label with both coordinates at 5-decimal precision, got '%s'", draft.LocationName)
	}
	if !strings.HasPrefix(draft.LocationName, "📍") {
		t.Errorf("Expected marker prefix on fallback label, got '%s'", draft.LocationName)
	}
}

func TestMerge_NamedLocationSkipsFallbackLabel(t *testing.T) {
	draft := NewDraft()

	draft.Merge(ParsedLink{
		Success:      true,
		SourceType:   SourceTypeGoogleMaps,
		LocationLat:  floatPtr(40.7308),
		LocationLng:  floatPtr(-73.9973),
		LocationName: strPtr("Joe's Pizza"),
	})

	if draft.LocationName != "Joe's Pizza" {
		t.Errorf("Expected location name 'Joe's Pizza', got '%s'", draft.LocationName)
	}
}

func TestMerge_ErrorBecomesNonBlockingNotice(t *testing.T) {
	draft := NewDraft()
	draft.Title = "Typed already"

	draft.Merge(Partial(SourceTypeInstagram, "Instagram content detected. Please add details manually."))

	if draft.Notice == "" {
		t.Error("Expected merge to surface the parse warning as a notice")
	}
	if draft.Title != "Typed already" {
		t.Errorf("Notice merge must not touch user input, got title '%s'", draft.Title)
	}
}

func TestMerge_DefaultCategoryIsReplaceable(t *testing.T) {
	draft := NewDraft()
	if draft.Category != CategoryOther {
		t.Fatalf("Expected fresh draft category 'other', got '%s'", draft.Category)
	}

	draft.Merge(ParsedLink{
		Success:    true,
		SourceType: SourceTypeOtherURL,
		Category:   catPtr(CategoryRestaurant),
	})
	if draft.Category != CategoryRestaurant {
		t.Errorf("Expected default category to be replaced, got '%s'", draft.Category)
	}

	// A category the user picked stays.
	draft.Merge(ParsedLink{
		Success:    true,
		SourceType: SourceTypeOtherURL,
		Category:   catPtr(CategoryBar),
	})
	if draft.Category != CategoryRestaurant {
		t.Errorf("User-visible category was overwritten: got '%s'", draft.Category)
	}
}

func TestFallbackLocationLabel(t *testing.T) {
	label := FallbackLocationLabel(40.7128, -74.006)
	if label != "📍 40.71280, -74.00600" {
		t.Errorf("Unexpected fallback label: '%s'", label)
	}
}
