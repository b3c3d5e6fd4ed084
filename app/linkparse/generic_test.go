package linkparse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/driftapp/drift-parse/app/save"
)

func TestGeneric_OpenGraphPage(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="El Centro D.F."/>
		<meta property="og:description" content="Mexican restaurant and tequila bar in Georgetown"/>
		<meta property="og:image" content="https://img.example.com/elcentro.jpg"/>
	</head><body></body></html>`
	server := serveHTML(t, html)

	extractor := NewGenericExtractor(testFetcher(server.Client()))
	result := extractor.Extract(context.Background(), server.URL+"/venue")

	if !result.Success {
		t.Fatalf("Expected success, got error: %v", result.Error)
	}
	if result.SourceType != save.SourceTypeOtherURL {
		t.Errorf("Expected source type 'other_url', got '%s'", result.SourceType)
	}
	if result.Title == nil || *result.Title != "El Centro D.F." {
		t.Errorf("Expected OG title, got %v", result.Title)
	}
	if result.Category == nil || *result.Category != save.CategoryRestaurant {
		t.Errorf("Expected inferred 'restaurant' category, got %v", result.Category)
	}
}

func TestGeneric_JSONLDRestaurant(t *testing.T) {
	html := `<html><head>
		<title>Some Venue</title>
		<script type="application/ld+json">
		{"@type":"BarOrPub","name":"The Alchemist","address":{"streetAddress":"20 Bedford Sq","addressLocality":"London"},"geo":{"latitude":51.5194,"longitude":-0.1294}}
		</script>
	</head></html>`
	server := serveHTML(t, html)

	extractor := NewGenericExtractor(testFetcher(server.Client()))
	result := extractor.Extract(context.Background(), server.URL+"/bar")

	if !result.Success {
		t.Fatalf("Expected success, got error: %v", result.Error)
	}
	if result.Address == nil || *result.Address != "20 Bedford Sq, London" {
		t.Errorf("Expected JSON-LD address, got %v", result.Address)
	}
	if result.LocationLat == nil || *result.LocationLat != 51.5194 {
		t.Errorf("Expected latitude from geo block, got %v", result.LocationLat)
	}
	if result.Category == nil || *result.Category != save.CategoryBar {
		t.Errorf("Expected 'bar' category for BarOrPub, got %v", result.Category)
	}
}

func TestGeneric_JSONLDEventWithDate(t *testing.T) {
	html := `<html><head>
		<title>Community Calendar</title>
		<script type="application/ld+json">
		{"@type":"Event","name":"Night Market","description":"Street food and live music","startDate":"2026-10-03T18:00:00Z","location":{"name":"Pier 17"}}
		</script>
	</head></html>`
	server := serveHTML(t, html)

	extractor := NewGenericExtractor(testFetcher(server.Client()))
	result := extractor.Extract(context.Background(), server.URL+"/calendar")

	if !result.Success {
		t.Fatalf("Expected success, got error: %v", result.Error)
	}
	if result.EventDate == nil || result.EventDate.Day() != 3 {
		t.Errorf("Expected startDate parsed, got %v", result.EventDate)
	}
	if result.Address == nil || *result.Address != "Pier 17" {
		t.Errorf("Expected venue name as address, got %v", result.Address)
	}
	if result.Category == nil || *result.Category != save.CategoryEvent {
		t.Errorf("Expected 'event' category, got %v", result.Category)
	}
}

func TestGeneric_NoMetadataFails(t *testing.T) {
	server := serveHTML(t, `<html><head></head><body><div>nothing here</div></body></html>`)

	extractor := NewGenericExtractor(testFetcher(server.Client()))
	result := extractor.Extract(context.Background(), server.URL+"/empty")

	if result.Success {
		t.Error("Expected failure for page without extractable metadata")
	}
	if result.Error == nil || *result.Error == "" {
		t.Error("Expected a populated error message")
	}
}

func TestGeneric_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := server.Client()
	server.Close()

	extractor := NewGenericExtractor(testFetcher(client))
	result := extractor.Extract(context.Background(), server.URL+"/gone")

	if result.Success {
		t.Error("Expected failure for unreachable server")
	}
	if result.SourceType != save.SourceTypeOtherURL {
		t.Errorf("Expected source type 'other_url', got '%s'", result.SourceType)
	}
}
