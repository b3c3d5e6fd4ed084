package linkparse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/driftapp/drift-parse/app/save"
)

// EventbriteExtractor pulls structured event metadata from the page:
// Open Graph tags for the basics, the JSON-LD Event block for date,
// venue, and coordinates.
type EventbriteExtractor struct {
	fetcher *Fetcher
}

func NewEventbriteExtractor(fetcher *Fetcher) *EventbriteExtractor {
	return &EventbriteExtractor{fetcher: fetcher}
}

func (e *EventbriteExtractor) Extract(ctx context.Context, rawURL string) save.ParsedLink {
	data, _, err := e.fetcher.Page(ctx, rawURL)
	if err != nil {
		return save.Failed(save.SourceTypeEventbrite, fmt.Sprintf("could not fetch page: %v", err))
	}

	doc, err := parseDocument(data)
	if err != nil {
		return save.Failed(save.SourceTypeEventbrite, fmt.Sprintf("could not parse page: %v", err))
	}

	meta := extractMetadata(doc)
	title := strings.TrimSpace(strings.Replace(meta.Title(), " | Eventbrite", "", 1))
	description := meta.Description()

	var address *string
	var lat, lng *float64
	var eventDate *time.Time

	for _, item := range extractJSONLD(doc) {
		if jsonLDString(item, "@type") != "Event" {
			continue
		}

		if title == "" {
			title = jsonLDString(item, "name")
		}
		if description == "" {
			description = jsonLDString(item, "description")
		}
		if start := jsonLDString(item, "startDate"); start != "" {
			if parsed, err := dateparse.ParseAny(start); err == nil {
				eventDate = &parsed
			}
		}

		if loc, ok := item["location"].(map[string]any); ok {
			venue := jsonLDString(loc, "name")
			addr := jsonLDAddress(loc["address"])
			switch {
			case venue != "" && addr != "":
				combined := venue + ", " + addr
				address = &combined
			case venue != "":
				address = &venue
			case addr != "":
				address = &addr
			}
			lat, lng = jsonLDGeo(loc)
		}
		break
	}

	category := save.CategoryEvent
	if InferCategory(title) == save.CategoryConcert {
		category = save.CategoryConcert
	}

	return save.ParsedLink{
		Success:     true,
		SourceType:  save.SourceTypeEventbrite,
		Title:       optional(title, maxTitleLength),
		Description: optional(description, maxDescriptionLength),
		Address:     address,
		LocationLat: lat,
		LocationLng: lng,
		ImageURL:    optional(meta.Image(), maxURLLength),
		EventDate:   eventDate,
		Category:    &category,
	}
}
