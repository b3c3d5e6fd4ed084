package linkparse

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"

	"github.com/driftapp/drift-parse/app/save"
)

// GenericExtractor is the catch-all strategy for unrecognized hosts:
// Open Graph and plain meta tags, JSON-LD place/event blocks, and a
// readability pass when the page ships no description. Lowest confidence
// of all extractors.
type GenericExtractor struct {
	fetcher *Fetcher
}

func NewGenericExtractor(fetcher *Fetcher) *GenericExtractor {
	return &GenericExtractor{fetcher: fetcher}
}

func (e *GenericExtractor) Extract(ctx context.Context, rawURL string) save.ParsedLink {
	data, _, err := e.fetcher.Page(ctx, rawURL)
	if err != nil {
		return save.Failed(save.SourceTypeOtherURL, fmt.Sprintf("could not fetch page: %v", err))
	}

	doc, err := parseDocument(data)
	if err != nil {
		return save.Failed(save.SourceTypeOtherURL, fmt.Sprintf("could not parse page: %v", err))
	}

	meta := extractMetadata(doc)
	title := meta.Title()
	description := meta.Description()

	var address *string
	var lat, lng *float64
	var eventDate *time.Time
	category := save.CategoryOther

	for _, item := range extractJSONLD(doc) {
		itemType := jsonLDString(item, "@type")

		switch itemType {
		case "Restaurant", "LocalBusiness", "FoodEstablishment", "BarOrPub", "CafeOrCoffeeShop":
			if title == "" {
				title = jsonLDString(item, "name")
			}
			if addr := jsonLDAddress(item["address"]); addr != "" {
				address = &addr
			}
			lat, lng = jsonLDGeo(item)
			switch itemType {
			case "BarOrPub":
				category = save.CategoryBar
			case "CafeOrCoffeeShop":
				category = save.CategoryCafe
			default:
				category = save.CategoryRestaurant
			}

		case "Event":
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
				if venue := jsonLDString(loc, "name"); venue != "" {
					address = &venue
				} else if addr := jsonLDAddress(loc["address"]); addr != "" {
					address = &addr
				}
			}
			category = save.CategoryEvent

		case "Hotel", "LodgingBusiness":
			if title == "" {
				title = jsonLDString(item, "name")
			}
			category = save.CategoryTrip

		case "Place":
			if title == "" {
				title = jsonLDString(item, "name")
			}
			if addr := jsonLDAddress(item["address"]); addr != "" {
				address = &addr
			}

		default:
			continue
		}
		break
	}

	// Pages without any meta description still often have readable body
	// text; take the article excerpt as a best-effort description.
	if description == "" || title == "" {
		if article, err := readability.FromReader(bytes.NewReader(data), nil); err == nil {
			if title == "" {
				title = article.Title
			}
			if description == "" {
				description = article.Excerpt
			}
		}
	}

	if category == save.CategoryOther {
		category = InferCategory(title + " " + description)
	}

	result := save.ParsedLink{
		Success:     title != "",
		SourceType:  save.SourceTypeOtherURL,
		Title:       optional(title, maxTitleLength),
		Description: optional(description, maxDescriptionLength),
		Address:     address,
		LocationLat: lat,
		LocationLng: lng,
		ImageURL:    optional(meta.Image(), maxURLLength),
		EventDate:   eventDate,
		Category:    categoryOrNil(category),
	}

	if !result.Success {
		msg := "could not extract details from URL"
		result.Error = &msg
	}

	return result
}
