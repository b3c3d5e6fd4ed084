package linkparse

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageMetadata is the flattened set of Open Graph / Twitter / plain meta
// tags for a page, keyed without the "og:"/"twitter:" prefixes.
type pageMetadata map[string]string

func (m pageMetadata) Title() string       { return m["title"] }
func (m pageMetadata) Description() string { return m["description"] }
func (m pageMetadata) Image() string       { return m["image"] }

func parseDocument(data []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(data))
}

// extractMetadata collects Open Graph properties, falling back to Twitter
// card tags, the <title> element, and the plain description meta tag.
func extractMetadata(doc *goquery.Document) pageMetadata {
	meta := pageMetadata{}

	doc.Find(`meta[property]`).Each(func(_ int, s *goquery.Selection) {
		property, _ := s.Attr("property")
		if strings.HasPrefix(property, "og:") {
			meta[strings.TrimPrefix(property, "og:")] = s.AttrOr("content", "")
		}
	})

	doc.Find(`meta[name]`).Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		if strings.HasPrefix(name, "twitter:") {
			key := strings.TrimPrefix(name, "twitter:")
			if _, ok := meta[key]; !ok {
				meta[key] = s.AttrOr("content", "")
			}
		}
	})

	if meta["title"] == "" {
		meta["title"] = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if meta["description"] == "" {
		if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
			meta["description"] = desc
		}
	}

	return meta
}

// extractJSONLD parses every JSON-LD script block into generic maps.
// Malformed blocks are skipped; publishers routinely ship broken ones.
func extractJSONLD(doc *goquery.Document) []map[string]any {
	var results []map[string]any

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var raw any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return
		}

		switch v := raw.(type) {
		case []any:
			for _, entry := range v {
				if m, ok := entry.(map[string]any); ok {
					results = append(results, m)
				}
			}
		case map[string]any:
			results = append(results, v)
		}
	})

	return results
}

// jsonLDString reads a string field from a JSON-LD map.
func jsonLDString(item map[string]any, key string) string {
	if s, ok := item[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// jsonLDFloat reads a numeric field that may arrive as a number or string.
func jsonLDFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		var parsed float64
		if err := json.Unmarshal([]byte(strings.TrimSpace(n)), &parsed); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

// jsonLDAddress renders a JSON-LD address, which is either a plain string
// or a PostalAddress object.
func jsonLDAddress(addr any) string {
	switch a := addr.(type) {
	case string:
		return strings.TrimSpace(a)
	case map[string]any:
		parts := []string{}
		for _, key := range []string{"streetAddress", "addressLocality", "addressRegion", "postalCode"} {
			if p := jsonLDString(a, key); p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// jsonLDGeo pulls latitude/longitude out of a GeoCoordinates object.
func jsonLDGeo(item map[string]any) (*float64, *float64) {
	geo, ok := item["geo"].(map[string]any)
	if !ok {
		return nil, nil
	}

	var lat, lng *float64
	if v, ok := jsonLDFloat(geo["latitude"]); ok {
		lat = &v
	}
	if v, ok := jsonLDFloat(geo["longitude"]); ok {
		lng = &v
	}
	return lat, lng
}

// truncateRunes caps user-facing strings without splitting multi-byte runes.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

const (
	maxTitleLength       = 200
	maxDescriptionLength = 500
	maxURLLength         = 2048
)

// optional converts a possibly-empty string into the pointer form the
// ParsedLink contract uses, applying the rune cap.
func optional(s string, limit int) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	capped := truncateRunes(s, limit)
	return &capped
}
