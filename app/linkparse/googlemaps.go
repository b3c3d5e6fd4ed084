package linkparse

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/driftapp/drift-parse/app/save"
)

var (
	mapsPlaceRe = regexp.MustCompile(`/place/([^/@]+)`)
	mapsCoordRe = regexp.MustCompile(`@(-?\d+\.?\d*),(-?\d+\.?\d*)`)
)

// GoogleMapsExtractor reads place name and coordinates straight out of the
// URL. Full share links need no network call at all; shortened links
// (goo.gl/maps, maps.app.goo.gl) are resolved once to the canonical URL
// before parsing.
type GoogleMapsExtractor struct {
	fetcher *Fetcher
}

func NewGoogleMapsExtractor(fetcher *Fetcher) *GoogleMapsExtractor {
	return &GoogleMapsExtractor{fetcher: fetcher}
}

func (e *GoogleMapsExtractor) Extract(ctx context.Context, rawURL string) save.ParsedLink {
	targetURL := rawURL
	if isShortMapsLink(rawURL) {
		resolved, err := e.fetcher.Resolve(ctx, rawURL)
		if err == nil && resolved != "" {
			targetURL = resolved
		}
	}

	name, lat, lng := parseMapsURL(targetURL)
	if name == nil && lat == nil {
		return save.Failed(save.SourceTypeGoogleMaps, "no place information found in link")
	}

	return save.ParsedLink{
		Success:      true,
		SourceType:   save.SourceTypeGoogleMaps,
		Title:        name,
		LocationName: name,
		LocationLat:  lat,
		LocationLng:  lng,
		// Maps links carry no category signal; Category stays nil.
	}
}

func isShortMapsLink(rawURL string) bool {
	lowered := strings.ToLower(rawURL)
	return strings.Contains(lowered, "goo.gl/maps") || strings.Contains(lowered, "maps.app.goo.gl")
}

// parseMapsURL extracts the place name from the /place/ path segment and
// coordinates from the @lat,lng viewport marker.
func parseMapsURL(rawURL string) (name *string, lat, lng *float64) {
	decoded := rawURL
	if unescaped, err := url.QueryUnescape(rawURL); err == nil {
		decoded = unescaped
	}

	if m := mapsPlaceRe.FindStringSubmatch(decoded); m != nil {
		placeName := strings.TrimSpace(strings.ReplaceAll(m[1], "+", " "))
		if placeName != "" {
			capped := truncateRunes(placeName, maxTitleLength)
			name = &capped
		}
	}

	if m := mapsCoordRe.FindStringSubmatch(decoded); m != nil {
		if parsedLat, err := strconv.ParseFloat(m[1], 64); err == nil {
			if parsedLng, err := strconv.ParseFloat(m[2], 64); err == nil {
				lat, lng = &parsedLat, &parsedLng
			}
		}
	}

	return name, lat, lng
}
