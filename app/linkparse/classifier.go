package linkparse

import (
	"net/url"
	"strings"

	"github.com/driftapp/drift-parse/app/save"
)

// classifierRule matches a lowercased URL and hostname against one source.
type classifierRule struct {
	SourceType save.SourceType
	Match      func(lowered, host string) bool
}

// classifierRules is ordered; the first matching rule wins. The order is
// part of the contract and mirrors the extractor registration order.
var classifierRules = []classifierRule{
	{save.SourceTypeGoogleMaps, func(lowered, host string) bool {
		return strings.Contains(lowered, "google.com/maps") ||
			strings.Contains(lowered, "goo.gl/maps") ||
			strings.Contains(lowered, "maps.app.goo.gl")
	}},
	{save.SourceTypeTikTok, func(lowered, host string) bool {
		return strings.Contains(host, "tiktok.com")
	}},
	{save.SourceTypeInstagram, func(lowered, host string) bool {
		return strings.Contains(host, "instagram.com")
	}},
	{save.SourceTypeEventbrite, func(lowered, host string) bool {
		return strings.Contains(host, "eventbrite.")
	}},
	{save.SourceTypeReddit, func(lowered, host string) bool {
		return strings.Contains(host, "reddit.com")
	}},
}

// Classify determines which source platform a URL belongs to. It is a pure
// function of the URL string: no network access, deterministic, safe to
// call on every debounced keystroke. URLs matching no rule are other_url.
func Classify(rawURL string) save.SourceType {
	lowered := strings.ToLower(strings.TrimSpace(rawURL))

	host := ""
	if u, err := url.Parse(lowered); err == nil {
		host = u.Hostname()
	}

	for _, rule := range classifierRules {
		if rule.Match(lowered, host) {
			return rule.SourceType
		}
	}
	return save.SourceTypeOtherURL
}
