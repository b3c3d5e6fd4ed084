package linkparse

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/driftapp/drift-parse/app/save"
)

// Extractor is one per-source extraction strategy. Implementations must
// contain their own failures: a network error, a 404, or missing metadata
// becomes a ParsedLink with Success false (or a partial success with a
// notice), never an error crossing the extractor boundary.
type Extractor interface {
	Extract(ctx context.Context, url string) save.ParsedLink
}

// Parser classifies a URL and dispatches to the matching extractor.
type Parser struct {
	fetcher    *Fetcher
	settings   *Settings
	extractors map[save.SourceType]Extractor
}

func NewParser(httpClient *http.Client, userAgent string, timeout time.Duration, settings *Settings) *Parser {
	fetcher := NewFetcher(httpClient, userAgent, timeout)

	p := &Parser{
		fetcher:  fetcher,
		settings: settings,
	}

	// Registered in the classifier's rule order.
	p.extractors = map[save.SourceType]Extractor{
		save.SourceTypeGoogleMaps: NewGoogleMapsExtractor(p.sourceFetcher(save.SourceTypeGoogleMaps)),
		save.SourceTypeTikTok:     NewTikTokExtractor(p.sourceFetcher(save.SourceTypeTikTok)),
		save.SourceTypeInstagram:  NewInstagramExtractor(p.sourceFetcher(save.SourceTypeInstagram)),
		save.SourceTypeEventbrite: NewEventbriteExtractor(p.sourceFetcher(save.SourceTypeEventbrite)),
		save.SourceTypeReddit:     NewRedditExtractor(p.sourceFetcher(save.SourceTypeReddit)),
		save.SourceTypeOtherURL:   NewGenericExtractor(p.sourceFetcher(save.SourceTypeOtherURL)),
	}

	return p
}

func (p *Parser) sourceFetcher(sourceType save.SourceType) *Fetcher {
	f := p.fetcher.WithTimeout(p.settings.SourceTimeout(sourceType))
	return f.WithUserAgent(p.settings.SourceUserAgent(sourceType))
}

// NormalizeURL trims the input and prefixes https:// when the scheme is
// missing, matching what the paste handler accepts.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}
	return rawURL
}

// ValidURL reports whether the normalized string is a usable absolute URL.
func ValidURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Run parses a URL end to end: normalize, classify, dispatch. It always
// returns a ParsedLink; extractor panics and failures are converted to
// failed results so a bad page can never take down the request.
func (p *Parser) Run(ctx context.Context, rawURL string) (result save.ParsedLink) {
	normalized := NormalizeURL(rawURL)
	if normalized == "" {
		return save.Failed(save.SourceTypeOtherURL, "No URL provided")
	}
	if !ValidURL(normalized) {
		return save.Failed(save.SourceTypeOtherURL, "Invalid URL")
	}

	sourceType := Classify(normalized)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Extractor panic recovered", "url", normalized, "source_type", sourceType, "panic", r)
			result = save.Failed(sourceType, fmt.Sprintf("extraction failed: %v", r))
		}
	}()

	if !p.settings.SourceEnabled(sourceType) {
		return save.Failed(sourceType, fmt.Sprintf("source '%s' is disabled", sourceType))
	}

	extractor, ok := p.extractors[sourceType]
	if !ok {
		extractor = p.extractors[save.SourceTypeOtherURL]
	}

	started := time.Now()
	result = extractor.Extract(ctx, normalized)

	logArgs := []any{"url", normalized, "source_type", result.SourceType, "success", result.Success, "duration", time.Since(started).String()}
	if result.Error != nil {
		logArgs = append(logArgs, "note", *result.Error)
	}
	slog.Debug("Link parsed", logArgs...)

	return result
}
