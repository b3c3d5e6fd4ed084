package linkparse

import (
	"context"
	"regexp"

	"github.com/driftapp/drift-parse/app/save"
)

const instagramNotice = "Instagram content detected. Please add details manually."

var (
	// Instagram OG titles look like `Name on Instagram: "caption"`.
	instagramCaptionRe = regexp.MustCompile(`(?s)on Instagram:\s*[“”'"](.+?)[“”'"]`)
	// Captions often end with `at Some Place.` which is the only
	// location signal the platform exposes.
	instagramPlaceRe = regexp.MustCompile(`at\s+([^.]+?)\.`)
)

// InstagramExtractor scrapes Open Graph tags. Instagram aggressively
// blocks unauthenticated scraping, so every failure degrades to a
// partial success asking the user to fill the form in.
type InstagramExtractor struct {
	fetcher *Fetcher
}

func NewInstagramExtractor(fetcher *Fetcher) *InstagramExtractor {
	return &InstagramExtractor{fetcher: fetcher}
}

func (e *InstagramExtractor) Extract(ctx context.Context, rawURL string) save.ParsedLink {
	data, _, err := e.fetcher.Page(ctx, rawURL)
	if err != nil {
		return save.Partial(save.SourceTypeInstagram, instagramNotice)
	}

	doc, err := parseDocument(data)
	if err != nil {
		return save.Partial(save.SourceTypeInstagram, instagramNotice)
	}

	meta := extractMetadata(doc)
	title := meta.Title()
	description := meta.Description()

	if m := instagramCaptionRe.FindStringSubmatch(title); m != nil {
		title = m[1]
	}

	var locationName *string
	if m := instagramPlaceRe.FindStringSubmatch(description); m != nil {
		locationName = optional(m[1], maxTitleLength)
	}

	if title == "" && description == "" {
		return save.Partial(save.SourceTypeInstagram, instagramNotice)
	}

	return save.ParsedLink{
		Success:      true,
		SourceType:   save.SourceTypeInstagram,
		Title:        optional(title, maxTitleLength),
		Description:  optional(description, maxDescriptionLength),
		LocationName: locationName,
		ImageURL:     optional(meta.Image(), maxURLLength),
		Category:     categoryOrNil(InferCategory(title + " " + description)),
	}
}
