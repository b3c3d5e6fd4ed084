package linkparse

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/driftapp/drift-parse/app/save"
)

const tiktokNotice = "TikTok content detected. Please add details manually."

var (
	tiktokSuffixRe = regexp.MustCompile(`\s*\|\s*TikTok.*$`)
	tiktokPrefixRe = regexp.MustCompile(`^.+?\s+on\s+TikTok\s*`)
)

// TikTokExtractor scrapes Open Graph tags plus the hydration JSON TikTok
// embeds in its pages, which carries the caption and hashtag challenges.
// Like Instagram, fetch failures degrade to a manual-entry notice.
type TikTokExtractor struct {
	fetcher *Fetcher
}

func NewTikTokExtractor(fetcher *Fetcher) *TikTokExtractor {
	return &TikTokExtractor{fetcher: fetcher}
}

func (e *TikTokExtractor) Extract(ctx context.Context, rawURL string) save.ParsedLink {
	data, _, err := e.fetcher.Page(ctx, rawURL)
	if err != nil {
		return save.Partial(save.SourceTypeTikTok, tiktokNotice)
	}

	doc, err := parseDocument(data)
	if err != nil {
		return save.Partial(save.SourceTypeTikTok, tiktokNotice)
	}

	meta := extractMetadata(doc)
	title := meta.Title()
	description := meta.Description()

	if caption, tags := e.hydrationCaption(doc); caption != "" {
		description = caption
		if title == "" {
			title = truncateRunes(strings.SplitN(caption, "\n", 2)[0], 100)
		}
		if tags != "" {
			description = description + " " + tags
		}
	}

	if title != "" {
		title = strings.TrimSpace(tiktokSuffixRe.ReplaceAllString(title, ""))
		title = strings.TrimSpace(tiktokPrefixRe.ReplaceAllString(title, ""))
	}

	if title == "" && description == "" {
		return save.Partial(save.SourceTypeTikTok, tiktokNotice)
	}

	return save.ParsedLink{
		Success:     true,
		SourceType:  save.SourceTypeTikTok,
		Title:       optional(title, maxTitleLength),
		Description: optional(description, maxDescriptionLength),
		ImageURL:    optional(meta.Image(), maxURLLength),
		Category:    categoryOrNil(InferCategory(title + " " + description)),
	}
}

// hydrationCaption digs the video caption and challenge titles out of the
// __UNIVERSAL_DATA_FOR_REHYDRATION__ script block.
func (e *TikTokExtractor) hydrationCaption(doc *goquery.Document) (caption, tags string) {
	doc.Find(`script#__UNIVERSAL_DATA_FOR_REHYDRATION__`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var payload map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return true
		}

		item, ok := digMap(payload, "__DEFAULT_SCOPE__", "webapp.video-detail", "itemInfo", "itemStruct")
		if !ok {
			return true
		}

		caption = jsonLDString(item, "desc")

		if challenges, ok := item["challenges"].([]any); ok {
			titles := make([]string, 0, len(challenges))
			for _, challenge := range challenges {
				if c, ok := challenge.(map[string]any); ok {
					if t := jsonLDString(c, "title"); t != "" {
						titles = append(titles, t)
					}
				}
			}
			tags = strings.Join(titles, " ")
		}

		return false
	})

	return caption, tags
}

// digMap walks nested JSON maps by key.
func digMap(m map[string]any, keys ...string) (map[string]any, bool) {
	current := m
	for _, key := range keys {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}
