package linkparse

import (
	"context"
	"fmt"
	"strings"

	"github.com/driftapp/drift-parse/app/save"
)

// RedditExtractor uses the public JSON listing endpoint: appending .json
// to any post URL returns the post data without scraping HTML. Reddit
// exposes no location signal, so only title/description are mapped.
type RedditExtractor struct {
	fetcher *Fetcher
}

func NewRedditExtractor(fetcher *Fetcher) *RedditExtractor {
	return &RedditExtractor{fetcher: fetcher}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title    string `json:"title"`
				Selftext string `json:"selftext"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (e *RedditExtractor) Extract(ctx context.Context, rawURL string) save.ParsedLink {
	jsonURL := strings.TrimRight(rawURL, "/") + ".json"

	var listings []redditListing
	if err := e.fetcher.JSON(ctx, jsonURL, &listings); err != nil {
		return save.Failed(save.SourceTypeReddit, fmt.Sprintf("could not fetch post data: %v", err))
	}

	if len(listings) == 0 || len(listings[0].Data.Children) == 0 {
		return save.Failed(save.SourceTypeReddit, "could not parse post data")
	}

	post := listings[0].Data.Children[0].Data
	if post.Title == "" && post.Selftext == "" {
		return save.Failed(save.SourceTypeReddit, "post carries no usable metadata")
	}

	return save.ParsedLink{
		Success:     true,
		SourceType:  save.SourceTypeReddit,
		Title:       optional(post.Title, maxTitleLength),
		Description: optional(post.Selftext, maxDescriptionLength),
		Category:    categoryOrNil(InferCategory(post.Title + " " + post.Selftext)),
	}
}
