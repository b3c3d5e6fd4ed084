package database

import (
	"time"

	"github.com/driftapp/drift-parse/app/save"
)

// CachedLink is a stored parse result keyed by normalized URL.
type CachedLink struct {
	URL        string
	SourceType save.SourceType
	Link       save.ParsedLink
	HitCount   int
	FetchedAt  time.Time
	ExpiresAt  time.Time
}

func (c *CachedLink) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// CacheStats summarizes the cache for the /stats endpoint.
type CacheStats struct {
	Total    int            `json:"total"`
	Expired  int            `json:"expired"`
	BySource map[string]int `json:"by_source"`
}
