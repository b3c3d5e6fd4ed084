package database

import (
	"time"

	"github.com/driftapp/drift-parse/app/save"
)

type ParsedLinkRepository interface {
	Get(url string) (*CachedLink, error)
	Put(url string, link save.ParsedLink, ttl time.Duration) error
	Touch(url string) error
	PurgeExpired() (int64, error)
	Expiring(within time.Duration, limit int) ([]CachedLink, error)
	Stats() (CacheStats, error)
}
