package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/driftapp/drift-parse/app/save"
)

var _ ParsedLinkRepository = (*ParsedLinkRepositoryImpl)(nil)

type ParsedLinkRepositoryImpl struct {
	db *DB
}

func NewParsedLinkRepository(db *DB) *ParsedLinkRepositoryImpl {
	return &ParsedLinkRepositoryImpl{db: db}
}

// Get returns the cached parse result for a URL, or nil when absent.
// Expired rows are returned too; callers decide whether to serve them.
func (r *ParsedLinkRepositoryImpl) Get(url string) (*CachedLink, error) {
	row := r.db.QueryRow(`
		SELECT url, source_type, payload, hit_count, fetched_at, expires_at
		FROM parsed_links
		WHERE url = $1
	`, url)

	var cached CachedLink
	var payload string
	err := row.Scan(&cached.URL, &cached.SourceType, &payload, &cached.HitCount, &cached.FetchedAt, &cached.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached link: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &cached.Link); err != nil {
		return nil, fmt.Errorf("failed to decode cached link payload: %w", err)
	}

	return &cached, nil
}

// Put stores a parse result, replacing any previous row for the URL.
func (r *ParsedLinkRepositoryImpl) Put(url string, link save.ParsedLink, ttl time.Duration) error {
	payload, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to encode link payload: %w", err)
	}

	now := time.Now().UTC()
	success := 0
	if link.Success {
		success = 1
	}

	_, err = r.db.Exec(`
		INSERT INTO parsed_links (url, source_type, payload, success, hit_count, fetched_at, expires_at)
		VALUES ($1, $2, $3, $4, 0, $5, $6)
		ON CONFLICT (url) DO UPDATE SET
			source_type = EXCLUDED.source_type,
			payload = EXCLUDED.payload,
			success = EXCLUDED.success,
			fetched_at = EXCLUDED.fetched_at,
			expires_at = EXCLUDED.expires_at
	`, url, string(link.SourceType), string(payload), success, now, now.Add(ttl))

	if err != nil {
		return fmt.Errorf("failed to store cached link: %w", err)
	}

	return nil
}

// Touch bumps the hit counter; popular links are refreshed before expiry.
func (r *ParsedLinkRepositoryImpl) Touch(url string) error {
	_, err := r.db.Exec(`
		UPDATE parsed_links SET hit_count = hit_count + 1 WHERE url = $1
	`, url)

	if err != nil {
		return fmt.Errorf("failed to touch cached link: %w", err)
	}

	return nil
}

// PurgeExpired deletes rows past their expiry and reports how many.
func (r *ParsedLinkRepositoryImpl) PurgeExpired() (int64, error) {
	result, err := r.db.Exec(`
		DELETE FROM parsed_links WHERE expires_at <= $1
	`, time.Now().UTC())

	if err != nil {
		return 0, fmt.Errorf("failed to purge expired links: %w", err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged links: %w", err)
	}

	return purged, nil
}

// Expiring returns the most-hit successful entries expiring within the
// window, candidates for background refresh.
func (r *ParsedLinkRepositoryImpl) Expiring(within time.Duration, limit int) ([]CachedLink, error) {
	now := time.Now().UTC()

	rows, err := r.db.Query(`
		SELECT url, source_type, payload, hit_count, fetched_at, expires_at
		FROM parsed_links
		WHERE success = 1 AND hit_count > 0 AND expires_at > $1 AND expires_at <= $2
		ORDER BY hit_count DESC
		LIMIT $3
	`, now, now.Add(within), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring links: %w", err)
	}
	defer rows.Close()

	var links []CachedLink
	for rows.Next() {
		var cached CachedLink
		var payload string
		if err := rows.Scan(&cached.URL, &cached.SourceType, &payload, &cached.HitCount, &cached.FetchedAt, &cached.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan expiring link: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &cached.Link); err != nil {
			return nil, fmt.Errorf("failed to decode cached link payload: %w", err)
		}
		links = append(links, cached)
	}

	return links, rows.Err()
}

// Stats aggregates cache counts for the stats endpoint.
func (r *ParsedLinkRepositoryImpl) Stats() (CacheStats, error) {
	stats := CacheStats{BySource: map[string]int{}}

	rows, err := r.db.Query(`
		SELECT source_type, COUNT(*) FROM parsed_links GROUP BY source_type
	`)
	if err != nil {
		return stats, fmt.Errorf("failed to query cache stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sourceType string
		var count int
		if err := rows.Scan(&sourceType, &count); err != nil {
			return stats, fmt.Errorf("failed to scan cache stats: %w", err)
		}
		stats.BySource[sourceType] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	err = r.db.QueryRow(`
		SELECT COUNT(*) FROM parsed_links WHERE expires_at <= $1
	`, time.Now().UTC()).Scan(&stats.Expired)
	if err != nil {
		return stats, fmt.Errorf("failed to count expired links: %w", err)
	}

	return stats, nil
}
