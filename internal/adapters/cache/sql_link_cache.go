package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"rapidaid-dashboard-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLLinkCache is a Postgres-backed cache of short link expansions, used
// when no Redis is configured. Rows older than TTL are ignored (zero keeps them).
type SQLLinkCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLLinkCache(db *sql.DB, ttl time.Duration) *SQLLinkCache {
	return &SQLLinkCache{DB: db, TTL: ttl}
}

// Fetch cached expansions for the given links.
func (s *SQLLinkCache) GetMany(
	ctx context.Context,
	links []string,
) (_ map[string]string, err error) {
	defer obs.Time(ctx, "link.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("link cache: db is nil")
	}

	uniq := uniqueLinks(links)
	if len(uniq) == 0 {
		return map[string]string{}, nil
	}

	cutoff := expiryCutoff(time.Now(), s.TTL)

	q := `
	SELECT link, expanded
	FROM link_cache
	WHERE link = ANY($1::text[]) AND cached_at >= $2;
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq, cutoff)
	if err != nil {
		return nil, fmt.Errorf("get link cache: query link_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string, len(uniq))
	for rows.Next() {
		var link, expanded string
		if err := rows.Scan(&link, &expanded); err != nil {
			return nil, fmt.Errorf("get link cache: scan rows: %w", err)
		}
		out[link] = expanded
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get link cache: row iteration: %w", err)
	}

	return out, nil
}

// Store short link -> expanded link mappings in the cache.
func (s *SQLLinkCache) PutMany(ctx context.Context, results map[string]string) (err error) {
	defer obs.Time(ctx, "link.cache.PutMany")(&err)

	if s.DB == nil {
		return errors.New("link cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert link cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO link_cache (link, expanded, cached_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (link) DO UPDATE
	SET expanded = EXCLUDED.expanded,
		cached_at = EXCLUDED.cached_at;
	`)
	if err != nil {
		return fmt.Errorf("insert link cache: db prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for link, expanded := range results {
		link = strings.TrimSpace(link)
		if link == "" {
			return errors.New("insert link cache: empty link key")
		}
		if strings.TrimSpace(expanded) == "" {
			return fmt.Errorf("insert link cache link=%q: empty expansion", link)
		}

		if _, err := stmt.ExecContext(ctx, link, expanded, now); err != nil {
			return fmt.Errorf("insert link cache link=%q: %w", link, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert link cache commit: %w", err)
	}

	return nil
}

// expiryCutoff is the oldest cached_at still served. A non-positive TTL
// keeps entries forever, so the zero time admits every row.
func expiryCutoff(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(-ttl).UTC()
}
