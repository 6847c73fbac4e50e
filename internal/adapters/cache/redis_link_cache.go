package cache

import (
	"context"
	"errors"
	"fmt"
	"rapidaid-dashboard-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const linkKeyPrefix = "rapidaid:link:"

// RedisLinkCache is a Redis-backed cache mapping short location links to the
// full links they expand to. Entries expire after TTL (zero keeps them).
type RedisLinkCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisLinkCache(client *redis.Client, ttl time.Duration) *RedisLinkCache {
	return &RedisLinkCache{Client: client, TTL: ttl}
}

// Fetch cached expansions for the given links.
func (c *RedisLinkCache) GetMany(
	ctx context.Context,
	links []string,
) (_ map[string]string, err error) {
	defer obs.Time(ctx, "link.cache.GetMany")(&err)

	if c.Client == nil {
		return nil, errors.New("link cache: client is nil")
	}

	uniq := uniqueLinks(links)
	if len(uniq) == 0 {
		return map[string]string{}, nil
	}

	keys := make([]string, 0, len(uniq))
	for _, l := range uniq {
		keys = append(keys, linkKeyPrefix+l)
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get link cache: mget: %w", err)
	}

	out := make(map[string]string, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("get link cache: link=%q: empty cached value", uniq[i])
		}
		out[uniq[i]] = s
	}

	return out, nil
}

// Store short link -> expanded link mappings in the cache.
func (c *RedisLinkCache) PutMany(ctx context.Context, results map[string]string) (err error) {
	defer obs.Time(ctx, "link.cache.PutMany")(&err)

	if c.Client == nil {
		return errors.New("link cache: client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := c.Client.TxPipeline()
	for link, expanded := range results {
		link = strings.TrimSpace(link)
		if link == "" {
			return errors.New("insert link cache: empty link key")
		}
		if strings.TrimSpace(expanded) == "" {
			return fmt.Errorf("insert link cache link=%q: empty expansion", link)
		}
		pipe.Set(ctx, linkKeyPrefix+link, expanded, c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert link cache: exec pipeline: %w", err)
	}

	return nil
}

func uniqueLinks(links []string) []string {
	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(links))
	for _, l := range links {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		uniq = append(uniq, l)
	}
	return uniq
}
