package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"mdblog/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyListPrefix = "article:list:"

// ListEntry is one cached article list page together with the pagination
// fields computed for it.
type ListEntry struct {
	Items      []domain.Article `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
}

// ArticleCache caches article list pages in Redis. Entries are keyed by
// the full query (search, order, requested page) and dropped wholesale on
// any article write.
type ArticleCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewArticleCache(rdb *redis.Client, ttl time.Duration) *ArticleCache {
	return &ArticleCache{rdb: rdb, ttl: ttl}
}

// ListKey builds the cache key for a list query. Pages below 1 clamp to
// page 1 so out-of-range requests share one entry instead of growing the
// key space.
func ListKey(search, order string, page int) string {
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf("%s%s:%d:%s", keyListPrefix, order, page, strings.ToLower(strings.TrimSpace(search)))
}

// GetList returns the cached page or nil on miss.
func (c *ArticleCache) GetList(ctx context.Context, key string) (*ListEntry, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var e ListEntry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// SetList stores the page in cache.
func (c *ArticleCache) SetList(ctx context.Context, key string, e ListEntry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// InvalidateLists removes every cached list page (cache invalidation on write).
func (c *ArticleCache) InvalidateLists(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyListPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
