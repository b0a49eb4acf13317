// Package reccache is the TTL-keyed recommendation cache over the KV store.
package reccache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scentdex/internal/db"
	"github.com/kailas-cloud/scentdex/internal/domain/recommend"
	"github.com/kailas-cloud/scentdex/internal/logger"
)

const keyPrefix = "scentdex:rec_cache:"

// store is the consumer interface for the cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Cache maps (requester context, strategy, limit) to computed recommendation
// sets. Entries are overwritten atomically on recomputation and never served
// past their expiry.
type Cache struct {
	store      store
	cacheTotal *prometheus.CounterVec
	now        func() time.Time
}

// New creates a recommendation cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"/"stale").
func New(s store, cacheTotal *prometheus.CounterVec) *Cache {
	return &Cache{store: s, cacheTotal: cacheTotal, now: time.Now}
}

// WithClock overrides the clock (test-only).
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Key derives the stable cache key for a request: a SHA-256 over the
// normalized quiz answers (or the user identity), the strategy, and the
// result limit. UserKeyPrefix groups a user's entries for invalidation.
func (c *Cache) Key(req *recommend.Request) string {
	var identity string
	if req.Responses() != nil {
		identity = req.Responses().NormalizedKey()
	} else {
		identity = "user:" + req.UserID()
	}

	h := sha256.Sum256([]byte(
		identity + "|" + string(req.Strategy()) + "|" + strconv.Itoa(req.Limit()),
	))
	return keyPrefix + hex.EncodeToString(h[:])
}

// Get returns the cached result for a key. A hit past its expiry is treated
// as a miss and the stale entry is evicted.
func (c *Cache) Get(ctx context.Context, key string) (recommend.Result, bool) {
	log := logger.FromContext(ctx)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			log.Warn("failed to read recommendation cache", zap.String("key", key), zap.Error(err))
		}
		c.inc("miss")
		return recommend.Result{}, false
	}

	var entry cachedEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Warn("failed to parse cached recommendations", zap.String("key", key), zap.Error(err))
		c.inc("miss")
		return recommend.Result{}, false
	}

	// The store's TTL already bounds the entry lifetime; the explicit check
	// covers stores without native expiry and clock-skewed entries.
	if c.now().After(entry.ExpiresAt) {
		if err := c.store.Del(ctx, key); err != nil {
			log.Warn("failed to evict stale cache entry", zap.String("key", key), zap.Error(err))
		}
		c.inc("stale")
		return recommend.Result{}, false
	}

	c.inc("hit")
	return fromEntry(entry), true
}

// Put writes a result through to the cache, atomically replacing any
// existing entry under the key.
func (c *Cache) Put(ctx context.Context, key string, result *recommend.Result, ttl time.Duration) error {
	createdAt := c.now()
	entry := toEntry(result, createdAt, createdAt.Add(ttl))

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := c.store.SetWithTTL(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Invalidate removes every entry under the cache prefix. Used when the
// upstream catalog changes and precomputed sets go stale wholesale.
func (c *Cache) Invalidate(ctx context.Context) (int, error) {
	keys, err := c.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return 0, fmt.Errorf("scan cache keys: %w", err)
	}

	removed := 0
	for _, key := range keys {
		if err := c.store.Del(ctx, key); err != nil {
			return removed, fmt.Errorf("delete cache key: %w", err)
		}
		removed++
	}
	return removed, nil
}

func (c *Cache) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
