// Package cache provides the Redis-backed cache layer shared by the
// caching repository decorators. The store is an optimization only:
// every operation degrades to a pass-through miss when the backend is
// unavailable, so correctness never depends on it.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// notFoundMarker is the value stored for negative entries. It is not
// valid JSON for any cached entity, so it can never collide with a
// real value.
const notFoundMarker = "__not_found__"

// Result describes the outcome of a cache probe.
type Result int

const (
	// Miss means the key is absent or the backend was unreachable.
	Miss Result = iota
	// Hit means dest was populated from the cache.
	Hit
	// HitNotFound means a negative entry was cached for the key: the
	// authoritative store recently answered "no such record".
	HitNotFound
)

// Stats is the read-only operational view of the store.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int64  `json:"entries"`
}

// Store wraps a Redis client with JSON serialization, negative
// entries, prefix invalidation and hit/miss counters. A nil client is
// allowed and turns every operation into a no-op miss.
type Store struct {
	rdb    *redis.Client
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewStore creates a Store over the given client. rdb may be nil.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get probes the cache and unmarshals a hit into dest. Corrupted
// entries are deleted and reported as a miss. Backend errors are
// logged and reported as a miss.
func (s *Store) Get(ctx context.Context, key string, dest any) Result {
	if s.rdb == nil {
		return Miss
	}

	b, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("cache get failed, treating as miss", "key", key, "error", err)
		}
		s.misses.Add(1)
		return Miss
	}

	if string(b) == notFoundMarker {
		s.hits.Add(1)
		return HitNotFound
	}

	if err := json.Unmarshal(b, dest); err != nil {
		// Never serve a half-written or stale-format value.
		_ = s.rdb.Del(ctx, key).Err()
		s.misses.Add(1)
		return Miss
	}

	s.hits.Add(1)
	return Hit
}

// Set stores val under key for ttl, best effort.
func (s *Store) Set(ctx context.Context, key string, val any, ttl time.Duration) {
	if s.rdb == nil || ttl <= 0 {
		return
	}
	b, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
}

// SetNotFound stores a negative entry under key. Negative entries use
// a markedly shorter TTL than positive ones to blunt repeated-miss
// storms without delaying a later insert for long.
func (s *Store) SetNotFound(ctx context.Context, key string, ttl time.Duration) {
	if s.rdb == nil || ttl <= 0 {
		return
	}
	if err := s.rdb.Set(ctx, key, notFoundMarker, ttl).Err(); err != nil {
		slog.Warn("cache negative set failed", "key", key, "error", err)
	}
}

// Delete removes the given keys, best effort.
func (s *Store) Delete(ctx context.Context, keys ...string) {
	if s.rdb == nil || len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache delete failed", "keys", keys, "error", err)
	}
}

// DeleteByPrefix removes every key under a class-scoped prefix using
// SCAN so that stale list pages cannot be served after a write. A
// failure is logged, not surfaced: the entry self-heals at TTL expiry.
func (s *Store) DeleteByPrefix(ctx context.Context, prefix string) {
	if s.rdb == nil || prefix == "" {
		return
	}
	pattern := prefix + "*"
	var cursor uint64
	for {
		keys, cur, err := s.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			slog.Warn("cache invalidation scan failed", "pattern", pattern, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("cache invalidation delete failed", "pattern", pattern, "error", err)
				return
			}
		}
		cursor = cur
		if cursor == 0 {
			return
		}
	}
}

// Stats returns hit/miss counters and the current entry count.
func (s *Store) Stats(ctx context.Context) Stats {
	st := Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
	}
	if s.rdb != nil {
		if n, err := s.rdb.DBSize(ctx).Result(); err == nil {
			st.Entries = n
		}
	}
	return st
}

// Key joins namespace segments into a cache key. Segments are escaped
// so that distinct identifiers never collide.
func Key(parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		escaped = append(escaped, safe(p))
	}
	return strings.Join(escaped, ":")
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
