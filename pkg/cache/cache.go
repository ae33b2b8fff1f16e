// Package cache provides schedule memoization for the Slackline server.
//
// Computing a CPM schedule is cheap, but the HTTP API recomputes on every
// request; the cache short-circuits repeated requests for the same (tasks,
// overrides) snapshot. Three backends are provided:
//   - file: local cache directory for single-instance deployments
//   - redis: shared cache for multi-instance deployments
//   - null: caching disabled (testing, --no-cache)
//
// Keys are derived from a SHA-256 hash of the canonical JSON encoding of the
// inputs, so identical snapshots hit the same entry regardless of origin.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is the default lifetime of cached schedules. Schedules are
// deterministic, so the TTL exists only to bound cache growth.
const DefaultTTL = 24 * time.Hour

// ScheduleKey builds the cache key for a schedule computation from the
// canonical encoding of its inputs.
func ScheduleKey(tasks any, overrides map[string]float64) string {
	return hashKey("schedule", tasks, overrides)
}
