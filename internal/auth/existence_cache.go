package auth

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/observability"
)

const (
	DefaultExistenceTTL     = 5 * time.Minute
	DefaultExistenceMaxSize = 10000

	// Smallest capacity for which cleanup leaves the cache strictly below capacity.
	minExistenceMaxSize = 3

	// Upper bound on a shared fallback call once it is detached from the caller's deadline.
	sharedLookupTimeout = 10 * time.Second

	// Occupancy above which cleanup also drops the oldest half of the live entries.
	oldestEvictionThreshold = 0.9
)

// ExistenceFunc asks the backing store whether a principal still exists.
type ExistenceFunc func(ctx context.Context) (bool, error)

// ExistenceCache memoizes "does (role, subject) still exist" answers for a short TTL.
//
// It is safe for concurrent use. Reads go straight to the underlying cache; writes
// and capacity cleanup are serialized. Concurrent misses on the same key share a
// single fallback call; each caller waits on its own context, and the shared call is
// cancelled only once every waiter has gone. A failed fallback is never cached, so
// the next request retries it. Expiry and capacity are enforced lazily on write;
// there is no sweeper. Capacities below 3 are raised to 3.
type ExistenceCache struct {
	items   *gocache.Cache
	ttl     time.Duration
	maxSize int

	writeMu sync.Mutex
	calls   singleflight.Group
	metrics *observability.Metrics

	flightsMu sync.Mutex
	flights   map[string]*flight
}

// flight is the context of one shared fallback call and the number of callers waiting on it.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// NewExistenceCache constructs a cache. Non-positive arguments fall back to defaults.
func NewExistenceCache(ttl time.Duration, maxSize int, metrics *observability.Metrics) *ExistenceCache {
	if ttl <= 0 {
		ttl = DefaultExistenceTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultExistenceMaxSize
	}
	if maxSize < minExistenceMaxSize {
		maxSize = minExistenceMaxSize
	}
	return &ExistenceCache{
		items:   gocache.New(ttl, 0),
		ttl:     ttl,
		maxSize: maxSize,
		metrics: metrics,
		flights: make(map[string]*flight),
	}
}

// CheckExists returns the cached answer for (role, subjectID) while it is younger than
// the TTL, otherwise runs fallback, caches its result and returns it.
func (c *ExistenceCache) CheckExists(ctx context.Context, role domain.Role, subjectID int64, fallback ExistenceFunc) (bool, error) {
	key := existenceKey(role, subjectID)
	if cached, ok := c.items.Get(key); ok {
		if exists, ok := cached.(bool); ok {
			c.metrics.RecordCacheLookup(true)
			return exists, nil
		}
	}
	c.metrics.RecordCacheLookup(false)

	f, results := c.join(ctx, key, fallback)
	defer c.leave(key, f)

	select {
	case res := <-results:
		if res.Err != nil {
			return false, res.Err
		}
		return res.Val.(bool), nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// join registers the caller on the in-flight lookup for key, starting one if needed.
// The lookup runs on a context detached from any single caller.
func (c *ExistenceCache) join(ctx context.Context, key string, fallback ExistenceFunc) (*flight, <-chan singleflight.Result) {
	c.flightsMu.Lock()
	defer c.flightsMu.Unlock()

	f, ok := c.flights[key]
	if !ok {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		f = &flight{ctx: shared, cancel: cancel}
		c.flights[key] = f
	}
	f.waiters++

	results := c.calls.DoChan(key, func() (interface{}, error) {
		exists, err := fallback(f.ctx)
		if err != nil {
			return false, err
		}
		c.store(key, exists)
		return exists, nil
	})
	return f, results
}

// leave drops the caller from f. The last caller out cancels the shared lookup and
// forgets it so later callers start a fresh one.
func (c *ExistenceCache) leave(key string, f *flight) {
	c.flightsMu.Lock()
	defer c.flightsMu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	if c.flights[key] == f {
		delete(c.flights, key)
	}
	c.calls.Forget(key)
	f.cancel()
}

// Invalidate drops the entry for (role, subjectID) so the next lookup hits the store.
func (c *ExistenceCache) Invalidate(role domain.Role, subjectID int64) {
	c.items.Delete(existenceKey(role, subjectID))
	c.metrics.SetCacheEntries(c.items.ItemCount())
}

// Len reports how many entries are held, including ones not yet swept after expiry.
func (c *ExistenceCache) Len() int {
	return c.items.ItemCount()
}

// TTL returns the freshness window.
func (c *ExistenceCache) TTL() time.Duration {
	return c.ttl
}

func (c *ExistenceCache) store(key string, exists bool) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.items.ItemCount() >= c.maxSize {
		c.cleanup()
	}
	c.items.Set(key, exists, gocache.DefaultExpiration)
	c.metrics.SetCacheEntries(c.items.ItemCount())
}

// cleanup runs in two phases: drop every expired entry, then, if occupancy is
// still above 90% of capacity, drop the older half by insertion time. This is
// an approximation of LRU, not LRU. Callers hold writeMu.
func (c *ExistenceCache) cleanup() {
	before := c.items.ItemCount()
	c.items.DeleteExpired()
	remaining := c.items.ItemCount()
	c.metrics.RecordCacheEviction("expired", before-remaining)

	if float64(remaining) <= float64(c.maxSize)*oldestEvictionThreshold {
		return
	}

	live := c.items.Items()
	entries := make([]agedKey, 0, len(live))
	for key, item := range live {
		// Every entry shares one TTL, so expiration order is insertion order.
		entries = append(entries, agedKey{key: key, expiration: item.Expiration})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].expiration < entries[j].expiration
	})

	drop := (len(entries) + 1) / 2
	for _, entry := range entries[:drop] {
		c.items.Delete(entry.key)
	}
	c.metrics.RecordCacheEviction("oldest", drop)
}

type agedKey struct {
	key        string
	expiration int64
}

func existenceKey(role domain.Role, subjectID int64) string {
	return string(role) + ":" + strconv.FormatInt(subjectID, 10)
}
