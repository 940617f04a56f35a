package shifts

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

// cacheEntry is one cached window expansion.
type cacheEntry struct {
	occurrences []Occurrence
	expiresAt   time.Time
	accessedAt  time.Time
}

// Cache memoizes window expansions. Expansion is deterministic, so a cached
// result is exactly the result a fresh expansion would produce until the
// underlying rotations change; callers invalidate by Close/recreate or by
// letting entries expire.
type Cache struct {
	entries         map[string]*cacheEntry
	mutex           sync.RWMutex
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// CacheConfig holds cache tuning knobs.
type CacheConfig struct {
	TTL             time.Duration // how long entries stay valid
	MaxEntries      int           // maximum entries before eviction
	CleanupInterval time.Duration // how often expired entries are swept
}

// DefaultCacheConfig provides sensible defaults for a sync-polling frontend.
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute,
	MaxEntries:      1000,
	CleanupInterval: 5 * time.Minute,
}

// NewCache creates a Cache and starts its cleanup goroutine. Call Close when
// done.
func NewCache(config CacheConfig) *Cache {
	c := &Cache{
		entries:         make(map[string]*cacheEntry),
		ttl:             config.TTL,
		maxEntries:      config.MaxEntries,
		cleanupInterval: config.CleanupInterval,
		stopCleanup:     make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// cacheKey hashes everything the expansion result depends on.
func cacheKey(rotations []Rotation, settings Settings, window Window) string {
	hasher := sha256.New()

	fmt.Fprintf(hasher, "window:%d-%d;", window.Start.UnixMilli(), window.End.UnixMilli())
	fmt.Fprintf(hasher, "settings:%s-%v;", settings.EventColor, settings.UseUserColors)
	for _, id := range settings.UserIDs {
		hasher.Write([]byte(id + ","))
	}

	for _, rotation := range rotations {
		fmt.Fprintf(hasher, "rot:%s,%s,%s,%d,%s,%d;",
			rotation.ID, rotation.IntegrationID, rotation.Name,
			rotation.CycleWeeks, rotation.Color, rotation.Order)
		for _, slot := range rotation.Slots {
			fmt.Fprintf(hasher, "slot:%s,%d,%d,%s,%s,%s,%d;",
				slot.ID, slot.WeekIndex, slot.DayOfWeek,
				slot.StartTime, slot.EndTime, slot.Label, slot.Order)
		}
		for _, assignment := range rotation.Assignments {
			fmt.Fprintf(hasher, "asg:%s,%s,%d,", assignment.ID, assignment.UserID, assignment.StartDate.UnixMilli())
			if end, ok := assignment.EndDate.Get(); ok {
				hasher.Write([]byte(strconv.FormatInt(end.UnixMilli(), 10)))
			}
			hasher.Write([]byte(";"))
		}
	}

	return fmt.Sprintf("%x", hasher.Sum(nil))
}

// Get returns a cached expansion if present and unexpired.
func (c *Cache) Get(rotations []Rotation, settings Settings, window Window) ([]Occurrence, bool) {
	key := cacheKey(rotations, settings, window)

	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, false
	}

	now := time.Now()
	if now.After(entry.expiresAt) {
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		return nil, false
	}

	c.mutex.Lock()
	entry.accessedAt = now
	c.mutex.Unlock()

	return entry.occurrences, true
}

// Set stores an expansion result.
func (c *Cache) Set(rotations []Rotation, settings Settings, window Window, occurrences []Occurrence) {
	key := cacheKey(rotations, settings, window)
	now := time.Now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = &cacheEntry{
		occurrences: occurrences,
		expiresAt:   now.Add(c.ttl),
		accessedAt:  now,
	}
	if len(c.entries) > c.maxEntries {
		c.cleanup()
	}
}

// cleanup removes expired entries, then the least recently accessed entries
// while still over the limit. Callers hold the write lock.
func (c *Cache) cleanup() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}

	if len(c.entries) <= c.maxEntries {
		return
	}

	type keyAccess struct {
		key        string
		accessedAt time.Time
	}
	ordered := make([]keyAccess, 0, len(c.entries))
	for key, entry := range c.entries {
		ordered = append(ordered, keyAccess{key: key, accessedAt: entry.accessedAt})
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].accessedAt.Before(ordered[j].accessedAt)
	})

	entriesToRemove := len(c.entries) - c.maxEntries
	for i := 0; i < entriesToRemove && i < len(ordered); i++ {
		delete(c.entries, ordered[i].key)
	}
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.cleanup()
			c.mutex.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

// Close stops the cleanup goroutine and clears the cache.
func (c *Cache) Close() {
	close(c.stopCleanup)
	c.mutex.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mutex.Unlock()
}

// Stats reports cache occupancy.
func (c *Cache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	stats := CacheStats{TotalEntries: len(c.entries)}
	now := time.Now()
	for _, entry := range c.entries {
		if now.After(entry.expiresAt) {
			stats.ExpiredEntries++
		}
	}
	stats.ActiveEntries = stats.TotalEntries - stats.ExpiredEntries
	return stats
}

// CacheStats describes cache contents at a point in time.
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
}

// ExpandCached is Expand behind the cache: it returns a memoized result when
// one exists and stores the freshly computed one otherwise.
func (e *Expander) ExpandCached(cache *Cache, rotations []Rotation, settings Settings, window Window) []Occurrence {
	if cache == nil {
		return e.Expand(rotations, settings, window)
	}
	if occurrences, ok := cache.Get(rotations, settings, window); ok {
		return occurrences
	}
	occurrences := e.Expand(rotations, settings, window)
	cache.Set(rotations, settings, window, occurrences)
	return occurrences
}
