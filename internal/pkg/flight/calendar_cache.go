package flight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ijalalfrz/flight-fare-engine/internal/app/dto"
	"github.com/redis/go-redis/v9"
)

// CalendarCacheKey builds the cache key of one fare calendar request.
func CalendarCacheKey(origin, destination, month, cabin string, adults int) string {
	return fmt.Sprintf("fare-calendar:%s:%s:%s:%s:%d",
		strings.ToUpper(origin), strings.ToUpper(destination), month, strings.ToLower(cabin), adults)
}

type calendarEntry struct {
	createdAt time.Time
	result    dto.FareCalendarResult
}

// MemoryCalendarCache keeps fare calendars in process memory. Entries expire
// passively: one older than the TTL is reported as a miss and overwritten by
// the next Put.
type MemoryCalendarCache struct {
	mu      sync.RWMutex
	entries map[string]calendarEntry
	ttl     time.Duration
	now     func() time.Time
}

type MemoryCacheOption func(*MemoryCalendarCache)

// WithClock replaces time.Now, used by tests to move time forward.
func WithClock(now func() time.Time) MemoryCacheOption {
	return func(c *MemoryCalendarCache) { c.now = now }
}

func NewMemoryCalendarCache(ttl time.Duration, opts ...MemoryCacheOption) *MemoryCalendarCache {
	c := &MemoryCalendarCache{ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	c.Init()

	return c
}

// Init drops every entry.
func (c *MemoryCalendarCache) Init() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]calendarEntry)
}

func (c *MemoryCalendarCache) Get(_ context.Context, key string) (dto.FareCalendarResult, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.createdAt) >= c.ttl {
		return dto.FareCalendarResult{}, false, nil
	}

	return entry.result, true, nil
}

func (c *MemoryCalendarCache) Put(_ context.Context, key string, result dto.FareCalendarResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = calendarEntry{createdAt: c.now(), result: result}

	return nil
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisCalendarCache shares fare calendars between instances. Expiry is
// delegated to the key TTL.
type RedisCalendarCache struct {
	redis RedisClient
	ttl   time.Duration
}

func NewRedisCalendarCache(redis RedisClient, ttl time.Duration) *RedisCalendarCache {
	return &RedisCalendarCache{
		redis: redis,
		ttl:   ttl,
	}
}

func (c *RedisCalendarCache) Get(ctx context.Context, key string) (dto.FareCalendarResult, bool, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return dto.FareCalendarResult{}, false, nil
	}
	if err != nil {
		return dto.FareCalendarResult{}, false, fmt.Errorf("failed to get fare calendar: %w", err)
	}

	var result dto.FareCalendarResult
	if err := json.Unmarshal(data, &result); err != nil {
		return dto.FareCalendarResult{}, false, fmt.Errorf("failed to unmarshal fare calendar: %w", err)
	}

	return result, true, nil
}

func (c *RedisCalendarCache) Put(ctx context.Context, key string, result dto.FareCalendarResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal fare calendar: %w", err)
	}

	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set fare calendar: %w", err)
	}

	return nil
}
