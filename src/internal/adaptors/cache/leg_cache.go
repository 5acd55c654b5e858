// Package cache holds the Redis-backed edge caches and the session store.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/go-redis/redis/v8"
)

// Leg cache TTLs. These are a performance hint for the two aggregation
// fetch legs, not a correctness mechanism; slightly stale merged results
// are acceptable.
const (
	PlatformLegTTL     = 5 * time.Minute
	TicketmasterLegTTL = 10 * time.Minute
)

// LegCache caches the raw results of one aggregation leg under a TTL.
type LegCache struct {
	client *redis.Client
}

func NewLegCache(client *redis.Client) *LegCache {
	return &LegCache{client: client}
}

// GetPlatformEvents returns the cached platform leg for a key, or false.
func (c *LegCache) GetPlatformEvents(ctx context.Context, key string) ([]core.UnifiedEvent, bool) {
	data, err := c.client.Get(ctx, "events:platform:"+key).Result()
	if err != nil {
		return nil, false
	}
	var events []core.UnifiedEvent
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		return nil, false
	}
	return events, true
}

func (c *LegCache) SetPlatformEvents(ctx context.Context, key string, events []core.UnifiedEvent) error {
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "events:platform:"+key, data, PlatformLegTTL).Err()
}

// GetTicketmasterPage returns the cached external leg for a key, or false.
func (c *LegCache) GetTicketmasterPage(ctx context.Context, key string) (*core.EventPage, bool) {
	data, err := c.client.Get(ctx, "events:tm:"+key).Result()
	if err != nil {
		return nil, false
	}
	var page core.EventPage
	if err := json.Unmarshal([]byte(data), &page); err != nil {
		return nil, false
	}
	return &page, true
}

func (c *LegCache) SetTicketmasterPage(ctx context.Context, key string, page *core.EventPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "events:tm:"+key, data, TicketmasterLegTTL).Err()
}
