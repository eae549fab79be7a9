package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/lapangankita/field-booking/internal/domain/booking"
)

const slotTTL = 5 * time.Minute

// SlotCache is a read-through cache for a field's booked slots on a
// given day. Every booking mutation invalidates the day's key, so a
// cold read is the worst case, never a stale one beyond the TTL.
// With no Redis configured every lookup is a miss.
type SlotCache struct {
	client *redis.Client
}

func NewSlotCache(addr string) *SlotCache {
	if addr == "" {
		return &SlotCache{}
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("cache: redis unreachable at %s: %v (cache disabled)", addr, err)
		return &SlotCache{}
	}

	return &SlotCache{client: client}
}

func slotKey(fieldID uint, date string) string {
	return fmt.Sprintf("booked:%d:%s", fieldID, date)
}

func (c *SlotCache) Get(ctx context.Context, fieldID uint, date string) ([]domain.Interval, bool) {
	if c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, slotKey(fieldID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []domain.Interval
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, fieldID uint, date string, slots []domain.Interval) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, slotKey(fieldID, date), data, slotTTL).Err(); err != nil {
		log.Printf("cache: set %s: %v", slotKey(fieldID, date), err)
	}
}

func (c *SlotCache) Invalidate(ctx context.Context, fieldID uint, date string) {
	if c.client == nil {
		return
	}

	if err := c.client.Del(ctx, slotKey(fieldID, date)).Err(); err != nil {
		log.Printf("cache: del %s: %v", slotKey(fieldID, date), err)
	}
}
