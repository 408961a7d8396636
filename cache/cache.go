package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/doctorsportal/server/models"
)

const availabilityTTL = 30 * time.Second

// Availability caches resolved per-date option availability in Redis.
// A nil *Availability is a no-op, so the service runs without Redis.
type Availability struct {
	client *redis.Client
}

// NewFromEnv connects to REDIS_ADDR, or returns nil when it is unset or
// unreachable. Cache misses are always safe here; the resolver is the
// source of truth.
func NewFromEnv(ctx context.Context) *Availability {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis unavailable, availability cache disabled: %v", err)
		return nil
	}
	log.Println("Connected to Redis")
	return &Availability{client: client}
}

func key(date string) string {
	return "options:" + date
}

func (a *Availability) Get(ctx context.Context, date string) ([]models.AppointmentOption, bool) {
	if a == nil {
		return nil, false
	}
	raw, err := a.client.Get(ctx, key(date)).Bytes()
	if err != nil {
		return nil, false
	}
	var options []models.AppointmentOption
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil, false
	}
	return options, true
}

func (a *Availability) Set(ctx context.Context, date string, options []models.AppointmentOption) {
	if a == nil {
		return
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return
	}
	if err := a.client.Set(ctx, key(date), raw, availabilityTTL).Err(); err != nil {
		log.Printf("Failed to cache availability for %s: %v", date, err)
	}
}

// Invalidate drops the cached availability for a date after a
// reservation lands on it.
func (a *Availability) Invalidate(ctx context.Context, date string) {
	if a == nil {
		return
	}
	if err := a.client.Del(ctx, key(date)).Err(); err != nil {
		log.Printf("Failed to invalidate availability cache for %s: %v", date, err)
	}
}
