package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss reports an absent snapshot.
var ErrCacheMiss = errors.New("wishlist cache miss")

// RedisStore keeps the snapshot as one JSON value so the populated-or-absent
// invariant survives across gateway instances. The Redis-side TTL is a floor
// cleanup; freshness is still judged from the snapshot's FetchedAt.
type RedisStore struct {
	client *redis.Client
	owner  string
	ttl    time.Duration
	logger *log.Logger
}

func NewRedisStore(client *redis.Client, owner string, ttl time.Duration, logger *log.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, owner: owner, ttl: ttl, logger: logger}
}

func (r *RedisStore) Load(ctx context.Context) (Snapshot, bool) {
	data, err := r.get(ctx)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			r.logger.Printf("wishlist cache load %s: %v", r.owner, err)
		}
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		r.logger.Printf("wishlist cache decode %s: %v", r.owner, err)
		r.Clear(ctx)
		return Snapshot{}, false
	}
	return snap, true
}

func (r *RedisStore) Save(ctx context.Context, snap Snapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		r.logger.Printf("wishlist cache encode %s: %v", r.owner, err)
		return
	}
	// Keep the value around one extra minute past logical expiry so a failed
	// refresh can still fall back to the stale set.
	if err := r.client.Set(ctx, r.key(), raw, r.ttl+time.Minute).Err(); err != nil {
		r.logger.Printf("wishlist cache save %s: %v", r.owner, err)
	}
}

func (r *RedisStore) Clear(ctx context.Context) {
	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		r.logger.Printf("wishlist cache clear %s: %v", r.owner, err)
	}
}

func (r *RedisStore) get(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *RedisStore) key() string {
	return fmt.Sprintf("wishlist:%s", r.owner)
}
