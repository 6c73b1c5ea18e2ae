// Package wishlist caches the buyer's server-side wishlist for membership
// checks. The cache holds the whole ID set with a single fetch timestamp:
// it is either fully populated or absent, never partial. Mutations go to the
// backend first and then drop the cache wholesale, so the next read refetches
// server truth instead of patching locally.
package wishlist

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"springjewels-storefront/internal/domain"
)

// DefaultTTL is the cache validity window.
const DefaultTTL = 5 * time.Minute

type remoteAPI interface {
	Wishlist(ctx context.Context, token string) ([]domain.Product, error)
	AddToWishlist(ctx context.Context, token string, productID int64) error
	RemoveFromWishlist(ctx context.Context, token string, productID int64) error
}

// Snapshot is one successful fetch of the full wishlist.
type Snapshot struct {
	ProductIDs []int64   `json:"productIds"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

// Store persists the snapshot. Implementations degrade to "absent" on their
// own read failures; a broken cache must never break a membership check.
type Store interface {
	Load(ctx context.Context) (Snapshot, bool)
	Save(ctx context.Context, snap Snapshot)
	Clear(ctx context.Context)
}

// Service is an injectable wishlist cache with one lifecycle per session:
// constructed at login, invalidated at logout.
type Service struct {
	store  Store
	api    remoteAPI
	ttl    time.Duration
	now    func() time.Time
	logger *log.Logger
	sfg    singleflight.Group
}

func New(store Store, api remoteAPI, ttl time.Duration, logger *log.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		store:  store,
		api:    api,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// GetCached returns the cached ID set only when populated and fresh. It never
// touches the network; absent or expired caches report ok=false.
func (s *Service) GetCached(ctx context.Context) (map[int64]struct{}, bool) {
	snap, ok := s.store.Load(ctx)
	if !ok || s.now().Sub(snap.FetchedAt) >= s.ttl {
		return nil, false
	}
	return toSet(snap.ProductIDs), true
}

// Get returns the valid cache when one exists, otherwise refetches the full
// wishlist and replaces the cache wholesale. A failed refresh leaves any
// existing snapshot untouched and falls back to it, stale or not; with no
// snapshot at all the result is an empty set. An empty token short-circuits
// to an empty set without network access.
func (s *Service) Get(ctx context.Context, token string) map[int64]struct{} {
	if set, ok := s.GetCached(ctx); ok {
		return set
	}
	if token == "" {
		return map[int64]struct{}{}
	}

	// Concurrent misses collapse into one backend fetch.
	v, _, _ := s.sfg.Do("refresh", func() (interface{}, error) {
		if set, ok := s.GetCached(ctx); ok {
			return set, nil
		}

		products, err := s.api.Wishlist(ctx, token)
		if err != nil {
			s.logger.Printf("wishlist refresh failed: %v", err)
			if snap, ok := s.store.Load(ctx); ok {
				return toSet(snap.ProductIDs), nil
			}
			return map[int64]struct{}{}, nil
		}

		ids := make([]int64, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		s.store.Save(ctx, Snapshot{ProductIDs: ids, FetchedAt: s.now()})
		return toSet(ids), nil
	})
	return v.(map[int64]struct{})
}

// Add puts the product on the server-side wishlist and invalidates the cache.
// A failed mutation is propagated untouched so the caller can roll back its
// optimistic state; the cache is only dropped once the backend accepted the
// change.
func (s *Service) Add(ctx context.Context, token string, productID int64) error {
	if token == "" {
		return domain.ErrUnauthorized
	}
	if err := s.api.AddToWishlist(ctx, token, productID); err != nil {
		return err
	}
	s.Invalidate(ctx)
	return nil
}

// Remove is the mutation counterpart of Add.
func (s *Service) Remove(ctx context.Context, token string, productID int64) error {
	if token == "" {
		return domain.ErrUnauthorized
	}
	if err := s.api.RemoveFromWishlist(ctx, token, productID); err != nil {
		return err
	}
	s.Invalidate(ctx)
	return nil
}

// Invalidate clears the snapshot and its timestamp. Called after any mutation
// and on logout.
func (s *Service) Invalidate(ctx context.Context) {
	s.store.Clear(ctx)
}

// Contains reports membership for one product, the pattern product cards use.
// Without a token it is always false with no network access. The check honors
// ctx so a consumer torn down mid-flight never acts on a late result.
func (s *Service) Contains(ctx context.Context, token string, productID int64) (bool, error) {
	if token == "" {
		return false, nil
	}
	if set, ok := s.GetCached(ctx); ok {
		_, in := set[productID]
		return in, nil
	}

	set := s.Get(ctx, token)
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, in := set[productID]
	return in, nil
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
