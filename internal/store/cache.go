package store

import (
	"context"
	"slices"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// CacheProfileRepo keeps profiles in an in-process cache that can expire
// idle learners. A zero TTL keeps entries until the process exits.
type CacheProfileRepo struct {
	cache *cache.Cache
}

// NewCacheProfileRepo creates a cache-backed repo. Expired entries are
// swept every cleanup interval.
func NewCacheProfileRepo(ttl, cleanup time.Duration) *CacheProfileRepo {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &CacheProfileRepo{cache: cache.New(ttl, cleanup)}
}

func (r *CacheProfileRepo) Get(_ context.Context, userID string) (*ProfileData, error) {
	v, ok := r.cache.Get(userID)
	if !ok {
		return nil, nil
	}
	p := v.(ProfileData)
	return &p, nil
}

func (r *CacheProfileRepo) Put(_ context.Context, userID string, p *ProfileData) error {
	r.cache.Set(userID, *p, cache.DefaultExpiration)
	return nil
}

func (r *CacheProfileRepo) List(_ context.Context) ([]string, error) {
	items := r.cache.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
