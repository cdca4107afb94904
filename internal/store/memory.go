package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryProfileRepo is a mutex-guarded in-process profile map. Profiles
// live for the lifetime of the process. It never returns an error.
type MemoryProfileRepo struct {
	mu       sync.RWMutex
	profiles map[string]ProfileData
}

// NewMemoryProfileRepo creates an empty in-memory repo.
func NewMemoryProfileRepo() *MemoryProfileRepo {
	return &MemoryProfileRepo{profiles: make(map[string]ProfileData)}
}

func (r *MemoryProfileRepo) Get(_ context.Context, userID string) (*ProfileData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryProfileRepo) Put(_ context.Context, userID string, p *ProfileData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[userID] = *p
	return nil
}

func (r *MemoryProfileRepo) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
