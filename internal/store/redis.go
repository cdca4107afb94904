package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "studycycle:profile:"

// RedisProfileRepo shares profiles across processes through Redis.
// Each profile is a JSON string under "<prefix><userID>".
type RedisProfileRepo struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisProfileRepo creates a Redis-backed repo. A zero TTL stores
// profiles without expiry.
func NewRedisProfileRepo(client *redis.Client, ttl time.Duration) *RedisProfileRepo {
	return &RedisProfileRepo{
		client: client,
		prefix: defaultRedisPrefix,
		ttl:    ttl,
	}
}

func (r *RedisProfileRepo) key(userID string) string {
	return r.prefix + userID
}

func (r *RedisProfileRepo) Get(ctx context.Context, userID string) (*ProfileData, error) {
	raw, err := r.client.Get(ctx, r.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile %q: %w", userID, err)
	}

	var p ProfileData
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile %q: %w", userID, err)
	}
	return &p, nil
}

func (r *RedisProfileRepo) Put(ctx context.Context, userID string, p *ProfileData) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %q: %w", userID, err)
	}
	if err := r.client.Set(ctx, r.key(userID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("set profile %q: %w", userID, err)
	}
	return nil
}

func (r *RedisProfileRepo) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan profiles: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}
