package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Backend names accepted by Config.Backend.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendCache  = "cache"
	BackendRedis  = "redis"
)

// ErrUnknownBackend is returned for an unrecognized Config.Backend.
var ErrUnknownBackend = errors.New("unknown store backend")

// Config selects and configures the profile store.
type Config struct {
	// Backend is one of "sqlite", "memory", "cache", "redis".
	Backend string

	// DBPath is the SQLite database file. Empty means DefaultDBPath().
	DBPath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ProfileTTL expires profiles in the cache and redis backends.
	// Zero keeps them indefinitely.
	ProfileTTL time.Duration
}

// DefaultConfig returns a Config that persists to the default SQLite path.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendSQLite,
		RedisAddr: "localhost:6379",
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or unparsable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if b := os.Getenv("STUDYCYCLE_STORE"); b != "" {
		cfg.Backend = b
	}
	if p := os.Getenv("STUDYCYCLE_DB"); p != "" {
		cfg.DBPath = p
	}
	if a := os.Getenv("STUDYCYCLE_REDIS_ADDR"); a != "" {
		cfg.RedisAddr = a
	}
	if pw := os.Getenv("STUDYCYCLE_REDIS_PASSWORD"); pw != "" {
		cfg.RedisPassword = pw
	}
	if db := os.Getenv("STUDYCYCLE_REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			cfg.RedisDB = n
		}
	}
	if ttl := os.Getenv("STUDYCYCLE_PROFILE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.ProfileTTL = d
		}
	}

	return cfg
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendMemory, BackendCache:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("STUDYCYCLE_REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	if c.ProfileTTL < 0 {
		return fmt.Errorf("profile TTL must not be negative, got %s", c.ProfileTTL)
	}
	return nil
}

// Backend bundles the repos opened for a Config. Events is nil for
// backends without an event log.
type Backend struct {
	Profiles ProfileRepo
	Events   EventRepo

	close func() error
}

// Lister returns the profile repo as a ProfileLister, if it supports listing.
func (b *Backend) Lister() (ProfileLister, bool) {
	l, ok := b.Profiles.(ProfileLister)
	return l, ok
}

// Close releases the underlying connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend opens the store selected by cfg.
func OpenBackend(ctx context.Context, cfg Config) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendMemory:
		return &Backend{Profiles: NewMemoryProfileRepo()}, nil

	case BackendCache:
		return &Backend{Profiles: NewCacheProfileRepo(cfg.ProfileTTL, 0)}, nil

	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return &Backend{
			Profiles: NewRedisProfileRepo(client, cfg.ProfileTTL),
			close:    client.Close,
		}, nil

	default:
		path := cfg.DBPath
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, fmt.Errorf("resolve DB path: %w", err)
			}
			path = p
		} else if err := EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create DB directory: %w", err)
		}

		st, err := Open(path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return &Backend{
			Profiles: st.ProfileRepo(),
			Events:   st.EventRepo(),
			close:    st.Close,
		}, nil
	}
}
