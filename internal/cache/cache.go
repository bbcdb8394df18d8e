// Package cache stores SCEL metadata snapshots keyed by file content.
package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/redis/go-redis/v9"

	"github.com/lib-x/scel"
)

var log = logging.MustGetLogger("scel/cache")

// ErrMiss is returned by a Store when the key is absent.
var ErrMiss = errors.New("cache miss")

// DefaultTTL is how long a snapshot is kept.
const DefaultTTL = 24 * time.Hour

const keyPrefix = "scel:info:"

// Store is a byte-valued key/value store with expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisStore is a Store backed by redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the redis server at addr.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at '%s': %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get '%s': %w", key, err)
	}
	return b, nil
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set '%s': %w", key, err)
	}
	return nil
}

// Close closes the redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// InfoCache looks up metadata snapshots by content fingerprint and falls
// back to parsing the file.
type InfoCache struct {
	store Store
	ttl   time.Duration
}

// NewInfoCache returns an InfoCache over store. A zero ttl means DefaultTTL.
func NewInfoCache(store Store, ttl time.Duration) *InfoCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &InfoCache{store: store, ttl: ttl}
}

// Accessor returns the snapshot for the file at path. Store failures are
// logged and the file is parsed directly; file and format errors are
// returned.
func (c *InfoCache) Accessor(ctx context.Context, path string) (*scel.ScelAccessor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scel file '%s': %w", path, err)
	}
	key := keyPrefix + scel.Fingerprint(data)

	cached, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		sa, jsonErr := scel.NewAccessorFromJSON(cached)
		switch {
		case jsonErr != nil:
			log.Warningf("Discarding corrupt cache entry %s: %v", key, jsonErr)
		case sa.Info == nil:
			log.Warningf("Discarding cache entry %s: missing info", key)
		default:
			log.Debugf("Cache hit for '%s' (%s)", path, key)
			sa.Filepath = path
			return sa, nil
		}
	case errors.Is(err, ErrMiss):
		log.Debugf("Cache miss for '%s' (%s)", path, key)
	default:
		log.Warningf("Cache lookup for '%s' failed: %v", path, err)
	}

	s, err := scel.New(path, data)
	if err != nil {
		return nil, err
	}
	sa, err := scel.NewAccessor(s)
	if err != nil {
		return nil, err
	}

	b, err := sa.Serialize()
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, key, b, c.ttl); err != nil {
		log.Warningf("Cache store for '%s' failed: %v", path, err)
	}
	return sa, nil
}
