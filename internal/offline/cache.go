package offline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CachedResponse is a stored copy of an upstream response.
type CachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// ResponseCache stores responses keyed by request URI. Entries live until
// the cache name is versioned away; there is no TTL.
type ResponseCache interface {
	Get(ctx context.Context, key string) (*CachedResponse, bool, error)
	Put(ctx context.Context, key string, resp *CachedResponse) error
}

// RedisCache is a ResponseCache on Redis, JSON-encoded under a versioned
// cache name prefix.
type RedisCache struct {
	rdb  *redis.Client
	name string
}

// NewRedisCache creates a response cache namespaced by name
// (e.g. "scs-cache-v1").
func NewRedisCache(rdb *redis.Client, name string) *RedisCache {
	return &RedisCache{rdb: rdb, name: name}
}

func (c *RedisCache) key(k string) string {
	return c.name + ":" + k
}

// Get returns the cached response for key. A corrupt payload reads as a
// miss.
func (c *RedisCache) Get(ctx context.Context, key string) (*CachedResponse, bool, error) {
	val, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var resp CachedResponse
	if err := json.Unmarshal(val, &resp); err != nil {
		logrus.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("Corrupt cache entry, treating as miss")
		return nil, false, nil
	}
	return &resp, true, nil
}

// Put stores the response under key with no expiry.
func (c *RedisCache) Put(ctx context.Context, key string, resp *CachedResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(key), payload, 0).Err()
}
