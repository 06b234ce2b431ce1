package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultJWKSCacheKey is the Redis key holding the shared JWKS document.
const DefaultJWKSCacheKey = "casting:auth:jwks"

// RedisDocumentStore keeps the JWKS document in Redis with the key set TTL.
type RedisDocumentStore struct {
	client *redis.Client
	key    string
}

// NewRedisDocumentStore returns a store writing to key, or DefaultJWKSCacheKey when empty.
func NewRedisDocumentStore(client *redis.Client, key string) *RedisDocumentStore {
	if key == "" {
		key = DefaultJWKSCacheKey
	}
	return &RedisDocumentStore{client: client, key: key}
}

// Load returns the cached document, reporting false when absent.
func (s *RedisDocumentStore) Load(ctx context.Context) ([]byte, bool, error) {
	if s == nil || s.client == nil {
		return nil, false, nil
	}
	doc, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

// Save stores the document until ttl elapses.
func (s *RedisDocumentStore) Save(ctx context.Context, doc []byte, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Set(ctx, s.key, doc, ttl).Err()
}
