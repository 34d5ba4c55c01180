package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string, db int) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Cache{client: rdb}
}

// Ping reports whether the redis server answers.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) GetFileDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	logger.Debugf(ctx, "getting entry in cache for file #%s...", id)
	return c.get(ctx, getCacheKey(id.String(), false))
}

func (c *Cache) GetEtagFileDetails(ctx context.Context, id uuid.UUID) (string, error) {
	raw, err := c.get(ctx, getCacheKey(id.String(), true))
	return string(raw), err
}

func (c *Cache) SetFileDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
	logger.Debugf(ctx, "creating entry in cache for file #%s, valid until %s...", id, validUntil.Format(time.RFC1123))
	c.set(ctx, getCacheKey(id.String(), false), data, validUntil)
}

func (c *Cache) SetEtagFileDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time) {
	c.set(ctx, getCacheKey(id.String(), true), []byte(etag), validUntil)
}

func (c *Cache) DeleteFileDetails(ctx context.Context, id uuid.UUID) error {
	logger.Debugf(ctx, "deleting entry in cache for file #%s...", id)
	return c.del(ctx, getCacheKey(id.String(), false))
}

func (c *Cache) DeleteEtagFileDetails(ctx context.Context, id uuid.UUID) error {
	return c.del(ctx, getCacheKey(id.String(), true))
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) set(ctx context.Context, key string, data []byte, validUntil time.Time) {
	ttl := time.Until(validUntil)
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Warnf(ctx, "redis set failed for %q: %v", key, err)
	}
}

func (c *Cache) del(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(id string, etag bool) string {
	if etag {
		return "etag:file:" + id
	}
	return "file:" + id
}
