package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/fhuszti/tmpfiles-ms-go/internal/port"
	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

// LocalCache keeps file details in process memory when no redis is configured.
type LocalCache struct {
	entries *lru.Cache[string, localEntry]
	now     func() time.Time
}

type localEntry struct {
	data       []byte
	validUntil time.Time
}

// compile-time check: *LocalCache must satisfy port.Cache
var _ port.Cache = (*LocalCache)(nil)

func NewLocal(size int) (*LocalCache, error) {
	entries, err := lru.New[string, localEntry](size)
	if err != nil {
		return nil, fmt.Errorf("lru cache: %w", err)
	}
	return &LocalCache{entries: entries, now: time.Now}, nil
}

func (c *LocalCache) GetFileDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return c.get(getCacheKey(id.String(), false)), nil
}

func (c *LocalCache) GetEtagFileDetails(ctx context.Context, id uuid.UUID) (string, error) {
	return string(c.get(getCacheKey(id.String(), true))), nil
}

func (c *LocalCache) SetFileDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
	c.set(getCacheKey(id.String(), false), data, validUntil)
}

func (c *LocalCache) SetEtagFileDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time) {
	c.set(getCacheKey(id.String(), true), []byte(etag), validUntil)
}

func (c *LocalCache) DeleteFileDetails(ctx context.Context, id uuid.UUID) error {
	c.entries.Remove(getCacheKey(id.String(), false))
	return nil
}

func (c *LocalCache) DeleteEtagFileDetails(ctx context.Context, id uuid.UUID) error {
	c.entries.Remove(getCacheKey(id.String(), true))
	return nil
}

func (c *LocalCache) Len() int {
	return c.entries.Len()
}

func (c *LocalCache) get(key string) []byte {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil
	}
	if !c.now().Before(e.validUntil) {
		c.entries.Remove(key)
		return nil
	}
	return e.data
}

func (c *LocalCache) set(key string, data []byte, validUntil time.Time) {
	if !c.now().Before(validUntil) {
		return
	}
	c.entries.Add(key, localEntry{data: data, validUntil: validUntil})
}
