package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fhuszti/tmpfiles-ms-go/internal/uuid"
)

func makeTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	// spin up in-memory Redis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(mr.Close)
	// point the real client at it
	rdb := redis.NewClient(&redis.Options{
		Addr:     mr.Addr(),
		Password: "",
		DB:       0,
	})
	return &Cache{client: rdb}, mr
}

func TestGetSetDeleteFileDetails(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()
	id := uuid.NewUUID()

	// 1) Cache miss
	got, err := c.GetFileDetails(ctx, id)
	if err != nil {
		t.Fatalf("GetFileDetails miss: %v", err)
	}
	if got != nil {
		t.Errorf("GetFileDetails miss: got %s; want nil", got)
	}

	// 2) Set + Get
	raw := []byte(`{"id":"` + id.String() + `"}`)
	c.SetFileDetails(ctx, id, raw, time.Now().Add(2*time.Minute))
	c.SetEtagFileDetails(ctx, id, `"abcd1234"`, time.Now().Add(2*time.Minute))
	if ttl := mr.TTL(getCacheKey(id.String(), false)); ttl < time.Minute || ttl > 2*time.Minute+time.Second {
		t.Errorf("redis TTL = %v; want ~2m", ttl)
	}
	if ttl := mr.TTL(getCacheKey(id.String(), true)); ttl < time.Minute || ttl > 2*time.Minute+time.Second {
		t.Errorf("etag TTL = %v; want ~2m", ttl)
	}
	got, err = c.GetFileDetails(ctx, id)
	if err != nil {
		t.Fatalf("GetFileDetails hit: %v", err)
	}
	if string(got) != string(raw) {
		t.Errorf("GetFileDetails hit = %s; want %s", got, raw)
	}
	etag, err := c.GetEtagFileDetails(ctx, id)
	if err != nil || etag != `"abcd1234"` {
		t.Errorf("GetEtagFileDetails = %q, %v", etag, err)
	}

	// 3) Delete + miss again
	if err := c.DeleteFileDetails(ctx, id); err != nil {
		t.Fatalf("DeleteFileDetails: %v", err)
	}
	if err := c.DeleteEtagFileDetails(ctx, id); err != nil {
		t.Fatalf("DeleteEtagFileDetails: %v", err)
	}
	if got, _ := c.GetFileDetails(ctx, id); got != nil {
		t.Errorf("after delete, GetFileDetails = %s; want nil", got)
	}
	if etag, _ := c.GetEtagFileDetails(ctx, id); etag != "" {
		t.Errorf("after delete, GetEtagFileDetails = %q; want empty", etag)
	}
}

func TestSetFileDetails_AlreadyExpired(t *testing.T) {
	c, mr := makeTestCache(t)
	id := uuid.NewUUID()

	c.SetFileDetails(context.Background(), id, []byte("x"), time.Now().Add(-time.Second))
	if mr.Exists(getCacheKey(id.String(), false)) {
		t.Error("expired details must not be cached")
	}
}

func TestGetFileDetails_RedisError(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	// Simulate Redis unreachable
	mr.Close()

	got, err := c.GetFileDetails(ctx, uuid.NewUUID())
	if got != nil {
		t.Errorf("Expected nil on Redis error, got %s", got)
	}
	if err == nil || !strings.Contains(err.Error(), "redis get failed") {
		t.Errorf("Expected redis get failed error, got %v", err)
	}
}

func TestDeleteFileDetails_RedisError(t *testing.T) {
	c, mr := makeTestCache(t)
	mr.Close()

	err := c.DeleteFileDetails(context.Background(), uuid.NewUUID())
	if err == nil || !strings.Contains(err.Error(), "redis del failed") {
		t.Errorf("Expected redis del failed error, got %v", err)
	}
}

func TestGetCacheKey_Etag(t *testing.T) {
	id := uuid.NewUUID().String()
	if got := getCacheKey(id, true); got != "etag:file:"+id {
		t.Errorf("getCacheKey(true) = %q; want %q", got, "etag:file:"+id)
	}
	if got := getCacheKey(id, false); got != "file:"+id {
		t.Errorf("getCacheKey() = %q; want %q", got, "file:"+id)
	}
}

func TestPing(t *testing.T) {
	c, mr := makeTestCache(t)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	mr.Close()
	if err := c.Ping(context.Background()); err == nil {
		t.Error("expected Ping to fail once redis is gone")
	}
}
