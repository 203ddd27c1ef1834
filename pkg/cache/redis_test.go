package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Set ISOCHECK_TEST_REDIS_URL (e.g. redis://localhost:6379/15) to run.
func redisCache(t *testing.T) *RedisCache {
	t.Helper()
	url := os.Getenv("ISOCHECK_TEST_REDIS_URL")
	if url == "" {
		t.Skip("ISOCHECK_TEST_REDIS_URL not set")
	}
	c, err := NewRedisCache(context.Background(), url)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRedisCache(t *testing.T) {
	c := redisCache(t)
	ctx := context.Background()
	key := NewScopedKeyer(nil, "isocheck-test:").CertificateKey(Hash([]byte(t.Name())))
	defer c.Delete(ctx, key)

	if err := c.Set(ctx, key, []byte("cert"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "cert" {
		t.Fatalf("Get() = (%q, %v, %v), want hit", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Errorf("Get() after Delete = (%v, %v), want miss", hit, err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url"); err == nil {
		t.Error("invalid URL should fail")
	}
}
