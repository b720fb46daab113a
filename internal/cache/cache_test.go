package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type payload struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client, "test"), mr
}

func TestCacheSetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	in := payload{Symbol: "AAPL", Price: 187.5}
	if err := c.Set(ctx, "quote:AAPL", in, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var out payload
	found, err := c.Get(ctx, "quote:AAPL", &out)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("expected a cache hit")
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	c, _ := newTestCache(t)

	var out payload
	found, err := c.Get(context.Background(), "quote:MISSING", &out)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Fatal("expected a miss for an unknown key")
	}
}

func TestCacheCorruptEntryTreatedAsMiss(t *testing.T) {
	c, mr := newTestCache(t)

	mr.Set("test:quote:AAPL", "{not json")

	var out payload
	found, err := c.Get(context.Background(), "quote:AAPL", &out)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Fatal("expected corrupt entry to read as a miss")
	}
}

func TestCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "quote:TSLA", payload{Symbol: "TSLA"}, time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	var out payload
	found, err := c.Get(ctx, "quote:TSLA", &out)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Fatal("expected entry to be expired")
	}
}

func TestCacheClear(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "a", payload{Symbol: "A"}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Set(ctx, "b", payload{Symbol: "B"}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := c.Clear(ctx, "a", "b"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	var out payload
	for _, key := range []string{"a", "b"} {
		found, err := c.Get(ctx, key, &out)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if found {
			t.Fatalf("expected %q to be cleared", key)
		}
	}

	// Clearing nothing is a no-op
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("empty Clear failed: %v", err)
	}
}

func TestCacheKeysAreNamespaced(t *testing.T) {
	c, mr := newTestCache(t)

	if err := c.Set(context.Background(), "quote:NVDA", payload{Symbol: "NVDA"}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if !mr.Exists("test:quote:NVDA") {
		t.Fatal("expected key under the configured prefix")
	}
	if mr.Exists("quote:NVDA") {
		t.Fatal("found unprefixed key")
	}
}
