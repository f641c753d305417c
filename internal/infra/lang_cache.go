package infra

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/Vovarama1992/human_translator/internal/ports"
)

const languagesKey = "human_translator:languages"

var (
	_ ports.LanguageCache = (*RedisLanguageCache)(nil)
	_ ports.LanguageCache = (*MemoryLanguageCache)(nil)
)

type RedisLanguageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLanguageCache(client *redis.Client, ttl time.Duration) *RedisLanguageCache {
	return &RedisLanguageCache{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (c *RedisLanguageCache) Get(ctx context.Context) (map[string]string, bool, error) {
	raw, err := c.client.Get(ctx, languagesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get languages: %w", err)
	}

	var langs map[string]string
	if err := json.Unmarshal(raw, &langs); err != nil {
		return nil, false, fmt.Errorf("decode cached languages: %w", err)
	}
	return langs, true, nil
}

func (c *RedisLanguageCache) Set(ctx context.Context, langs map[string]string) error {
	raw, err := json.Marshal(langs)
	if err != nil {
		return fmt.Errorf("encode languages: %w", err)
	}
	if err := c.client.Set(ctx, languagesKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set languages: %w", err)
	}
	return nil
}

// MemoryLanguageCache is the single-process fallback when no redis is configured.
type MemoryLanguageCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	langs   map[string]string
	expires time.Time
}

func NewMemoryLanguageCache(ttl time.Duration) *MemoryLanguageCache {
	return &MemoryLanguageCache{ttl: ttl, now: time.Now}
}

func (c *MemoryLanguageCache) Get(_ context.Context) (map[string]string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.langs == nil || !c.now().Before(c.expires) {
		return nil, false, nil
	}
	return maps.Clone(c.langs), true, nil
}

func (c *MemoryLanguageCache) Set(_ context.Context, langs map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.langs = maps.Clone(langs)
	c.expires = c.now().Add(c.ttl)
	return nil
}
