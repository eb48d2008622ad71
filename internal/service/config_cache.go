package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/shopbot-service/internal/domain"
)

const configCacheTTL = 5 * time.Minute

// ConfigCache keeps per-shop chatbot config snapshots in Redis so the chat
// endpoint does not hit Postgres on every inbound message. A nil client
// disables caching.
type ConfigCache struct {
	client *redis.Client
}

// NewConfigCache creates the cache wrapper.
func NewConfigCache(client *redis.Client) *ConfigCache {
	return &ConfigCache{client: client}
}

func configCacheKey(shopID string) string {
	return "chatbot:config:" + shopID
}

// Get returns the cached snapshot for the shop, if present.
func (c *ConfigCache) Get(ctx context.Context, shopID string) (*domain.ChatbotConfig, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, configCacheKey(shopID)).Bytes()
	if err != nil {
		return nil, false
	}
	var cfg domain.ChatbotConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, false
	}
	return &cfg, true
}

// Set stores a snapshot for the shop.
func (c *ConfigCache) Set(ctx context.Context, cfg *domain.ChatbotConfig) {
	if c == nil || c.client == nil || cfg == nil {
		return
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, configCacheKey(cfg.ShopID), raw, configCacheTTL).Err()
}

// Invalidate drops the snapshot after a configuration write.
func (c *ConfigCache) Invalidate(ctx context.Context, shopID string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, configCacheKey(shopID)).Err()
}
