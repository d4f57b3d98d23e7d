package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pepeccz/atrevete-bot-sub002/config"
)

// ErrCacheMiss the key is not cached.
var ErrCacheMiss = errors.New("redis: cache miss")

// Client redis wrapper. Carries the JWT blacklist and the stylist context
// cache.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to redis and pings it.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// ── Token blacklist ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken records a JWT ID until the token's own expiry.
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to record
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted reports whether a JWT ID has been revoked.
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── Rate limiting ──

const rateLimitPrefix = "rate_limit:"

// CheckRateLimit reports whether one more request fits inside the sliding
// window identified by key. Requests are counted as timestamps in a sorted
// set trimmed on every call.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	full := rateLimitPrefix + key

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, full, "0", strconv.FormatInt(now.Add(-window).UnixNano(), 10))
	count := pipe.ZCard(ctx, full)
	pipe.ZAdd(ctx, full, goredis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, full, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return count.Val() < int64(limit), nil
}

// ── Context cache ──

// ContextCache a TTL-bound JSON cache with explicit ownership: built once at
// startup with its TTL injected and passed by reference to consumers, never
// a package-level map.
type ContextCache struct {
	client *Client
	prefix string
	ttl    time.Duration
}

// NewContextCache builds a cache bound to a key prefix and TTL. A nil client
// yields a disabled cache whose reads always miss.
func NewContextCache(client *Client, prefix string, ttl time.Duration) *ContextCache {
	return &ContextCache{client: client, prefix: prefix, ttl: ttl}
}

// Get unmarshals the cached value for key into dest. Returns ErrCacheMiss
// when absent or the cache is disabled.
func (c *ContextCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrCacheMiss
	}
	raw, err := c.client.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Set stores the value for key under the cache's TTL.
func (c *ContextCache) Set(ctx context.Context, key string, value interface{}) error {
	if c.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.rdb.Set(ctx, c.prefix+key, raw, c.ttl).Err()
}

// Invalidate drops the cached value for key.
func (c *ContextCache) Invalidate(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}
	return c.client.rdb.Del(ctx, c.prefix+key).Err()
}
