// Package storage persists the per-session cart and user record as JSON
// blobs in a key-value store. The adapter is deliberately dumb: full
// overwrite on save, exact round-trip on load, and graceful degradation when
// no store is configured.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefrontlabs/storefront-api/internal/cart"
	"github.com/storefrontlabs/storefront-api/internal/users"
	"github.com/storefrontlabs/storefront-api/pkg/config"
)

const (
	keyNamespace = "storefront"
	cartPrefix   = "cart"
	userPrefix   = "user"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Redis stores session blobs in Redis with a bounded TTL.
type Redis struct {
	kv  cmdable
	raw *redis.Client
	ttl time.Duration
}

// NewRedis bootstraps the Redis-backed session store and verifies connectivity.
func NewRedis(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*Redis, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{kv: raw, raw: raw, ttl: ttl}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// LoadCart returns the stored line items, or an empty list when nothing is
// stored for the session.
func (r *Redis) LoadCart(ctx context.Context, sessionID string) ([]cart.LineItem, error) {
	raw, err := r.kv.Get(ctx, r.cartKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return []cart.LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var items []cart.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode stored cart: %w", err)
	}
	return items, nil
}

// SaveCart overwrites the full line-item list for the session.
func (r *Redis) SaveCart(ctx context.Context, sessionID string, items []cart.LineItem) error {
	if items == nil {
		items = []cart.LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := r.kv.Set(ctx, r.cartKey(sessionID), string(payload), r.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// ClearCart removes the persisted cart entirely.
func (r *Redis) ClearCart(ctx context.Context, sessionID string) error {
	if err := r.kv.Del(ctx, r.cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// LoadUser returns the stored user record, or nil when none exists.
func (r *Redis) LoadUser(ctx context.Context, sessionID string) (*users.User, error) {
	raw, err := r.kv.Get(ctx, r.userKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	var user users.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	return &user, nil
}

// SaveUser overwrites the session's user record.
func (r *Redis) SaveUser(ctx context.Context, sessionID string, user users.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := r.kv.Set(ctx, r.userKey(sessionID), string(payload), r.ttl).Err(); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// RemoveUser deletes the persisted user record.
func (r *Redis) RemoveUser(ctx context.Context, sessionID string) error {
	if err := r.kv.Del(ctx, r.userKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}

// Ping verifies the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.kv.Ping(ctx).Err()
}

// Close shuts down the underlying client if available.
func (r *Redis) Close() error {
	if r.raw == nil {
		return nil
	}
	return r.raw.Close()
}

func (r *Redis) cartKey(sessionID string) string {
	return buildKey(cartPrefix, sessionID)
}

func (r *Redis) userKey(sessionID string) string {
	return buildKey(userPrefix, sessionID)
}

func buildKey(parts ...string) string {
	clean := []string{keyNamespace}
	for _, part := range parts {
		if part == "" {
			continue
		}
		clean = append(clean, strings.TrimSpace(part))
	}
	return strings.Join(clean, ":")
}
