// Package cache keeps the active global pricing adjustment in Redis so the
// public quote endpoint does not hit Postgres on every call.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"artmarket-admin/internal/domain/pricing"

	"github.com/redis/go-redis/v9"
)

const (
	activeAdjustmentKey = "artmarket:pricing:global:active"
	// noneMarker records that no adjustment is active.
	noneMarker = "none"
)

type AdjustmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAdjustmentCache(client *redis.Client, ttl time.Duration) *AdjustmentCache {
	return &AdjustmentCache{client: client, ttl: ttl}
}

// Connect opens a client and verifies it with PING.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	rc := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rc, nil
}

func (c *AdjustmentCache) GetActive(ctx context.Context) (*pricing.GlobalPricingAdjustment, bool, error) {
	raw, err := c.client.Get(ctx, activeAdjustmentKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if string(raw) == noneMarker {
		return nil, true, nil
	}

	var g pricing.GlobalPricingAdjustment
	if err := json.Unmarshal(raw, &g); err != nil {
		// Drop entries written by an incompatible version.
		_ = c.client.Del(ctx, activeAdjustmentKey).Err()
		return nil, false, nil
	}
	return &g, true, nil
}

func (c *AdjustmentCache) SetActive(ctx context.Context, g *pricing.GlobalPricingAdjustment) error {
	if g == nil {
		return c.client.Set(ctx, activeAdjustmentKey, noneMarker, c.ttl).Err()
	}
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, activeAdjustmentKey, raw, c.ttl).Err()
}

func (c *AdjustmentCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, activeAdjustmentKey).Err()
}
