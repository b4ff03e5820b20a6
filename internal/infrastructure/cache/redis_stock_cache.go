// Package cache holds the Redis-backed stock level cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appinventory "github.com/qreats/backend/internal/application/inventory"
	"github.com/qreats/backend/internal/infrastructure/config"
)

// QuantityChangedType is the message type published when an item's stock moves.
const QuantityChangedType = "QUANTITY_CHANGED"

const (
	itemKeyPrefix    = "inventory:item:"
	generationSuffix = ":gen"
	tenantChannelFmt = "inventory:%s"
	defaultStockTTL  = 5 * time.Minute
)

// QuantityChangedMessage is published on the tenant channel after a committed stock change.
type QuantityChangedMessage struct {
	Type            string    `json:"type"`
	TenantID        uuid.UUID `json:"tenantId"`
	InventoryItemID uuid.UUID `json:"inventoryItemId"`
	ChangedAt       time.Time `json:"changedAt"`
}

// RedisStockCache implements appinventory.StockCache.
type RedisStockCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

var _ appinventory.StockCache = (*RedisStockCache)(nil)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisStockCache creates a stock cache over an existing client.
func NewRedisStockCache(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *RedisStockCache {
	if ttl <= 0 {
		ttl = defaultStockTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStockCache{client: client, ttl: ttl, logger: logger.Named("stock_cache")}
}

// ItemKey returns the cache key of an item's stock level.
func ItemKey(itemID uuid.UUID) string {
	return itemKeyPrefix + itemID.String()
}

// GenerationKey returns the key of the counter Invalidate bumps for an item.
func GenerationKey(itemID uuid.UUID) string {
	return ItemKey(itemID) + generationSuffix
}

// TenantChannel returns the pub/sub channel carrying a tenant's stock changes.
func TenantChannel(tenantID uuid.UUID) string {
	return fmt.Sprintf(tenantChannelFmt, tenantID.String())
}

// Get returns the cached level, or nil on a miss.
func (c *RedisStockCache) Get(ctx context.Context, itemID uuid.UUID) (*appinventory.StockLevel, error) {
	raw, err := c.client.Get(ctx, ItemKey(itemID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stock cache: %w", err)
	}

	var level appinventory.StockLevel
	if err := json.Unmarshal(raw, &level); err != nil {
		// A corrupt entry is treated as a miss and dropped.
		c.logger.Warn("Discarding undecodable stock cache entry",
			zap.String("inventory_item_id", itemID.String()),
			zap.Error(err),
		)
		_ = c.client.Del(ctx, ItemKey(itemID)).Err()
		return nil, nil
	}
	return &level, nil
}

// Generation returns the item's invalidation counter, zero when it was never bumped.
func (c *RedisStockCache) Generation(ctx context.Context, itemID uuid.UUID) (int64, error) {
	gen, err := readGeneration(ctx, c.client, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to read stock cache generation: %w", err)
	}
	return gen, nil
}

// Set stores the level until the TTL expires, unless the item was invalidated
// after generation was read. The generation key is watched so an Invalidate
// racing the write aborts it.
func (c *RedisStockCache) Set(ctx context.Context, level *appinventory.StockLevel, generation int64) (bool, error) {
	raw, err := json.Marshal(level)
	if err != nil {
		return false, fmt.Errorf("failed to encode stock level: %w", err)
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, level.ItemID)
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, ItemKey(level.ItemID), raw, c.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, GenerationKey(level.ItemID))
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to write stock cache: %w", err)
	}
	return stored, nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd getter, itemID uuid.UUID) (int64, error) {
	gen, err := cmd.Get(ctx, GenerationKey(itemID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Invalidate deletes the cached level, bumps its generation and publishes QUANTITY_CHANGED on the tenant channel.
func (c *RedisStockCache) Invalidate(ctx context.Context, tenantID, itemID uuid.UUID) error {
	msg, err := json.Marshal(QuantityChangedMessage{
		Type:            QuantityChangedType,
		TenantID:        tenantID,
		InventoryItemID: itemID,
		ChangedAt:       time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode change message: %w", err)
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, ItemKey(itemID))
		pipe.Incr(ctx, GenerationKey(itemID))
		pipe.Publish(ctx, TenantChannel(tenantID), msg)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate stock cache: %w", err)
	}
	return nil
}

// Subscribe listens for a tenant's stock changes. The caller must Close the subscription.
func (c *RedisStockCache) Subscribe(ctx context.Context, tenantID uuid.UUID) *redis.PubSub {
	return c.client.Subscribe(ctx, TenantChannel(tenantID))
}
