package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-inventory-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	productKeyPrefix = "product:"
	productCacheTTL  = 5 * time.Minute
)

// ProductCache is a read-through cache over product point lookups. It is
// strictly best-effort: a Redis failure degrades to a store read and is
// logged, never surfaced to the caller.
type ProductCache struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewProductCache(client *redis.Client, log *logrus.Logger) *ProductCache {
	return &ProductCache{client: client, log: log}
}

func (c *ProductCache) Get(ctx context.Context, id uuid.UUID) *entity.Product {
	data, err := c.client.Get(ctx, productKeyPrefix+id.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Product cache read failed: %+v", err)
		}
		return nil
	}
	var product entity.Product
	if err := json.Unmarshal(data, &product); err != nil {
		c.log.Warnf("Product cache entry corrupt, dropping: %+v", err)
		c.Invalidate(ctx, id)
		return nil
	}
	return &product
}

func (c *ProductCache) Set(ctx context.Context, product *entity.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		c.log.Warnf("Product cache marshal failed: %+v", err)
		return
	}
	if err := c.client.Set(ctx, productKeyPrefix+product.ID.String(), data, productCacheTTL).Err(); err != nil {
		c.log.Warnf("Product cache write failed: %+v", err)
	}
}

func (c *ProductCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, productKeyPrefix+id.String()).Err(); err != nil {
		c.log.Warnf("Product cache invalidation failed: %+v", err)
	}
}
