package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/config"
	"github.com/snackforest/shop-service/internal/models"
)

const (
	productKeyPrefix = "product:"
	productListKey   = "products:all"
	defaultCacheTTL  = 5 * time.Minute
)

// ProductCache is a best-effort read-through cache for catalog reads. It is
// never a correctness mechanism: misses and errors fall back to the database,
// and every catalog mutation invalidates the affected keys.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewProductCache creates a Redis-backed product cache.
func NewProductCache(cfg config.RedisConfig, logger *zap.Logger) *ProductCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &ProductCache{
		client: client,
		ttl:    ttl,
		logger: logger.With(zap.String("component", "product-cache")),
	}
}

// Get retrieves a cached product. A miss returns (nil, nil).
func (c *ProductCache) Get(ctx context.Context, id int64) (*models.Product, error) {
	key := productKeyPrefix + strconv.FormatInt(id, 10)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("cache miss", zap.Int64("product_id", id))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("cache get error", zap.Int64("product_id", id), zap.Error(err))
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}

	c.logger.Debug("cache hit", zap.Int64("product_id", id))
	return &product, nil
}

// Set stores a product with the configured TTL.
func (c *ProductCache) Set(ctx context.Context, product *models.Product) error {
	key := productKeyPrefix + strconv.FormatInt(product.ID, 10)

	data, err := json.Marshal(product)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("cache set error", zap.Int64("product_id", product.ID), zap.Error(err))
		return err
	}
	return nil
}

// GetList retrieves the cached full catalog listing. A miss returns (nil, nil).
func (c *ProductCache) GetList(ctx context.Context) ([]*models.Product, error) {
	data, err := c.client.Get(ctx, productListKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var products []*models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SetList caches the full catalog listing.
func (c *ProductCache) SetList(ctx context.Context, products []*models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productListKey, data, c.ttl).Err()
}

// Invalidate drops a product and the list key after a catalog mutation.
func (c *ProductCache) Invalidate(ctx context.Context, id int64) error {
	key := productKeyPrefix + strconv.FormatInt(id, 10)
	if err := c.client.Del(ctx, key, productListKey).Err(); err != nil {
		c.logger.Error("cache invalidate error", zap.Int64("product_id", id), zap.Error(err))
		return err
	}
	return nil
}

// Ping verifies the Redis connection at startup.
func (c *ProductCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
