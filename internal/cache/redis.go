package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"catalogo/internal/models"

	"github.com/redis/go-redis/v9"
)

const productKeyPrefix = "catalogo:product:"

// Config holds Redis connection details.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// InitRedis connects to Redis and checks the connection.
func InitRedis(ctx context.Context, cfg Config) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}

	return redisClient, nil
}

// ProductCache keeps JSON-encoded products in Redis.
type ProductCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewProductCache returns a cache whose entries expire after ttl.
func NewProductCache(client redis.Cmdable, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

func productKey(id uint) string {
	return fmt.Sprintf("%s%d", productKeyPrefix, id)
}

// Get loads a product. A missing key is reported as found=false with no error.
func (c *ProductCache) Get(ctx context.Context, id uint) (*models.Product, bool, error) {
	raw, err := c.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get product %d: %w", id, err)
	}

	var product models.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, false, fmt.Errorf("decode cached product %d: %w", id, err)
	}
	return &product, true, nil
}

// Set stores a product under its ID.
func (c *ProductCache) Set(ctx context.Context, product *models.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("encode product %d: %w", product.ID, err)
	}
	if err := c.client.Set(ctx, productKey(product.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set product %d: %w", product.ID, err)
	}
	return nil
}
