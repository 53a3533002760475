package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"myStorefront/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const catalogKey = "catalog:products"

var ErrCacheMiss = errors.New("catalog not cached")

// CatalogCache holds the product catalog in redis with a short TTL so the
// recommendation read path does not hit postgres on every request.
// Recommendation results themselves are never cached here.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &CatalogCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *CatalogCache) Get(ctx context.Context) ([]domain.Product, error) {
	val, err := c.client.Get(ctx, catalogKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get catalog from Redis: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached catalog: %w", err)
	}

	return products, nil
}

func (c *CatalogCache) Set(ctx context.Context, products []domain.Product) error {
	jsonData, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := c.client.Set(ctx, catalogKey, jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store catalog in Redis: %w", err)
	}

	return nil
}

// Invalidate drops the cached catalog after a product mutation.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}

	return nil
}
