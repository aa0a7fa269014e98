package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"greenbasket/internal/app/storefront/entity"

	"github.com/redis/go-redis/v9"
)

const (
	productCacheKeyPrefix = "product:slug:"
	featuredCacheKey      = "products:featured"
)

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// NewRedisClientFromExisting оборачивает уже созданный клиент (для тестов)
func NewRedisClientFromExisting(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

// SetProduct кеширует карточку товара по слагу
func (r *RedisClient) SetProduct(ctx context.Context, product *entity.Product, ttl time.Duration) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	if err := r.client.Set(ctx, productCacheKeyPrefix+product.Slug, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set product in cache: %w", err)
	}

	return nil
}

// GetProduct получает карточку товара из кеша по слагу
// Возвращает (nil, nil) при промахе кеша
func (r *RedisClient) GetProduct(ctx context.Context, slug string) (*entity.Product, error) {
	data, err := r.client.Get(ctx, productCacheKeyPrefix+slug).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product from cache: %w", err)
	}

	var product entity.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

// InvalidateProduct сбрасывает кеш карточки товара по слагу
// Вызывается после записи отзыва и после изменения товара, чтобы
// страница товара перечитала свежий агрегат из БД
func (r *RedisClient) InvalidateProduct(ctx context.Context, slug string) error {
	if err := r.client.Del(ctx, productCacheKeyPrefix+slug).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	return nil
}

// SetFeatured кеширует список избранных товаров
func (r *RedisClient) SetFeatured(ctx context.Context, products []entity.Product, ttl time.Duration) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal featured products: %w", err)
	}

	if err := r.client.Set(ctx, featuredCacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set featured products in cache: %w", err)
	}

	return nil
}

// GetFeatured получает список избранных товаров из кеша
// Возвращает (nil, nil) при промахе кеша
func (r *RedisClient) GetFeatured(ctx context.Context) ([]entity.Product, error) {
	data, err := r.client.Get(ctx, featuredCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get featured products from cache: %w", err)
	}

	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal featured products: %w", err)
	}

	return products, nil
}

// InvalidateFeatured сбрасывает кеш избранных товаров
func (r *RedisClient) InvalidateFeatured(ctx context.Context) error {
	if err := r.client.Del(ctx, featuredCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate featured cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
