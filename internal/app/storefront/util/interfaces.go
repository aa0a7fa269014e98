package util

import (
	"context"
	"time"

	"greenbasket/internal/app/storefront/entity"
)

// ProductCache интерфейс кеша карточек товаров
// Используется для dependency injection и упрощения тестирования
type ProductCache interface {
	SetProduct(ctx context.Context, product *entity.Product, ttl time.Duration) error
	GetProduct(ctx context.Context, slug string) (*entity.Product, error)
	InvalidateProduct(ctx context.Context, slug string) error
	SetFeatured(ctx context.Context, products []entity.Product, ttl time.Duration) error
	GetFeatured(ctx context.Context) ([]entity.Product, error)
	InvalidateFeatured(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
