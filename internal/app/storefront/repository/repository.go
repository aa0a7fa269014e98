package repository

import (
	"context"
	"errors"

	"greenbasket/internal/app/storefront/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrProductNotFound   = errors.New("product not found")
	ErrReviewNotFound    = errors.New("review not found")
	ErrProductSlugExists = errors.New("product with this slug already exists")
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	GetLatest(ctx context.Context, limit int) ([]entity.Product, error)
	GetFeatured(ctx context.Context, limit int) ([]entity.Product, error)
	Search(ctx context.Context, req *entity.SearchProductsRequest) ([]entity.Product, int64, error)
	GetCategories(ctx context.Context) ([]entity.CategoryCount, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetAllIDs(ctx context.Context) ([]uuid.UUID, error)
}

type ReviewRepository interface {
	Upsert(ctx context.Context, review *entity.Review) error
	GetByProductID(ctx context.Context, productID uuid.UUID) ([]entity.Review, error)
	GetByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*entity.Review, error)
	RecalculateRating(ctx context.Context, productID uuid.UUID) error
}
