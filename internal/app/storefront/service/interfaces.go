package service

import (
	"context"

	"greenbasket/internal/app/storefront/entity"

	"github.com/google/uuid"
)

type ReviewServiceInterface interface {
	SubmitReview(ctx context.Context, userID uuid.UUID, req *entity.SubmitReviewRequest) error
	GetProductReviews(ctx context.Context, productID uuid.UUID) ([]entity.Review, error)
	GetOwnReview(ctx context.Context, productID, userID uuid.UUID) (*entity.Review, error)
}

type ProductServiceInterface interface {
	GetLatestProducts(ctx context.Context) ([]entity.Product, error)
	GetFeaturedProducts(ctx context.Context) ([]entity.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	SearchProducts(ctx context.Context, req *entity.SearchProductsRequest) (*entity.ProductListResponse, error)
	GetCategories(ctx context.Context) ([]entity.CategoryCount, error)
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
