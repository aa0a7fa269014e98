package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"greenbasket/internal/app/storefront/entity"
	"greenbasket/internal/app/storefront/repository"
	"greenbasket/internal/app/storefront/util"
	"greenbasket/pkg/logger"
	"greenbasket/pkg/metrics"

	"github.com/google/uuid"
)

var (
	ErrProductSlugExists = errors.New("product with this slug already exists")
)

const (
	latestProductsLimit   = 8
	featuredProductsLimit = 4
	defaultPageSize       = 12
	maxPageSize           = 50
	productCacheTTL       = time.Hour
)

// ProductService обрабатывает бизнес-логику каталога витрины
// Координирует работу репозитория товаров, Redis кеша и Kafka producer
type ProductService struct {
	productRepo   repository.ProductRepository
	cache         util.ProductCache
	kafkaProducer util.MessagePublisher
}

// NewProductService создает новый сервис каталога с внедрением зависимостей
func NewProductService(
	productRepo repository.ProductRepository,
	cache util.ProductCache,
	kafkaProducer util.MessagePublisher,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		cache:         cache,
		kafkaProducer: kafkaProducer,
	}
}

// GetLatestProducts получает последние добавленные товары для главной страницы
func (s *ProductService) GetLatestProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetLatest(ctx, latestProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest products: %w", err)
	}

	return products, nil
}

// GetFeaturedProducts получает избранные товары с кешированием в Redis
// Сначала проверяет кеш, если нет - загружает из БД и кеширует
func (s *ProductService) GetFeaturedProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.cache.GetFeatured(ctx)
	if err == nil && len(products) > 0 {
		metrics.RecordCacheHit("storefront", "products:featured")
		return products, nil
	}
	metrics.RecordCacheMiss("storefront", "products:featured")

	products, err = s.productRepo.GetFeatured(ctx, featuredProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured products: %w", err)
	}

	if err := s.cache.SetFeatured(ctx, products, productCacheTTL); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("Failed to cache featured products")
	}

	return products, nil
}

// GetProductBySlug получает карточку товара по слагу с кешированием
// Кеш сбрасывается при записи отзыва и при изменении товара
func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := s.cache.GetProduct(ctx, slug)
	if err == nil && product != nil {
		metrics.RecordCacheHit("storefront", "product:slug")
		return product, nil
	}
	metrics.RecordCacheMiss("storefront", "product:slug")

	product, err = s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.cache.SetProduct(ctx, product, productCacheTTL); err != nil {
		logger.Warn().Err(err).Str("slug", slug).Msg("Failed to cache product")
	}

	return product, nil
}

// GetProductByID получает товар по ID без кеширования
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// SearchProducts выполняет каталожный поиск с фильтрами и пагинацией
func (s *ProductService) SearchProducts(ctx context.Context, req *entity.SearchProductsRequest) (*entity.ProductListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = defaultPageSize
	}
	if req.Limit > maxPageSize {
		req.Limit = maxPageSize
	}

	products, total, err := s.productRepo.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return &entity.ProductListResponse{
		Products:   products,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(req.Limit))),
		Page:       req.Page,
	}, nil
}

// GetCategories получает список категорий с количеством товаров
func (s *ProductService) GetCategories(ctx context.Context) ([]entity.CategoryCount, error) {
	categories, err := s.productRepo.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

// CreateProduct создает новый товар (админ)
func (s *ProductService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	product := &entity.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        req.Slug,
		Category:    req.Category,
		Brand:       req.Brand,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsFeatured:  req.IsFeatured,
		Banner:      req.Banner,
		CreatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductSlugExists) {
			return nil, ErrProductSlugExists
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if product.IsFeatured {
		if err := s.cache.InvalidateFeatured(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to invalidate featured cache")
		}
	}

	return product, nil
}

// UpdateProduct обновляет товар (админ) и сбрасывает кеш его карточки
// При изменении цены отправляет событие PRODUCT_UPDATED в Kafka
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	// Слаг мог измениться - кеш сбрасываем по старому ключу
	oldSlug := product.Slug
	oldPrice := product.Price

	// Обновляем только переданные поля (частичное обновление)
	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Slug != "" {
		product.Slug = req.Slug
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Brand != "" {
		product.Brand = req.Brand
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	// Stock - указатель: ноль означает "товара нет", а не "поле не передано"
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.Banner != "" {
		product.Banner = req.Banner
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductSlugExists) {
			return nil, ErrProductSlugExists
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if err := s.cache.InvalidateProduct(ctx, oldSlug); err != nil {
		logger.Warn().Err(err).Str("slug", oldSlug).Msg("Failed to invalidate product cache")
	}
	if err := s.cache.InvalidateFeatured(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate featured cache")
	}

	// Событие отправляется только при смене цены
	if product.Price != oldPrice {
		event := entity.ProductEvent{
			EventType: "PRODUCT_UPDATED",
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Timestamp: time.Now(),
		}
		if err := s.publishProductEvent(ctx, event); err != nil {
			// Товар уже обновлен, проблемы с Kafka не критичны
			logger.Warn().Err(err).Str("product_id", id.String()).Msg("Failed to publish product event")
		}
	}

	return product, nil
}

// DeleteProduct удаляет товар (админ) и сбрасывает кеш его карточки
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err := s.cache.InvalidateProduct(ctx, product.Slug); err != nil {
		logger.Warn().Err(err).Str("slug", product.Slug).Msg("Failed to invalidate product cache")
	}
	if err := s.cache.InvalidateFeatured(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate featured cache")
	}

	return nil
}

// publishProductEvent отправляет событие о товаре в Kafka
func (s *ProductService) publishProductEvent(ctx context.Context, event entity.ProductEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.ProductID.String(), eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
