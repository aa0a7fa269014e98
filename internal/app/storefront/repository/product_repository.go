package repository

import (
	"context"
	"errors"

	"greenbasket/internal/app/storefront/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает новый товар
// Уникальность слага обеспечивается UNIQUE constraint на уровне БД
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Create(product)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrProductSlugExists
		}
		return result.Error
	}
	return nil
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetBySlug получает товар по слагу для страницы товара
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).First(&product, "slug = ?", slug)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetLatest получает последние добавленные товары для главной страницы
func (r *productRepository) GetLatest(ctx context.Context, limit int) ([]entity.Product, error) {
	var products []entity.Product
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&products)

	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// GetFeatured получает избранные товары для баннера главной страницы
func (r *productRepository) GetFeatured(ctx context.Context, limit int) ([]entity.Product, error) {
	var products []entity.Product
	result := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products)

	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// Search выполняет каталожный поиск с фильтрами, сортировкой и пагинацией
// Возвращает страницу товаров и общее количество совпадений для расчета страниц
func (r *productRepository) Search(ctx context.Context, req *entity.SearchProductsRequest) ([]entity.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if req.Query != "" && req.Query != "all" {
		query = query.Where("name ILIKE ?", "%"+req.Query+"%")
	}
	if req.Category != "" && req.Category != "all" {
		query = query.Where("category = ?", req.Category)
	}
	if req.PriceMax > 0 {
		query = query.Where("price >= ? AND price <= ?", req.PriceMin, req.PriceMax)
	}
	if req.MinRating > 0 {
		query = query.Where("rating >= ?", req.MinRating)
	}

	// Общее количество считаем по тем же фильтрам, что и выборку страницы
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch req.Sort {
	case "lowest":
		query = query.Order("price ASC")
	case "highest":
		query = query.Order("price DESC")
	case "rating":
		query = query.Order("rating DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var products []entity.Product
	result := query.
		Offset((req.Page - 1) * req.Limit).
		Limit(req.Limit).
		Find(&products)

	if result.Error != nil {
		return nil, 0, result.Error
	}

	return products, total, nil
}

// GetCategories получает список категорий с количеством товаров в каждой
func (r *productRepository) GetCategories(ctx context.Context) ([]entity.CategoryCount, error) {
	var categories []entity.CategoryCount
	result := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("category ASC").
		Scan(&categories)

	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

// Update обновляет товар
// Rating и NumReviews здесь не трогаются: они принадлежат пересчету отзывов
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Model(product).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"name":        product.Name,
		"slug":        product.Slug,
		"category":    product.Category,
		"brand":       product.Brand,
		"description": product.Description,
		"price":       product.Price,
		"stock":       product.Stock,
		"is_featured": product.IsFeatured,
		"banner":      product.Banner,
	})

	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrProductSlugExists
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete удаляет товар
// Отзывы удаляются автоматически через CASCADE
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// GetAllIDs получает ID всех товаров для фоновой сверки рейтингов
func (r *productRepository) GetAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Pluck("id", &ids)

	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}
