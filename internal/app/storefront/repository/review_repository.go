package repository

import (
	"context"
	"errors"

	"greenbasket/internal/app/storefront/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reviewRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewReviewRepository создает новый репозиторий отзывов
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Upsert атомарно записывает отзыв и пересчитывает агрегат товара
// в одной транзакции:
//  1. INSERT ... ON CONFLICT (product_id, user_id) DO UPDATE - существующий
//     отзыв обновляется на месте, id и created_at не меняются; гонка двух
//     одновременных "первых" отзывов закрыта уникальным индексом
//  2. Полный пересчет AVG(rating) и COUNT(*) по всем отзывам товара
//  3. Запись обоих значений в строку товара
//
// При любой ошибке транзакция откатывается целиком: частичные состояния
// (отзыв без обновленного агрегата) невозможны
func (r *reviewRepository) Upsert(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "description", "rating", "updated_at",
			}),
		}).Create(review)
		if result.Error != nil {
			return result.Error
		}

		return recalculateRating(tx, review.ProductID)
	})
}

// GetByProductID получает все отзывы товара, новые первыми
// Подгружает автора отзыва для отображения имени
func (r *reviewRepository) GetByProductID(ctx context.Context, productID uuid.UUID) ([]entity.Review, error) {
	var reviews []entity.Review
	result := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews)

	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}

// GetByProductAndUser получает отзыв пользователя о товаре
// Используется для предзаполнения формы редактирования
func (r *reviewRepository) GetByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	result := r.db.WithContext(ctx).
		First(&review, "product_id = ? AND user_id = ?", productID, userID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, result.Error
	}

	return &review, nil
}

// RecalculateRating пересчитывает агрегат товара вне пути записи отзыва
// Используется фоновой сверкой для устранения расхождений
func (r *reviewRepository) RecalculateRating(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return recalculateRating(tx, productID)
	})
}

// recalculateRating выполняет полный пересчет рейтинга товара внутри tx
// COALESCE дает 0 при отсутствии отзывов
func recalculateRating(tx *gorm.DB, productID uuid.UUID) error {
	var summary entity.RatingSummary
	err := tx.Model(&entity.Review{}).
		Select("COALESCE(AVG(rating), 0) AS rating, COUNT(*) AS num_reviews").
		Where("product_id = ?", productID).
		Scan(&summary).Error
	if err != nil {
		return err
	}

	result := tx.Model(&entity.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":      summary.Rating,
			"num_reviews": summary.NumReviews,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
