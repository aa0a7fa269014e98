package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"greenbasket/internal/app/storefront/entity"
	"greenbasket/internal/app/storefront/repository"
	"greenbasket/internal/app/storefront/util"
	"greenbasket/pkg/logger"
	"greenbasket/pkg/metrics"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrProductNotFound = errors.New("product not found")
	ErrReviewNotFound  = errors.New("review not found")
)

// ReviewService обрабатывает бизнес-логику отзывов
// Координирует работу репозиториев, кеша карточек товаров и Kafka
type ReviewService struct {
	reviewRepo    repository.ReviewRepository
	productRepo   repository.ProductRepository
	cache         util.ProductCache
	kafkaProducer util.MessagePublisher
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	cache util.ProductCache,
	kafkaProducer util.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		productRepo:   productRepo,
		cache:         cache,
		kafkaProducer: kafkaProducer,
	}
}

// SubmitReview записывает отзыв пользователя о товаре
// Повторная отправка тем же пользователем обновляет существующий отзыв
// на месте (upsert), id и created_at отзыва при этом не меняются.
// Запись отзыва и пересчет агрегата товара выполняются репозиторием
// в одной транзакции
func (s *ReviewService) SubmitReview(ctx context.Context, userID uuid.UUID, req *entity.SubmitReviewRequest) error {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	// Проверяем существование товара до записи
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to get product: %w", err)
	}

	// Тип события определяем по наличию прежнего отзыва; на корректность
	// записи эта проверка не влияет - сам upsert атомарен
	eventType := "REVIEW_CREATED"
	existing, err := s.reviewRepo.GetByProductAndUser(ctx, productID, userID)
	if err == nil {
		eventType = "REVIEW_UPDATED"
	}

	now := time.Now()
	review := &entity.Review{
		ID:          uuid.New(),
		ProductID:   productID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Rating:      req.Rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// При upsert СУБД сохраняет id и created_at существующей строки,
	// поэтому в событии и метриках должна фигурировать она, а не
	// отброшенный свежий UUID
	if existing != nil {
		review.ID = existing.ID
		review.CreatedAt = existing.CreatedAt
	}

	if err := s.reviewRepo.Upsert(ctx, review); err != nil {
		return fmt.Errorf("failed to submit review: %w", err)
	}

	metrics.ReviewsSubmitted.Inc()
	metrics.ReviewsRating.Observe(float64(req.Rating))

	// Сбрасываем кеш карточки товара: страница должна перечитать свежий
	// агрегат из БД. Отзыв уже записан, проблемы с кешем не критичны
	if err := s.cache.InvalidateProduct(ctx, product.Slug); err != nil {
		logger.Warn().Err(err).Str("slug", product.Slug).Msg("Failed to invalidate product cache")
	}

	event := entity.ReviewEvent{
		EventType: eventType,
		ReviewID:  review.ID.String(),
		ProductID: productID.String(),
		UserID:    userID.String(),
		Rating:    review.Rating,
		Timestamp: time.Now(),
	}
	if err := s.publishReviewEvent(ctx, event); err != nil {
		// Отзыв уже записан, проблемы с Kafka не критичны
		logger.Warn().Err(err).Str("review_id", event.ReviewID).Msg("Failed to publish review event")
	}

	return nil
}

// GetProductReviews получает все отзывы товара, новые первыми
// Каждый отзыв содержит имя автора
func (s *ReviewService) GetProductReviews(ctx context.Context, productID uuid.UUID) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}

// GetOwnReview получает отзыв текущего пользователя о товаре
// Используется для предзаполнения формы редактирования
func (s *ReviewService) GetOwnReview(ctx context.Context, productID, userID uuid.UUID) (*entity.Review, error) {
	review, err := s.reviewRepo.GetByProductAndUser(ctx, productID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// publishReviewEvent отправляет событие об отзыве в Kafka
// Ключ - ProductID, чтобы события одного товара сохраняли порядок
func (s *ReviewService) publishReviewEvent(ctx context.Context, event entity.ReviewEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal review event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.ProductID, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
