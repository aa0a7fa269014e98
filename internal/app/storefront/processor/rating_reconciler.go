package processor

import (
	"context"

	"greenbasket/internal/app/storefront/repository"
	"greenbasket/pkg/logger"
	"greenbasket/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// RatingReconciler периодически пересчитывает денормализованные поля
// rating/num_reviews всех товаров полным проходом по отзывам.
// Основной путь записи держит агрегат в актуальном состоянии сам;
// сверка устраняет расхождения после ручных правок данных или сбоев
type RatingReconciler struct {
	cron        *cron.Cron
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
}

// NewRatingReconciler создает новый планировщик сверки рейтингов
func NewRatingReconciler(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
) *RatingReconciler {
	return &RatingReconciler{
		cron:        cron.New(),
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
	}
}

// Start запускает сверку по cron-расписанию
func (r *RatingReconciler) Start(ctx context.Context, schedule string) error {
	_, err := r.cron.AddFunc(schedule, func() {
		if err := r.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("Rating reconciliation failed")
		}
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	logger.Info().Str("schedule", schedule).Msg("Rating reconciler started")

	return nil
}

// Run выполняет один полный проход сверки по всем товарам
// Ошибка отдельного товара не прерывает проход
func (r *RatingReconciler) Run(ctx context.Context) error {
	ids, err := r.productRepo.GetAllIDs(ctx)
	if err != nil {
		metrics.RatingReconciliations.WithLabelValues("failed").Inc()
		return err
	}

	var failed int
	for _, id := range ids {
		if err := r.reviewRepo.RecalculateRating(ctx, id); err != nil {
			failed++
			logger.Warn().Err(err).Str("product_id", id.String()).Msg("Failed to reconcile product rating")
		}
	}

	if failed > 0 {
		metrics.RatingReconciliations.WithLabelValues("partial").Inc()
	} else {
		metrics.RatingReconciliations.WithLabelValues("success").Inc()
	}

	logger.Info().
		Int("products", len(ids)).
		Int("failed", failed).
		Msg("Rating reconciliation completed")

	return nil
}

// Stop останавливает планировщик, дожидаясь завершения текущего прохода
func (r *RatingReconciler) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Rating reconciler stopped")
}
