package processor

import (
	"context"
	"errors"
	"testing"

	"greenbasket/internal/app/storefront/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRatingReconciler_Run_RecalculatesAllProducts(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	reviewRepo := new(mocks.MockReviewRepository)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	productRepo.On("GetAllIDs", mock.Anything).Return(ids, nil)
	for _, id := range ids {
		reviewRepo.On("RecalculateRating", mock.Anything, id).Return(nil)
	}

	reconciler := NewRatingReconciler(productRepo, reviewRepo)
	err := reconciler.Run(context.Background())

	assert.NoError(t, err)
	reviewRepo.AssertNumberOfCalls(t, "RecalculateRating", 3)
}

func TestRatingReconciler_Run_SingleFailureDoesNotAbort(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	reviewRepo := new(mocks.MockReviewRepository)

	broken := uuid.New()
	healthy := uuid.New()
	productRepo.On("GetAllIDs", mock.Anything).Return([]uuid.UUID{broken, healthy}, nil)
	reviewRepo.On("RecalculateRating", mock.Anything, broken).Return(errors.New("db error"))
	reviewRepo.On("RecalculateRating", mock.Anything, healthy).Return(nil)

	reconciler := NewRatingReconciler(productRepo, reviewRepo)
	err := reconciler.Run(context.Background())

	assert.NoError(t, err)
	reviewRepo.AssertCalled(t, "RecalculateRating", mock.Anything, healthy)
}

func TestRatingReconciler_Run_ListError(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	reviewRepo := new(mocks.MockReviewRepository)

	productRepo.On("GetAllIDs", mock.Anything).Return(nil, errors.New("db down"))

	reconciler := NewRatingReconciler(productRepo, reviewRepo)
	err := reconciler.Run(context.Background())

	assert.Error(t, err)
	reviewRepo.AssertNotCalled(t, "RecalculateRating")
}

func TestRatingReconciler_Run_NoProducts(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	reviewRepo := new(mocks.MockReviewRepository)

	productRepo.On("GetAllIDs", mock.Anything).Return([]uuid.UUID{}, nil)

	reconciler := NewRatingReconciler(productRepo, reviewRepo)
	err := reconciler.Run(context.Background())

	assert.NoError(t, err)
	reviewRepo.AssertNotCalled(t, "RecalculateRating")
}

func TestRatingReconciler_StartInvalidSchedule(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	reviewRepo := new(mocks.MockReviewRepository)

	reconciler := NewRatingReconciler(productRepo, reviewRepo)
	err := reconciler.Start(context.Background(), "not a schedule")

	assert.Error(t, err)
}
