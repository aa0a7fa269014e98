package util

import (
	"context"
	"testing"
	"time"

	"greenbasket/internal/app/storefront/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedisClientTestSuite struct {
	suite.Suite
	mini   *miniredis.Miniredis
	client *RedisClient
}

func TestRedisClientSuite(t *testing.T) {
	suite.Run(t, new(RedisClientTestSuite))
}

func (s *RedisClientTestSuite) SetupTest() {
	var err error
	s.mini, err = miniredis.Run()
	require.NoError(s.T(), err)

	rdb := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.client = NewRedisClientFromExisting(rdb)
}

func (s *RedisClientTestSuite) TearDownTest() {
	s.client.Close()
	s.mini.Close()
}

func (s *RedisClientTestSuite) TestProductRoundTrip() {
	ctx := context.Background()
	product := &entity.Product{
		ID:         uuid.New(),
		Name:       "Green Tea",
		Slug:       "green-tea",
		Price:      12.50,
		Rating:     4.5,
		NumReviews: 2,
	}

	err := s.client.SetProduct(ctx, product, time.Hour)
	s.NoError(err)

	got, err := s.client.GetProduct(ctx, "green-tea")
	s.NoError(err)
	s.Require().NotNil(got)
	s.Equal(product.ID, got.ID)
	s.Equal(4.5, got.Rating)
	s.Equal(2, got.NumReviews)
}

func (s *RedisClientTestSuite) TestGetProduct_MissReturnsNilNil() {
	ctx := context.Background()

	got, err := s.client.GetProduct(ctx, "missing")

	s.NoError(err)
	s.Nil(got)
}

func (s *RedisClientTestSuite) TestInvalidateProduct() {
	ctx := context.Background()
	product := &entity.Product{ID: uuid.New(), Slug: "green-tea"}

	s.NoError(s.client.SetProduct(ctx, product, time.Hour))
	s.NoError(s.client.InvalidateProduct(ctx, "green-tea"))

	got, err := s.client.GetProduct(ctx, "green-tea")
	s.NoError(err)
	s.Nil(got)
}

func (s *RedisClientTestSuite) TestInvalidateProduct_MissingKeyIsNoop() {
	ctx := context.Background()

	s.NoError(s.client.InvalidateProduct(ctx, "never-cached"))
}

func (s *RedisClientTestSuite) TestProductTTLExpiry() {
	ctx := context.Background()
	product := &entity.Product{ID: uuid.New(), Slug: "green-tea"}

	s.NoError(s.client.SetProduct(ctx, product, time.Minute))

	s.mini.FastForward(2 * time.Minute)

	got, err := s.client.GetProduct(ctx, "green-tea")
	s.NoError(err)
	s.Nil(got)
}

func (s *RedisClientTestSuite) TestFeaturedRoundTrip() {
	ctx := context.Background()
	products := []entity.Product{
		{ID: uuid.New(), Slug: "green-tea", IsFeatured: true},
		{ID: uuid.New(), Slug: "black-tea", IsFeatured: true},
	}

	s.NoError(s.client.SetFeatured(ctx, products, time.Hour))

	got, err := s.client.GetFeatured(ctx)
	s.NoError(err)
	s.Len(got, 2)
	s.Equal("green-tea", got[0].Slug)
}

func (s *RedisClientTestSuite) TestGetFeatured_MissReturnsNilNil() {
	ctx := context.Background()

	got, err := s.client.GetFeatured(ctx)

	s.NoError(err)
	s.Nil(got)
}

func (s *RedisClientTestSuite) TestInvalidateFeatured() {
	ctx := context.Background()
	products := []entity.Product{{ID: uuid.New(), Slug: "green-tea"}}

	s.NoError(s.client.SetFeatured(ctx, products, time.Hour))
	s.NoError(s.client.InvalidateFeatured(ctx))

	got, err := s.client.GetFeatured(ctx)
	s.NoError(err)
	s.Nil(got)
}
