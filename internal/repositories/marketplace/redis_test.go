package marketplace_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/pixelforge/collectibles-api/internal/entities"
	"github.com/pixelforge/collectibles-api/internal/errors"
	redisclient "github.com/pixelforge/collectibles-api/internal/redis"
	"github.com/pixelforge/collectibles-api/internal/repositories/marketplace"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    redisclient.Client
	repo      marketplace.Repository
	ctx       context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	s.client = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	repo, err := marketplace.NewRedis(&marketplace.RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.miniRedis.Close()
}

func (s *RedisRepositoryTestSuite) testMarketplace() *entities.Marketplace {
	return &entities.Marketplace{
		ID:             "mkt_1",
		CollectionID:   "coll_1",
		Active:         true,
		Listings:       make(map[string]*entities.Listing),
		FeeBasisPoints: 250,
		FeeRecipient:   "0xfees",
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	_, err := s.repo.Create(s.ctx, marketplace.CreateInput{Marketplace: s.testMarketplace()})
	s.NoError(err)

	got, err := s.repo.Get(s.ctx, marketplace.GetInput{ID: "mkt_1"})
	s.NoError(err)
	s.True(got.Marketplace.Active)
	s.Equal(int64(250), got.Marketplace.FeeBasisPoints)
}

func (s *RedisRepositoryTestSuite) TestCreateDuplicate() {
	_, err := s.repo.Create(s.ctx, marketplace.CreateInput{Marketplace: s.testMarketplace()})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, marketplace.CreateInput{Marketplace: s.testMarketplace()})
	s.Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestUpdatePersistsListings() {
	_, err := s.repo.Create(s.ctx, marketplace.CreateInput{Marketplace: s.testMarketplace()})
	s.Require().NoError(err)

	mkt := s.testMarketplace()
	mkt.Listings["acc_1"] = &entities.Listing{
		Item:     &entities.AccessoryItem{ID: "acc_1", Type: entities.AccessoryTypeHead},
		Seller:   "0xseller",
		Price:    1000,
		ListedAt: 1700000000000,
	}
	mkt.TotalVolume = 500
	mkt.TotalSales = 1

	_, err = s.repo.Update(s.ctx, marketplace.UpdateInput{Marketplace: mkt})
	s.NoError(err)

	got, err := s.repo.Get(s.ctx, marketplace.GetInput{ID: "mkt_1"})
	s.NoError(err)
	s.Len(got.Marketplace.Listings, 1)

	listing := got.Marketplace.Listing("acc_1")
	s.Require().NotNil(listing)
	s.Equal("0xseller", listing.Seller)
	s.Equal(int64(1000), listing.Price)
	s.Equal("acc_1", listing.Item.ID)
	s.Equal(int64(500), got.Marketplace.TotalVolume)
	s.Equal(int64(1), got.Marketplace.TotalSales)
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, marketplace.GetInput{ID: "mkt_missing"})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
