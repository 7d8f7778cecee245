package marketplace

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/pixelforge/collectibles-api/internal/entities"
	"github.com/pixelforge/collectibles-api/internal/errors"
	redisclient "github.com/pixelforge/collectibles-api/internal/redis"
)

const (
	marketplaceKeyPrefix = "marketplace:"

	errMarketplaceNil     = "marketplace cannot be nil"
	errMarketplaceIDEmpty = "marketplace ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis marketplace repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed marketplace repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Marketplace == nil {
		return nil, errors.InvalidArgument(errMarketplaceNil)
	}
	if input.Marketplace.ID == "" {
		return nil, errors.InvalidArgument(errMarketplaceIDEmpty)
	}

	key := marketplaceKeyPrefix + input.Marketplace.ID

	data, err := json.Marshal(input.Marketplace)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal marketplace")
	}

	created, err := r.client.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create marketplace")
	}
	if !created {
		return nil, errors.AlreadyExistsf("marketplace with ID %s already exists", input.Marketplace.ID)
	}

	return &CreateOutput{Marketplace: input.Marketplace}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errMarketplaceIDEmpty)
	}

	key := marketplaceKeyPrefix + input.ID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("marketplace with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get marketplace")
	}

	var mkt entities.Marketplace
	if err := json.Unmarshal([]byte(result), &mkt); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal marketplace")
	}

	return &GetOutput{Marketplace: &mkt}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Marketplace == nil {
		return nil, errors.InvalidArgument(errMarketplaceNil)
	}
	if input.Marketplace.ID == "" {
		return nil, errors.InvalidArgument(errMarketplaceIDEmpty)
	}

	key := marketplaceKeyPrefix + input.Marketplace.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("marketplace with ID %s not found", input.Marketplace.ID)
	}

	data, err := json.Marshal(input.Marketplace)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal marketplace")
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update marketplace")
	}

	return &UpdateOutput{Marketplace: input.Marketplace}, nil
}
