package collection

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/pixelforge/collectibles-api/internal/entities"
	"github.com/pixelforge/collectibles-api/internal/errors"
	redisclient "github.com/pixelforge/collectibles-api/internal/redis"
)

const (
	collectionKeyPrefix = "collection:"

	errCollectionNil     = "collection cannot be nil"
	errCollectionIDEmpty = "collection ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis collection repository.
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

// NewRedis creates a new Redis-backed collection repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Collection == nil {
		return nil, errors.InvalidArgument(errCollectionNil)
	}
	if input.Collection.ID == "" {
		return nil, errors.InvalidArgument(errCollectionIDEmpty)
	}

	key := collectionKeyPrefix + input.Collection.ID

	data, err := json.Marshal(input.Collection)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal collection")
	}

	// SetNX so a double-create loses cleanly
	created, err := r.client.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create collection")
	}
	if !created {
		return nil, errors.AlreadyExistsf("collection with ID %s already exists", input.Collection.ID)
	}

	return &CreateOutput{Collection: input.Collection}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCollectionIDEmpty)
	}

	key := collectionKeyPrefix + input.ID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("collection with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get collection")
	}

	var coll entities.Collection
	if err := json.Unmarshal([]byte(result), &coll); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal collection")
	}

	return &GetOutput{Collection: &coll}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Collection == nil {
		return nil, errors.InvalidArgument(errCollectionNil)
	}
	if input.Collection.ID == "" {
		return nil, errors.InvalidArgument(errCollectionIDEmpty)
	}

	key := collectionKeyPrefix + input.Collection.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("collection with ID %s not found", input.Collection.ID)
	}

	data, err := json.Marshal(input.Collection)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal collection")
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update collection")
	}

	return &UpdateOutput{Collection: input.Collection}, nil
}
