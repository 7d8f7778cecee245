package accessorytemplate

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/pixelforge/collectibles-api/internal/entities"
	"github.com/pixelforge/collectibles-api/internal/errors"
	redisclient "github.com/pixelforge/collectibles-api/internal/redis"
)

const (
	templateKeyPrefix = "template:"

	errTemplateNil     = "template cannot be nil"
	errTemplateIDEmpty = "template ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis template repository.
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

// NewRedis creates a new Redis-backed template repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Template == nil {
		return nil, errors.InvalidArgument(errTemplateNil)
	}
	if input.Template.ID == "" {
		return nil, errors.InvalidArgument(errTemplateIDEmpty)
	}

	key := templateKeyPrefix + input.Template.ID

	data, err := json.Marshal(input.Template)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal template")
	}

	created, err := r.client.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create template")
	}
	if !created {
		return nil, errors.AlreadyExistsf("template with ID %s already exists", input.Template.ID)
	}

	return &CreateOutput{Template: input.Template}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errTemplateIDEmpty)
	}

	key := templateKeyPrefix + input.ID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("template with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get template")
	}

	var tmpl entities.AccessoryTemplate
	if err := json.Unmarshal([]byte(result), &tmpl); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal template")
	}

	return &GetOutput{Template: &tmpl}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Template == nil {
		return nil, errors.InvalidArgument(errTemplateNil)
	}
	if input.Template.ID == "" {
		return nil, errors.InvalidArgument(errTemplateIDEmpty)
	}

	key := templateKeyPrefix + input.Template.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("template with ID %s not found", input.Template.ID)
	}

	data, err := json.Marshal(input.Template)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal template")
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update template")
	}

	return &UpdateOutput{Template: input.Template}, nil
}
