package storage

import (
	"context"
	"errors"
	"fmt"

	"mystorefront/helpers"
	"mystorefront/service"

	"github.com/go-redis/redis/v8"
)

// Redis is a redis-backed interfaces.Storage: the durable tier when the
// storefront profile lives on a shared server instead of a local file. Keys
// are namespaced as prefix:key so several profiles can share one instance.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis creates a redis storage tier over an existing client. Panics on
// nil client or empty prefix.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{
		client: helpers.NilPanic(client, "adapters.storage.redis.go: redis client is required"),
		prefix: helpers.StrPanic(prefix, "adapters.storage.redis.go: prefix is required"),
	}
}

// NewRedisUniversalClient creates and configures an instance of the redis
// universal client from a redis URL (redis://host:port).
func NewRedisUniversalClient(redisAddr string) (redis.UniversalClient, error) {
	options, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("cant parse redis url: %w", err)
	}
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{options.Addr},
		DB:           options.DB,
		Username:     options.Username,
		Password:     options.Password,
		WriteTimeout: options.WriteTimeout,
		ReadTimeout:  options.ReadTimeout,
		DialTimeout:  options.DialTimeout,
		MaxRetries:   options.MaxRetries,
		PoolSize:     options.PoolSize,
		PoolTimeout:  options.PoolTimeout,
		MinIdleConns: options.MinIdleConns,
	}), nil
}

func (s *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.generateKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", service.NewEntityNotFoundError("key "+key+" not found", err)
		}
		return "", service.NewInternalServerError("redis read key error", fmt.Errorf("get %s: %w", key, err))
	}
	return v, nil
}

func (s *Redis) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.generateKey(key), value, 0).Err(); err != nil {
		return service.NewInternalServerError("redis write key error", fmt.Errorf("set %s: %w", key, err))
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.generateKey(key)).Err(); err != nil {
		return service.NewInternalServerError("redis delete key error", fmt.Errorf("del %s: %w", key, err))
	}
	return nil
}

func (s *Redis) generateKey(key string) string {
	return s.prefix + ":" + key
}
