package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studio/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName = "cache"
	attributeKey  = "cache.key"
	scanBatchSize = 100
)

// Nil is returned, wrapped, by Get on a miss.
const Nil = redis.Nil

type RedisCache interface {
	// Save stores value as JSON, or verbatim when it is a string, for ttl seconds.
	Save(ctx context.Context, key string, value any, ttl int) (err error)
	// Get decodes the stored value into dest, which must be a pointer.
	Get(ctx context.Context, key string, dest any) (err error)
	Delete(ctx context.Context, key string) error
	// Clear removes every key matching the glob pattern.
	Clear(ctx context.Context, pattern string) error
	// Increment bumps a counter, starting its ttl seconds window on the first hit.
	Increment(ctx context.Context, key string, ttl int) (int64, error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{client: client, otel: ot}
}

func (c *redisCache) start(ctx context.Context, operation, key string) (context.Context, otel.Scope) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+operation)
	scope.SetAttribute(attributeKey, key)

	return ctx, scope
}

func (c *redisCache) Save(ctx context.Context, key string, value any, ttl int) (err error) {
	ctx, scope := c.start(ctx, "Save", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload, err := encode(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err = c.client.Set(ctx, key, payload, time.Duration(ttl)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	return nil
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (err error) {
	ctx, scope := c.start(ctx, "Get", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if err = decode(payload, dest); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := c.start(ctx, "Delete", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

func (c *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := c.start(ctx, "Clear", pattern)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	keys := make([]string, 0, scanBatchSize)
	flush := func() error {
		if len(keys) == 0 {
			return nil
		}

		if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to delete cache values: %w", err)
		}

		keys = keys[:0]

		return nil
	}

	iter := c.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())

		if len(keys) == scanBatchSize {
			if err = flush(); err != nil {
				return err
			}
		}
	}

	if err = iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	return flush()
}

func (c *redisCache) Increment(ctx context.Context, key string, ttl int) (count int64, err error) {
	ctx, scope := c.start(ctx, "Increment", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	count, err = c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	if count == 1 {
		if err = c.client.Expire(ctx, key, time.Duration(ttl)*time.Second).Err(); err != nil {
			return count, fmt.Errorf("failed to set counter expiry: %w", err)
		}
	}

	return count, nil
}

func encode(value any) ([]byte, error) {
	switch typed := value.(type) {
	case string:
		return []byte(typed), nil
	case []byte:
		return typed, nil
	}

	return json.Marshal(value)
}

func decode(payload []byte, dest any) error {
	switch typed := dest.(type) {
	case *string:
		*typed = string(payload)

		return nil
	case *[]byte:
		*typed = payload

		return nil
	}

	return json.Unmarshal(payload, dest)
}
