package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"floorplan/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	scanBatch             = 100
)

// Nil is returned (wrapped) by Get when the key does not exist.
var Nil = redis.Nil

// RedisCache stores JSON values under string keys. Strings are stored as is.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (cache *redisCache) trace(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

func fail(op, key, action string, err error) error {
	log.Error().Err(err).Str("key", key).Str("op", op).Msg("failed to " + action)

	return fmt.Errorf("failed to %s: %w", action, err)
}

func encode(value any) ([]byte, error) {
	if s, ok := value.(string); ok {
		return []byte(s), nil
	}

	return json.Marshal(value) //nolint:wrapcheck
}

func decode(raw []byte, value any) error {
	if s, ok := value.(*string); ok {
		*s = string(raw)

		return nil
	}

	return json.Unmarshal(raw, value) //nolint:wrapcheck
}

// Clear removes every key matching pattern, scanning in batches.
func (cache *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := cache.trace(ctx, "Clear", pattern)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var (
		cursor  uint64
		removed int64
	)

	for {
		var keys []string

		keys, cursor, err = cache.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fail("Clear", pattern, "scan cache keys", err)
		}

		if len(keys) > 0 {
			n, delErr := cache.client.Del(ctx, keys...).Result()
			if delErr != nil {
				return fail("Clear", pattern, "delete cache keys", delErr)
			}

			removed += n
		}

		if cursor == 0 {
			break
		}
	}

	scope.SetAttribute("cache.removed", removed)

	return nil
}

func (cache *redisCache) Exists(ctx context.Context, key string) (exists bool, err error) {
	ctx, scope := cache.trace(ctx, "Exists", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	count, err := cache.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fail("Exists", key, "check cache key", err)
	}

	return count > 0, nil
}

func (cache *redisCache) Ping(ctx context.Context) error {
	if err := cache.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping cache: %w", err)
	}

	return nil
}

func (cache *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := cache.trace(ctx, "Delete", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = cache.client.Del(ctx, key).Err(); err != nil {
		return fail("Delete", key, "delete cache value", err)
	}

	return nil
}

// Get decodes the value under key into value. A miss returns an error
// wrapping Nil and is not traced as a failure.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.trace(ctx, "Get", key)
	defer scope.End()
	defer func() {
		if !errors.Is(err, Nil) {
			scope.TraceIfError(err)
		}
	}()

	raw, err := cache.client.Get(ctx, key).Bytes()
	if errors.Is(err, Nil) {
		scope.SetAttribute("cache.hit", false)

		return fmt.Errorf("cache miss for %s: %w", key, err)
	}

	if err != nil {
		return fail("Get", key, "get cache value", err)
	}

	scope.SetAttribute("cache.hit", true)

	if err = decode(raw, value); err != nil {
		return fail("Get", key, "decode cache value", err)
	}

	return nil
}

// Save stores value under key for duration seconds. Zero keeps the key without expiry.
func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := cache.trace(ctx, "Save", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload, err := encode(value)
	if err != nil {
		return fail("Save", key, "encode cache value", err)
	}

	if err = cache.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		return fail("Save", key, "set cache value", err)
	}

	log.Debug().Str("key", key).Int("ttl", duration).Msg("cache saved")

	return nil
}
