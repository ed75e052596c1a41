package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"busfinder/internal/domain/models"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "busfinder:form_options"

// RedisStore shares options between replicas as one JSON value.
type RedisStore struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, Key: defaultRedisKey, TTL: ttl}
}

func (s *RedisStore) key() string {
	if s.Key != "" {
		return s.Key
	}
	return defaultRedisKey
}

func (s *RedisStore) Get(ctx context.Context) (models.FormOptions, bool, error) {
	raw, err := s.Client.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.FormOptions{}, false, nil
	}
	if err != nil {
		return models.FormOptions{}, false, err
	}
	var opts models.FormOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		return models.FormOptions{}, false, err
	}
	return opts, true, nil
}

func (s *RedisStore) Set(ctx context.Context, opts models.FormOptions) error {
	raw, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	// redis treats 0 as "no expiry", matching MemoryStore.
	return s.Client.Set(ctx, s.key(), raw, s.TTL).Err()
}

func (s *RedisStore) Invalidate(ctx context.Context) error {
	return s.Client.Del(ctx, s.key()).Err()
}
