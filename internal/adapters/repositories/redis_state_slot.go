package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis-backed implementation of the StateSlot port. Keys are stored under Prefix.
type RedisStateSlot struct {
	Client redis.UniversalClient
	Prefix string
}

func NewRedisStateSlot(client redis.UniversalClient, prefix string) *RedisStateSlot {
	return &RedisStateSlot{Client: client, Prefix: prefix}
}

func (s *RedisStateSlot) Get(ctx context.Context, key string) (string, bool, error) {
	if s.Client == nil {
		return "", false, errors.New("redis state slot: client is nil")
	}

	value, err := s.Client.Get(ctx, s.Prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get state slot %q: %w", key, err)
	}

	return value, true, nil
}

func (s *RedisStateSlot) Set(ctx context.Context, key string, value string) error {
	if s.Client == nil {
		return errors.New("redis state slot: client is nil")
	}

	if err := s.Client.Set(ctx, s.Prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set state slot %q: %w", key, err)
	}

	return nil
}
