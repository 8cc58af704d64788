package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV keeps session values in Redis under a common key prefix, for
// deployments where several client instances share one signed-in session
// (kiosk fleets, shared terminals).
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV builds a Redis-backed session store.
func NewRedisKV(addr, password, prefix string) *RedisKV {
	if prefix == "" {
		prefix = "bookfind:session:"
	}
	return &RedisKV{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		prefix: prefix,
	}
}

func (s *RedisKV) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisKV) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *RedisKV) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}
