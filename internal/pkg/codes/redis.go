package codes

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "verification_code:"

// RedisStore keeps codes in Redis with native TTL so they survive process
// restarts and are shared across instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store and verifies connectivity.
func NewRedisStore(addr string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Issue(email, code string, ttl time.Duration) error {
	ctx := context.Background()
	return s.client.Set(ctx, keyPrefix+email, code, ttl).Err()
}

func (s *RedisStore) Active(email string) (bool, error) {
	ctx := context.Background()
	_, err := s.client.Get(ctx, keyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) Consume(email, code string) (bool, error) {
	ctx := context.Background()
	stored, err := s.client.Get(ctx, keyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	return true, s.client.Del(ctx, keyPrefix+email).Err()
}

func (s *RedisStore) Drop(email string) error {
	ctx := context.Background()
	return s.client.Del(ctx, keyPrefix+email).Err()
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
