package cartstorage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps the cart blob under a fixed Redis key, so multiple
// gateway replicas can share one cart.
type RedisStorage struct {
	client *redis.Client
	key    string
}

// NewRedisStorage connects to Redis and verifies the connection before
// returning the storage
func NewRedisStorage(redisURL, key string) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStorage{client: client, key: key}, nil
}

// Save overwrites the blob; the cart never expires on its own
func (s *RedisStorage) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save cart blob: %w", err)
	}
	return nil
}

// Load reads the blob, or returns (nil, nil) when the key is absent
func (s *RedisStorage) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart blob: %w", err)
	}
	return data, nil
}

// Close releases the underlying Redis connection
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
