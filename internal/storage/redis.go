package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (s *RedisStorage) GetItem(c context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(c, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed getting key=%s from redis with error=%w", key, err)
	}
	return value, true, nil
}

func (s *RedisStorage) SetItem(c context.Context, key string, value string) error {
	err := s.client.Set(c, key, value, 0).Err()
	if err != nil {
		return fmt.Errorf("failed setting key=%s in redis with error=%w", key, err)
	}
	return nil
}

func (s *RedisStorage) RemoveItem(c context.Context, key string) error {
	err := s.client.Del(c, key).Err()
	if err != nil {
		return fmt.Errorf("failed deleting key=%s from redis with error=%w", key, err)
	}
	return nil
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
