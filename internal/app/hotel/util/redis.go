package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stayberries/internal/app/hotel/entity"
	"stayberries/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

// Ключи кеша выборок номеров. Обе выборки зависят от отзывов,
// поэтому инвалидируются вместе при создании отзыва.
const (
	AllRoomsCacheKey = "rooms:all"
	TopRoomsCacheKey = "rooms:top"
)

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) SetRooms(ctx context.Context, key string, rooms []entity.Room, ttl time.Duration) error {
	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("failed to marshal rooms: %w", err)
	}

	timer := metrics.NewRedisTimer("hotel-service", metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		metrics.RecordRedisError("hotel-service", metrics.RedisOpSet)
		return fmt.Errorf("failed to set rooms in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) GetRooms(ctx context.Context, key string) ([]entity.Room, error) {
	timer := metrics.NewRedisTimer("hotel-service", metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		metrics.RecordRedisError("hotel-service", metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get rooms from cache: %w", err)
	}

	var rooms []entity.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rooms: %w", err)
	}

	return rooms, nil
}

func (r *RedisClient) DeleteRooms(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	timer := metrics.NewRedisTimer("hotel-service", metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		metrics.RecordRedisError("hotel-service", metrics.RedisOpDel)
		return fmt.Errorf("failed to delete rooms from cache: %w", err)
	}

	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
