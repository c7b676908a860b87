package util

import (
	"context"
	"time"

	"stayberries/internal/app/hotel/entity"
)

// RoomCache интерфейс для кеша выборок номеров.
// Используется для dependency injection и упрощения тестирования.
type RoomCache interface {
	SetRooms(ctx context.Context, key string, rooms []entity.Room, ttl time.Duration) error
	GetRooms(ctx context.Context, key string) ([]entity.Room, error)
	DeleteRooms(ctx context.Context, keys ...string) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka).
// Используется для dependency injection и упрощения тестирования.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
