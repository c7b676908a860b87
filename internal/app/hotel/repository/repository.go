package repository

import (
	"context"
	"errors"

	"stayberries/internal/app/hotel/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidID       = errors.New("invalid document id")
)

// ParseID - единственная точка преобразования hex-строки во внутренний ObjectID.
// Все внешние ключи между коллекциями (roomId, bookingId) хранятся как hex-строки,
// конвертация выполняется только здесь и в $convert-стадиях самих pipeline.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// RoomRepository определяет read-side методы для номеров.
// Номера создаются вне этого сервиса, поэтому только выборки.
type RoomRepository interface {
	ListWithRatings(ctx context.Context) ([]entity.Room, error)
	ListWithRatingsByPrice(ctx context.Context, minPrice, maxPrice float64) ([]entity.Room, error)
	TopRated(ctx context.Context, limit int) ([]entity.Room, error)
	GetDetail(ctx context.Context, id primitive.ObjectID) (*entity.Room, error)
}

// BookingRepository определяет методы для работы с бронированиями
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Booking, error)
	GetByUserEmail(ctx context.Context, email string) ([]entity.Booking, error)
	UpdateDate(ctx context.Context, id primitive.ObjectID, bookingDate string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	MarkReviewed(ctx context.Context, id primitive.ObjectID) error
	MarkReviewedByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// ReviewRepository определяет методы для работы с отзывами
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByRoomID(ctx context.Context, roomID string) ([]entity.Review, error)
	GetAll(ctx context.Context) ([]entity.Review, error)
	DistinctBookingIDs(ctx context.Context) ([]string, error)
}
