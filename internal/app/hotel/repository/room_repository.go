package repository

import (
	"context"
	"fmt"

	"stayberries/internal/app/hotel/entity"
	"stayberries/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type roomRepository struct {
	collection *mongo.Collection
}

// NewRoomRepository создает репозиторий номеров
func NewRoomRepository(db *mongo.Database) RoomRepository {
	return &roomRepository{
		collection: db.Collection("rooms"),
	}
}

// ratingStages - общие стадии pipeline для подсчета рейтинга номера:
// _id приводится к строке, отзывы подтягиваются по строковому roomId,
// averageRating = $avg по рейтингам ($avg от пустого массива дает null,
// поэтому номер без отзывов получает null, а не 0).
func ratingStages() []bson.D {
	return []bson.D{
		{{Key: "$addFields", Value: bson.D{
			{Key: "stringId", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "reviews"},
			{Key: "localField", Value: "stringId"},
			{Key: "foreignField", Value: "roomId"},
			{Key: "as", Value: "reviews"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$reviews.rating"}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "stringId", Value: 0}}}},
	}
}

func (r *roomRepository) aggregateRooms(ctx context.Context, pipeline []bson.D) ([]entity.Room, error) {
	timer := metrics.NewDbTimer("hotel-service", metrics.DbOpAggregate, "rooms")
	defer timer.ObserveDuration()

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordDbError("hotel-service", metrics.DbOpAggregate)
		return nil, fmt.Errorf("failed to aggregate rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []entity.Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}

	return rooms, nil
}

// ListWithRatings возвращает все номера с вычисленным средним рейтингом
func (r *roomRepository) ListWithRatings(ctx context.Context) ([]entity.Room, error) {
	return r.aggregateRooms(ctx, ratingStages())
}

// ListWithRatingsByPrice возвращает номера с ценой в диапазоне [minPrice, maxPrice]
// включительно, с тем же join отзывов
func (r *roomRepository) ListWithRatingsByPrice(ctx context.Context, minPrice, maxPrice float64) ([]entity.Room, error) {
	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.D{
			{Key: "price", Value: bson.D{
				{Key: "$gte", Value: minPrice},
				{Key: "$lte", Value: maxPrice},
			}},
		}}},
	}, ratingStages()...)

	return r.aggregateRooms(ctx, pipeline)
}

// TopRated возвращает limit номеров с наибольшим средним рейтингом.
// BSON-порядок ставит null ниже любых чисел, поэтому при сортировке
// averageRating: -1 номера без отзывов оказываются в конце.
func (r *roomRepository) TopRated(ctx context.Context, limit int) ([]entity.Room, error) {
	pipeline := append(ratingStages(),
		bson.D{{Key: "$sort", Value: bson.D{{Key: "averageRating", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	)

	return r.aggregateRooms(ctx, pipeline)
}

// GetDetail возвращает номер со всеми его отзывами и бронированиями.
// Бронирования не фильтруются по владельцу - карточка номера показывает занятость.
func (r *roomRepository) GetDetail(ctx context.Context, id primitive.ObjectID) (*entity.Room, error) {
	pipeline := []bson.D{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "stringId", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "reviews"},
			{Key: "localField", Value: "stringId"},
			{Key: "foreignField", Value: "roomId"},
			{Key: "as", Value: "reviews"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "bookings"},
			{Key: "localField", Value: "stringId"},
			{Key: "foreignField", Value: "roomId"},
			{Key: "as", Value: "bookings"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$reviews.rating"}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "stringId", Value: 0}}}},
	}

	rooms, err := r.aggregateRooms(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrRoomNotFound
	}

	return &rooms[0], nil
}
