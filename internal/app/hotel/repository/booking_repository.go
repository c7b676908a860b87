package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayberries/internal/app/hotel/entity"
	"stayberries/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	collection *mongo.Collection
}

// NewBookingRepository создает репозиторий бронирований.
// Автоматически создает индекс по userEmail для выборки "мои бронирования".
func NewBookingRepository(db *mongo.Database) BookingRepository {
	collection := db.Collection("bookings")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userEmail", Value: 1},
		},
		Options: options.Index().SetName("userEmail_idx"),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		// Логируем ошибку, но не прерываем работу - индекс может уже существовать
		fmt.Printf("Warning: failed to create index on userEmail: %v\n", err)
	}

	return &bookingRepository{
		collection: collection,
	}
}

// Create сохраняет новое бронирование
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	booking.CreatedAt = time.Now()

	timer := metrics.NewDbTimer("hotel-service", metrics.DbOpInsert, "bookings")
	defer timer.ObserveDuration()

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		metrics.RecordDbError("hotel-service", metrics.DbOpInsert)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}

	return nil
}

// GetByID возвращает бронирование по ObjectID
func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// GetByUserEmail возвращает бронирования владельца, каждое с подтянутым
// документом номера. roomId приводится к ObjectID через $convert с
// onError: null, чтобы одна битая ссылка не ломала весь pipeline.
func (r *bookingRepository) GetByUserEmail(ctx context.Context, email string) ([]entity.Booking, error) {
	pipeline := []bson.D{
		{{Key: "$match", Value: bson.D{{Key: "userEmail", Value: email}}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "roomObjectId", Value: bson.D{{Key: "$convert", Value: bson.D{
				{Key: "input", Value: "$roomId"},
				{Key: "to", Value: "objectId"},
				{Key: "onError", Value: nil},
				{Key: "onNull", Value: nil},
			}}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "rooms"},
			{Key: "localField", Value: "roomObjectId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "room"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$room"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "roomObjectId", Value: 0}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}

	timer := metrics.NewDbTimer("hotel-service", metrics.DbOpAggregate, "bookings")
	defer timer.ObserveDuration()

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordDbError("hotel-service", metrics.DbOpAggregate)
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []entity.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

// UpdateDate применяет только bookingDate - остальные поля документа
// остаются нетронутыми независимо от того, что пришло в запросе.
// NotFound определяется по MatchedCount: повторная установка той же даты - успех.
func (r *bookingRepository) UpdateDate(ctx context.Context, id primitive.ObjectID, bookingDate string) error {
	timer := metrics.NewDbTimer("hotel-service", metrics.DbOpUpdate, "bookings")
	defer timer.ObserveDuration()

	update := bson.M{"$set": bson.M{"bookingDate": bookingDate}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		metrics.RecordDbError("hotel-service", metrics.DbOpUpdate)
		return fmt.Errorf("failed to update booking: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование по ObjectID
func (r *bookingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	timer := metrics.NewDbTimer("hotel-service", metrics.DbOpDelete, "bookings")
	defer timer.ObserveDuration()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		metrics.RecordDbError("hotel-service", metrics.DbOpDelete)
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// MarkReviewed выставляет reviewed=true. Флаг монотонный - обратно не сбрасывается.
func (r *bookingRepository) MarkReviewed(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"reviewed": true}},
	)
	if err != nil {
		metrics.RecordDbError("hotel-service", metrics.DbOpUpdate)
		return fmt.Errorf("failed to mark booking reviewed: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// MarkReviewedByIDs идемпотентно проставляет reviewed=true всем бронированиям
// из списка, у которых флаг еще не стоит. Возвращает число обновленных документов.
func (r *bookingRepository) MarkReviewedByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := r.collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}, "reviewed": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"reviewed": true}},
	)
	if err != nil {
		metrics.RecordDbError("hotel-service", metrics.DbOpUpdate)
		return 0, fmt.Errorf("failed to mark bookings reviewed: %w", err)
	}

	return result.ModifiedCount, nil
}
