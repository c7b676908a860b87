package repository

import (
	"context"
	"fmt"
	"time"

	"stayberries/internal/app/hotel/entity"
	"stayberries/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает репозиторий отзывов.
// Автоматически создает индексы по roomId (join со стороны rooms)
// и bookingId (reconciler флага reviewed).
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection("reviews")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "roomId", Value: 1},
		},
		Options: options.Index().SetName("roomId_idx"),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		// Логируем ошибку, но не прерываем работу - индекс может уже существовать
		fmt.Printf("Warning: failed to create index on roomId: %v\n", err)
	}

	bookingIndexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "bookingId", Value: 1},
		},
		Options: options.Index().SetName("bookingId_idx"),
	}

	_, err = collection.Indexes().CreateOne(ctx, bookingIndexModel)
	if err != nil {
		fmt.Printf("Warning: failed to create index on bookingId: %v\n", err)
	}

	return &reviewRepository{
		collection: collection,
	}
}

// Create сохраняет новый отзыв
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	review.Date = time.Now()

	timer := metrics.NewDbTimer("hotel-service", metrics.DbOpInsert, "reviews")
	defer timer.ObserveDuration()

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		metrics.RecordDbError("hotel-service", metrics.DbOpInsert)
		return fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}

	return nil
}

// GetByRoomID возвращает отзывы номера, новые сверху.
// roomId сравнивается как hex-строка - каноничное представление ссылок.
func (r *reviewRepository) GetByRoomID(ctx context.Context, roomID string) ([]entity.Review, error) {
	filter := bson.M{"roomId": roomID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// GetAll возвращает все отзывы, отсортированные по дате по убыванию
func (r *reviewRepository) GetAll(ctx context.Context) ([]entity.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// DistinctBookingIDs возвращает bookingId всех отзывов - вход reconciler'а,
// который восстанавливает флаг reviewed по факту существования отзыва
func (r *reviewRepository) DistinctBookingIDs(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "bookingId", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get distinct booking ids: %w", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}

	return ids, nil
}
