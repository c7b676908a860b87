package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stayberries/internal/app/hotel/entity"
	"stayberries/internal/app/hotel/repository"
	"stayberries/internal/app/hotel/util"
	"stayberries/pkg/logger"
)

// ReviewService обрабатывает бизнес-логику отзывов.
// Отзыв создается один раз и не редактируется; побочно выставляется
// флаг reviewed на бронировании и инвалидируется кеш выборок номеров.
type ReviewService struct {
	reviewRepo    repository.ReviewRepository
	bookingRepo   repository.BookingRepository
	cache         util.RoomCache
	kafkaProducer util.MessagePublisher
}

// NewReviewService создает сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
	cache util.RoomCache,
	kafkaProducer util.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		bookingRepo:   bookingRepo,
		cache:         cache,
		kafkaProducer: kafkaProducer,
	}
}

// CreateReview создает отзыв от имени владельца токена.
// Вторичная запись - reviewed=true на бронировании - выполняется best-effort:
// ее неудача логируется и не откатывает уже созданный отзыв. Потерянный флаг
// доставит reconciler (BookingService.ReconcileReviewed).
func (s *ReviewService) CreateReview(ctx context.Context, authEmail string, req *entity.CreateReviewRequest) (*entity.Review, error) {
	if req.UserEmail != authEmail {
		return nil, ErrNotOwner
	}

	review := &entity.Review{
		RoomID:    req.RoomID,
		BookingID: req.BookingID,
		UserEmail: req.UserEmail,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.markBookingReviewed(ctx, req.BookingID)

	// Рейтинги изменились - кешированные выборки номеров устарели
	if err := s.cache.DeleteRooms(ctx, util.AllRoomsCacheKey, util.TopRoomsCacheKey); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate room caches")
	}

	event := entity.ReviewEvent{
		EventType: "REVIEW_CREATED",
		ReviewID:  review.ID.Hex(),
		RoomID:    review.RoomID,
		BookingID: review.BookingID,
		UserEmail: review.UserEmail,
		Rating:    review.Rating,
		Timestamp: time.Now(),
	}

	if err := s.publishReviewEvent(ctx, event); err != nil {
		// Отзыв уже создан, проблемы с Kafka не критичны
		logger.Warn().Err(err).Msg("failed to publish review created event")
	}

	return review, nil
}

// GetReviewsByRoom возвращает отзывы номера, новые сверху
func (s *ReviewService) GetReviewsByRoom(ctx context.Context, roomID string) ([]entity.Review, error) {
	if _, err := repository.ParseID(roomID); err != nil {
		return nil, ErrInvalidRoomID
	}

	reviews, err := s.reviewRepo.GetByRoomID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}

// GetAllReviews возвращает все отзывы, отсортированные по дате по убыванию
func (s *ReviewService) GetAllReviews(ctx context.Context) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return reviews, nil
}

func (s *ReviewService) markBookingReviewed(ctx context.Context, bookingID string) {
	oid, err := repository.ParseID(bookingID)
	if err != nil {
		logger.Warn().Str("booking_id", bookingID).Msg("review references malformed booking id")
		return
	}

	if err := s.bookingRepo.MarkReviewed(ctx, oid); err != nil {
		logger.Warn().Err(err).Str("booking_id", bookingID).Msg("failed to mark booking reviewed")
	}
}

func (s *ReviewService) publishReviewEvent(ctx context.Context, event entity.ReviewEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal review event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.ReviewID, data); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
