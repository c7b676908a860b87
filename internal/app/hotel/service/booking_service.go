package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stayberries/internal/app/hotel/entity"
	"stayberries/internal/app/hotel/repository"
	"stayberries/internal/app/hotel/util"
	"stayberries/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingService обрабатывает бизнес-логику бронирований.
// Каждая мутация проходит проверку владельца: email из токена сравнивается
// с email владельца ресурса до какой-либо записи в базу.
type BookingService struct {
	bookingRepo   repository.BookingRepository
	reviewRepo    repository.ReviewRepository
	kafkaProducer util.MessagePublisher
}

// NewBookingService создает сервис бронирований с внедрением зависимостей
func NewBookingService(
	bookingRepo repository.BookingRepository,
	reviewRepo repository.ReviewRepository,
	kafkaProducer util.MessagePublisher,
) *BookingService {
	return &BookingService{
		bookingRepo:   bookingRepo,
		reviewRepo:    reviewRepo,
		kafkaProducer: kafkaProducer,
	}
}

// CreateBooking создает бронирование от имени владельца токена.
// Существование номера и пересечения дат сознательно не проверяются.
func (s *BookingService) CreateBooking(ctx context.Context, authEmail string, req *entity.CreateBookingRequest) (*entity.Booking, error) {
	if req.UserEmail != authEmail {
		return nil, ErrNotOwner
	}

	booking := &entity.Booking{
		RoomID:      req.RoomID,
		UserEmail:   req.UserEmail,
		BookingDate: req.BookingDate,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	event := entity.BookingEvent{
		EventType:   "BOOKING_CREATED",
		BookingID:   booking.ID.Hex(),
		RoomID:      booking.RoomID,
		UserEmail:   booking.UserEmail,
		BookingDate: booking.BookingDate,
		Timestamp:   time.Now(),
	}

	if err := s.publishEvent(ctx, event.BookingID, event); err != nil {
		// Бронирование уже создано, проблемы с Kafka не критичны
		logger.Warn().Err(err).Msg("failed to publish booking created event")
	}

	return booking, nil
}

// GetBookingsByEmail возвращает бронирования владельца с подтянутыми номерами.
// Смотреть чужие бронирования нельзя - email из пути обязан совпадать с токеном.
func (s *BookingService) GetBookingsByEmail(ctx context.Context, authEmail, email string) ([]entity.Booking, error) {
	if email != authEmail {
		return nil, ErrNotOwner
	}

	bookings, err := s.bookingRepo.GetByUserEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return bookings, nil
}

// UpdateBooking переносит бронирование на другую дату.
// Применяется только bookingDate; владельцем обязан быть и payload,
// и сохраненный документ.
func (s *BookingService) UpdateBooking(ctx context.Context, authEmail, id string, req *entity.UpdateBookingRequest) error {
	if req.UserEmail != authEmail {
		return ErrNotOwner
	}

	oid, err := repository.ParseID(id)
	if err != nil {
		return ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.UserEmail != authEmail {
		return ErrNotOwner
	}

	if err := s.bookingRepo.UpdateDate(ctx, oid, req.BookingDate); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

// DeleteBooking удаляет бронирование владельца. Удаление окончательное,
// мягкой отмены нет; повторный вызов по тому же id дает NotFound.
func (s *BookingService) DeleteBooking(ctx context.Context, authEmail, id string) error {
	oid, err := repository.ParseID(id)
	if err != nil {
		return ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.UserEmail != authEmail {
		return ErrNotOwner
	}

	if err := s.bookingRepo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return nil
}

// ReconcileReviewed восстанавливает флаг reviewed по факту существования отзыва.
// Пара "вставка отзыва + обновление флага" не атомарна, поэтому флаг может
// потеряться; повторный прогон идемпотентен. Возвращает число исправленных
// бронирований.
func (s *BookingService) ReconcileReviewed(ctx context.Context) (int64, error) {
	bookingIDs, err := s.reviewRepo.DistinctBookingIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to collect booking ids from reviews: %w", err)
	}

	oids := make([]primitive.ObjectID, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		oid, err := repository.ParseID(id)
		if err != nil {
			// Отзывы с битым bookingId чинить нечем - пропускаем
			logger.Warn().Str("booking_id", id).Msg("skipping review with malformed booking id")
			continue
		}
		oids = append(oids, oid)
	}

	repaired, err := s.bookingRepo.MarkReviewedByIDs(ctx, oids)
	if err != nil {
		return 0, fmt.Errorf("failed to repair reviewed flags: %w", err)
	}

	return repaired, nil
}

func (s *BookingService) publishEvent(ctx context.Context, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, key, data); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
