package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayberries/internal/app/hotel/entity"
	"stayberries/internal/app/hotel/repository"
	"stayberries/internal/app/hotel/util"
	"stayberries/pkg/logger"
	"stayberries/pkg/metrics"
)

const (
	// Витрина "лучшие номера" всегда отдает не больше шести позиций
	topRatedLimit = 6

	roomsCacheTTL = 5 * time.Minute
)

// RoomService обрабатывает read-side логику номеров.
// Рейтинг считается на каждом запросе через aggregation pipeline,
// горячие выборки прикрыты Redis-кешем.
type RoomService struct {
	roomRepo repository.RoomRepository
	cache    util.RoomCache
}

// NewRoomService создает сервис номеров с внедрением зависимостей
func NewRoomService(roomRepo repository.RoomRepository, cache util.RoomCache) *RoomService {
	return &RoomService{
		roomRepo: roomRepo,
		cache:    cache,
	}
}

// ListRooms возвращает все номера со средним рейтингом, через кеш
func (s *RoomService) ListRooms(ctx context.Context) ([]entity.Room, error) {
	rooms, err := s.cache.GetRooms(ctx, util.AllRoomsCacheKey)
	if err == nil && rooms != nil {
		metrics.RecordCacheHit("hotel-service", util.AllRoomsCacheKey)
		return rooms, nil
	}
	metrics.RecordCacheMiss("hotel-service", util.AllRoomsCacheKey)

	rooms, err = s.roomRepo.ListWithRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	if err := s.cache.SetRooms(ctx, util.AllRoomsCacheKey, rooms, roomsCacheTTL); err != nil {
		// Данные получены из базы, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to cache rooms")
	}

	return rooms, nil
}

// ListRoomsByPrice возвращает номера с ценой в [minPrice, maxPrice] включительно.
// Произвольные диапазоны не кешируются.
func (s *RoomService) ListRoomsByPrice(ctx context.Context, minPrice, maxPrice float64) ([]entity.Room, error) {
	rooms, err := s.roomRepo.ListWithRatingsByPrice(ctx, minPrice, maxPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms by price: %w", err)
	}

	return rooms, nil
}

// TopRatedRooms возвращает шесть номеров с наибольшим средним рейтингом,
// номера без отзывов - в конце
func (s *RoomService) TopRatedRooms(ctx context.Context) ([]entity.Room, error) {
	rooms, err := s.cache.GetRooms(ctx, util.TopRoomsCacheKey)
	if err == nil && rooms != nil {
		metrics.RecordCacheHit("hotel-service", util.TopRoomsCacheKey)
		return rooms, nil
	}
	metrics.RecordCacheMiss("hotel-service", util.TopRoomsCacheKey)

	rooms, err = s.roomRepo.TopRated(ctx, topRatedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top rated rooms: %w", err)
	}

	if err := s.cache.SetRooms(ctx, util.TopRoomsCacheKey, rooms, roomsCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache top rated rooms")
	}

	return rooms, nil
}

// GetRoomDetail возвращает номер с его отзывами и бронированиями
func (s *RoomService) GetRoomDetail(ctx context.Context, id string) (*entity.Room, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, ErrInvalidRoomID
	}

	room, err := s.roomRepo.GetDetail(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room detail: %w", err)
	}

	return room, nil
}
