package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"stayberries/internal/app/hotel/entity"
	"stayberries/internal/app/hotel/repository"
	"stayberries/internal/app/hotel/repository/mocks"
	"stayberries/internal/app/hotel/util"
	"stayberries/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	logger.InitWithWriter("hotel-service-test", "error", io.Discard)
}

func ptr(f float64) *float64 {
	return &f
}

func TestListRooms_CacheHit(t *testing.T) {
	roomRepo := new(mocks.MockRoomRepository)
	cache := new(mocks.MockRoomCache)
	service := NewRoomService(roomRepo, cache)

	ctx := context.Background()
	cached := []entity.Room{
		{ID: primitive.NewObjectID(), Name: "Skyline Suite", Price: 220, AverageRating: ptr(4.5)},
	}

	cache.On("GetRooms", ctx, util.AllRoomsCacheKey).Return(cached, nil)

	result, err := service.ListRooms(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, result)
	roomRepo.AssertNotCalled(t, "ListWithRatings")
}

func TestListRooms_CacheMiss(t *testing.T) {
	roomRepo := new(mocks.MockRoomRepository)
	cache := new(mocks.MockRoomCache)
	service := NewRoomService(roomRepo, cache)

	ctx := context.Background()
	rooms := []entity.Room{
		{ID: primitive.NewObjectID(), Name: "Garden View", Price: 140, AverageRating: ptr(4.0)},
		{ID: primitive.NewObjectID(), Name: "Penthouse", Price: 480},
	}

	cache.On("GetRooms", ctx, util.AllRoomsCacheKey).Return(nil, nil)
	roomRepo.On("ListWithRatings", ctx).Return(rooms, nil)
	cache.On("SetRooms", ctx, util.AllRoomsCacheKey, rooms, roomsCacheTTL).Return(nil)

	result, err := service.ListRooms(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Nil(t, result[1].AverageRating)
	cache.AssertExpectations(t)
}

func TestListRooms_CacheSetErrorIgnored(t *testing.T) {
	roomRepo := new(mocks.MockRoomRepository)
	cache := new(mocks.MockRoomCache)
	service := NewRoomService(roomRepo, cache)

	ctx := context.Background()
	rooms := []entity.Room{{ID: primitive.NewObjectID(), Name: "Garden View", Price: 140}}

	cache.On("GetRooms", ctx, util.AllRoomsCacheKey).Return(nil, nil)
	roomRepo.On("ListWithRatings", ctx).Return(rooms, nil)
	cache.On("SetRooms", ctx, util.AllRoomsCacheKey, rooms, roomsCacheTTL).Return(errors.New("redis down"))

	result, err := service.ListRooms(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestListRooms_RepoError(t *testing.T) {
	roomRepo := new(mocks.MockRoomRepository)
	cache := new(mocks.MockRoomCache)
	service := NewRoomService(roomRepo, cache)

	ctx := context.Background()

	cache.On("GetRooms", ctx, util.AllRoomsCacheKey).Return(nil, nil)
	roomRepo.On("ListWithRatings", ctx).Return(nil, errors.New("db error"))

	result, err := service.ListRooms(ctx)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestListRoomsByPrice_Success(t *testing.T) {
	roomRepo := new(mocks.MockRoomRepository)
	cache := new(mocks.MockRoomCache)
	service := NewRoomService(roomRepo, cache)

	ctx := context.Background()
	rooms := []entity.Room{{ID: primitive.NewObjectID(), Name: "Garden View", Price: 140}}

	roomRepo.On("ListWithRatingsByPrice", ctx, 100.0, 200.0).Return(rooms, nil)

	result, err := service.ListRoomsByPrice(ctx, 100, 200)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	cache.AssertNotCalled(t, "GetRooms")
}

func TestTopRatedRooms_CacheMiss(t *testing.T) {
	roomRepo := new(mocks.MockRoomRepository)
	cache := new(mocks.MockRoomCache)
	service := NewRoomService(roomRepo, cache)

	ctx := context.Background()
	rooms := []entity.Room{
		{ID: primitive.NewObjectID(), AverageRating: ptr(4.9)},
		{ID: primitive.NewObjectID(), AverageRating: ptr(4.2)},
	}

	cache.On("GetRooms", ctx, util.TopRoomsCacheKey).Return(nil, nil)
	roomRepo.On("TopRated", ctx, topRatedLimit).Return(rooms, nil)
	cache.On("SetRooms", ctx, util.TopRoomsCacheKey, rooms, roomsCacheTTL).Return(nil)

	result, err := service.TopRatedRooms(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	roomRepo.AssertCalled(t, "TopRated", ctx, 6)
}

func TestTopRatedRooms_CacheHit(t *testing.T) {
	roomRepo := new(mocks.MockRoomRepository)
	cache := new(mocks.MockRoomCache)
	service := NewRoomService(roomRepo, cache)

	ctx := context.Background()
	cached := []entity.Room{{ID: primitive.NewObjectID(), AverageRating: ptr(4.9)}}

	cache.On("GetRooms", ctx, util.TopRoomsCacheKey).Return(cached, nil)

	result, err := service.TopRatedRooms(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, result)
	roomRepo.AssertNotCalled(t, "TopRated")
}

func TestGetRoomDetail_Success(t *testing.T) {
	roomRepo := new(mocks.MockRoomRepository)
	cache := new(mocks.MockRoomCache)
	service := NewRoomService(roomRepo, cache)

	ctx := context.Background()
	roomID := primitive.NewObjectID()
	room := &entity.Room{
		ID:            roomID,
		Name:          "Skyline Suite",
		AverageRating: ptr(4.5),
		Reviews:       []entity.Review{{Rating: 4}, {Rating: 5}},
		Bookings:      []entity.Booking{{UserEmail: "a@x.com"}},
	}

	roomRepo.On("GetDetail", ctx, roomID).Return(room, nil)

	result, err := service.GetRoomDetail(ctx, roomID.Hex())

	assert.NoError(t, err)
	assert.Equal(t, roomID, result.ID)
	assert.Len(t, result.Bookings, 1)
}

func TestGetRoomDetail_InvalidID(t *testing.T) {
	roomRepo := new(mocks.MockRoomRepository)
	cache := new(mocks.MockRoomCache)
	service := NewRoomService(roomRepo, cache)

	result, err := service.GetRoomDetail(context.Background(), "not-a-hex-id")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidRoomID)
	roomRepo.AssertNotCalled(t, "GetDetail")
}

func TestGetRoomDetail_NotFound(t *testing.T) {
	roomRepo := new(mocks.MockRoomRepository)
	cache := new(mocks.MockRoomCache)
	service := NewRoomService(roomRepo, cache)

	ctx := context.Background()
	roomID := primitive.NewObjectID()

	roomRepo.On("GetDetail", ctx, mock.AnythingOfType("primitive.ObjectID")).Return(nil, repository.ErrRoomNotFound)

	result, err := service.GetRoomDetail(ctx, roomID.Hex())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
