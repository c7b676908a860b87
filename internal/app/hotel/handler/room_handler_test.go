package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stayberries/internal/app/hotel/entity"
	"stayberries/internal/app/hotel/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) ListRooms(ctx context.Context) ([]entity.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Room), args.Error(1)
}

func (m *MockRoomService) ListRoomsByPrice(ctx context.Context, minPrice, maxPrice float64) ([]entity.Room, error) {
	args := m.Called(ctx, minPrice, maxPrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Room), args.Error(1)
}

func (m *MockRoomService) TopRatedRooms(ctx context.Context) ([]entity.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Room), args.Error(1)
}

func (m *MockRoomService) GetRoomDetail(ctx context.Context, id string) (*entity.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Room), args.Error(1)
}

func floatPtr(f float64) *float64 {
	return &f
}

func setupRoomRouter(mockService *MockRoomService) *gin.Engine {
	router := gin.New()
	h := NewRoomHandler(mockService)

	router.GET("/api/rooms", h.ListRooms)
	router.GET("/api/rooms/price-range", h.ListRoomsByPrice)
	router.GET("/api/rooms/top-rated", h.TopRatedRooms)
	router.GET("/api/room/:id", h.GetRoomDetail)

	return router
}

func TestListRoomsHandler_Success(t *testing.T) {
	mockService := new(MockRoomService)
	router := setupRoomRouter(mockService)

	rooms := []entity.Room{
		{ID: primitive.NewObjectID(), Name: "Skyline Suite", Price: 220, AverageRating: floatPtr(4.5)},
		{ID: primitive.NewObjectID(), Name: "Penthouse", Price: 480},
	}
	mockService.On("ListRooms", mock.Anything).Return(rooms, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, 4.5, response[0]["averageRating"])

	// Номер без отзывов отдается с averageRating: null, а не 0
	rating, present := response[1]["averageRating"]
	assert.True(t, present)
	assert.Nil(t, rating)
}

func TestListRoomsHandler_EmptyList(t *testing.T) {
	mockService := new(MockRoomService)
	router := setupRoomRouter(mockService)

	mockService.On("ListRooms", mock.Anything).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestListRoomsByPriceHandler_Success(t *testing.T) {
	mockService := new(MockRoomService)
	router := setupRoomRouter(mockService)

	rooms := []entity.Room{{ID: primitive.NewObjectID(), Name: "Garden View", Price: 140}}
	mockService.On("ListRoomsByPrice", mock.Anything, 100.0, 200.0).Return(rooms, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/price-range?minPrice=100&maxPrice=200", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.PriceRangeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "Rooms fetched successfully", response.Message)
	assert.Len(t, response.Rooms, 1)
}

func TestListRoomsByPriceHandler_MissingParams(t *testing.T) {
	mockService := new(MockRoomService)
	router := setupRoomRouter(mockService)

	for _, query := range []string{"", "?minPrice=100", "?maxPrice=200", "?minPrice=abc&maxPrice=200"} {
		req := httptest.NewRequest(http.MethodGet, "/api/rooms/price-range"+query, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Please provide both minPrice and maxPrice")
	}
	mockService.AssertNotCalled(t, "ListRoomsByPrice")
}

func TestTopRatedRoomsHandler_Success(t *testing.T) {
	mockService := new(MockRoomService)
	router := setupRoomRouter(mockService)

	rooms := []entity.Room{
		{ID: primitive.NewObjectID(), AverageRating: floatPtr(4.9)},
		{ID: primitive.NewObjectID(), AverageRating: floatPtr(4.2)},
	}
	mockService.On("TopRatedRooms", mock.Anything).Return(rooms, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/top-rated", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []entity.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, 4.9, *response[0].AverageRating)
}

func TestGetRoomDetailHandler_Success(t *testing.T) {
	mockService := new(MockRoomService)
	router := setupRoomRouter(mockService)

	roomID := primitive.NewObjectID()
	room := &entity.Room{
		ID:            roomID,
		Name:          "Skyline Suite",
		AverageRating: floatPtr(4.5),
		Reviews:       []entity.Review{{Rating: 4}, {Rating: 5}},
	}
	mockService.On("GetRoomDetail", mock.Anything, roomID.Hex()).Return(room, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/room/"+roomID.Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Skyline Suite", response.Name)
	assert.Len(t, response.Reviews, 2)
}

func TestGetRoomDetailHandler_InvalidID(t *testing.T) {
	mockService := new(MockRoomService)
	router := setupRoomRouter(mockService)

	mockService.On("GetRoomDetail", mock.Anything, "zzz").Return(nil, service.ErrInvalidRoomID)

	req := httptest.NewRequest(http.MethodGet, "/api/room/zzz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid room ID")
}

func TestGetRoomDetailHandler_NotFound(t *testing.T) {
	mockService := new(MockRoomService)
	router := setupRoomRouter(mockService)

	roomID := primitive.NewObjectID().Hex()
	mockService.On("GetRoomDetail", mock.Anything, roomID).Return(nil, service.ErrRoomNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/room/"+roomID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Room not found")
}
