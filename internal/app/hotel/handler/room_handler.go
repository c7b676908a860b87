package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"stayberries/internal/app/hotel/entity"
	"stayberries/internal/app/hotel/service"

	"github.com/gin-gonic/gin"
)

type RoomServiceInterface interface {
	ListRooms(ctx context.Context) ([]entity.Room, error)
	ListRoomsByPrice(ctx context.Context, minPrice, maxPrice float64) ([]entity.Room, error)
	TopRatedRooms(ctx context.Context) ([]entity.Room, error)
	GetRoomDetail(ctx context.Context, id string) (*entity.Room, error)
}

type RoomHandler struct {
	roomService RoomServiceInterface
}

func NewRoomHandler(roomService RoomServiceInterface) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomService.ListRooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching rooms",
			"error":   err.Error(),
		})
		return
	}

	if rooms == nil {
		rooms = []entity.Room{}
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) ListRoomsByPrice(c *gin.Context) {
	minPrice, errMin := strconv.ParseFloat(c.Query("minPrice"), 64)
	maxPrice, errMax := strconv.ParseFloat(c.Query("maxPrice"), 64)
	if errMin != nil || errMax != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please provide both minPrice and maxPrice",
		})
		return
	}

	rooms, err := h.roomService.ListRoomsByPrice(c.Request.Context(), minPrice, maxPrice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching rooms",
			"error":   err.Error(),
		})
		return
	}

	if rooms == nil {
		rooms = []entity.Room{}
	}
	c.JSON(http.StatusOK, entity.PriceRangeResponse{
		Success: true,
		Message: "Rooms fetched successfully",
		Rooms:   rooms,
	})
}

func (h *RoomHandler) TopRatedRooms(c *gin.Context) {
	rooms, err := h.roomService.TopRatedRooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching rooms",
			"error":   err.Error(),
		})
		return
	}

	if rooms == nil {
		rooms = []entity.Room{}
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoomDetail(c *gin.Context) {
	room, err := h.roomService.GetRoomDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRoomID) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid room ID",
			})
			return
		}
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Room not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error fetching room",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, room)
}
