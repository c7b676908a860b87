package handler

import (
	"context"
	"errors"
	"net/http"

	"stayberries/internal/app/hotel/entity"
	"stayberries/internal/app/hotel/service"
	"stayberries/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, authEmail string, req *entity.CreateBookingRequest) (*entity.Booking, error)
	GetBookingsByEmail(ctx context.Context, authEmail, email string) ([]entity.Booking, error)
	UpdateBooking(ctx context.Context, authEmail, id string, req *entity.UpdateBookingRequest) error
	DeleteBooking(ctx context.Context, authEmail, id string) error
}

type BookingHandler struct {
	bookingService BookingServiceInterface
	validator      *validator.Validate
}

func NewBookingHandler(bookingService BookingServiceInterface) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		validator:      validator.New(),
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	email, ok := authEmail(c)
	if !ok {
		return
	}

	var req entity.CreateBookingRequest
	if err := bindJSONStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": formatValidationError(err),
		})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), email, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You are not authorized to book this room",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to book the room",
			"error":   err.Error(),
		})
		return
	}

	metrics.BookingsCreated.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Room booked successfully",
		"bookingId": booking.ID.Hex(),
		"data":      booking,
	})
}

func (h *BookingHandler) GetBookingsByEmail(c *gin.Context) {
	email, ok := authEmail(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.GetBookingsByEmail(c.Request.Context(), email, c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You are not authorized",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Server error",
			"error":   err.Error(),
		})
		return
	}

	if bookings == nil {
		bookings = []entity.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	email, ok := authEmail(c)
	if !ok {
		return
	}

	var req entity.UpdateBookingRequest
	if err := bindJSONStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": formatValidationError(err),
		})
		return
	}

	err := h.bookingService.UpdateBooking(c.Request.Context(), email, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You are not authorized",
			})
		case errors.Is(err, service.ErrInvalidBookingID):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid booking ID",
			})
		case errors.Is(err, service.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to update the booking",
				"error":   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking updated successfully",
	})
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	email, ok := authEmail(c)
	if !ok {
		return
	}

	err := h.bookingService.DeleteBooking(c.Request.Context(), email, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You are not authorized",
			})
		case errors.Is(err, service.ErrInvalidBookingID):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid booking ID",
			})
		case errors.Is(err, service.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to cancel the booking",
				"error":   err.Error(),
			})
		}
		return
	}

	metrics.BookingsDeleted.Inc()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking deleted successfully",
	})
}
