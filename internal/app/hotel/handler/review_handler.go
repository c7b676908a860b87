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

type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, authEmail string, req *entity.CreateReviewRequest) (*entity.Review, error)
	GetReviewsByRoom(ctx context.Context, roomID string) ([]entity.Review, error)
	GetAllReviews(ctx context.Context) ([]entity.Review, error)
}

type ReviewHandler struct {
	reviewService ReviewServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	email, ok := authEmail(c)
	if !ok {
		return
	}

	var req entity.CreateReviewRequest
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

	review, err := h.reviewService.CreateReview(c.Request.Context(), email, &req)
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
			"message": "Failed to add review",
			"error":   err.Error(),
		})
		return
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(review.Rating)

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Review added successfully",
		"reviewId": review.ID.Hex(),
	})
}

func (h *ReviewHandler) GetReviewsByRoom(c *gin.Context) {
	reviews, err := h.reviewService.GetReviewsByRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRoomID) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid room ID",
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

	if reviews == nil {
		reviews = []entity.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) GetAllReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetAllReviews(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Server error",
			"error":   err.Error(),
		})
		return
	}

	if reviews == nil {
		reviews = []entity.Review{}
	}
	c.JSON(http.StatusOK, entity.ReviewsResponse{
		Success: true,
		Reviews: reviews,
	})
}
