package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stayberries/pkg/logger"
	"stayberries/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(
	roomHandler *RoomHandler,
	bookingHandler *BookingHandler,
	reviewHandler *ReviewHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("hotel-service"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "hotel-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		// Публичные эндпоинты (без аутентификации)
		api.GET("/rooms", roomHandler.ListRooms)
		api.GET("/rooms/price-range", roomHandler.ListRoomsByPrice)
		api.GET("/rooms/top-rated", roomHandler.TopRatedRooms)
		api.GET("/room/:id", roomHandler.GetRoomDetail)
		api.GET("/reviews", reviewHandler.GetAllReviews)
		api.GET("/reviews/:id", reviewHandler.GetReviewsByRoom)

		// Защищенные эндпоинты (требуют bearer-токен)
		protected := api.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.POST("/book-room", bookingHandler.CreateBooking)
			protected.GET("/bookings/:email", bookingHandler.GetBookingsByEmail)
			protected.PUT("/bookings/:id", bookingHandler.UpdateBooking)
			protected.DELETE("/bookings/:id", bookingHandler.DeleteBooking)
			protected.POST("/review", reviewHandler.CreateReview)
		}
	}

	return router
}
