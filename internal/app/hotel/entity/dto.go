package entity

// CreateBookingRequest - запрос на бронирование номера
type CreateBookingRequest struct {
	RoomID      string `json:"roomId" validate:"required"`
	UserEmail   string `json:"userEmail" validate:"required,email"`
	BookingDate string `json:"bookingDate" validate:"required"`
}

// UpdateBookingRequest - запрос на перенос бронирования.
// Применяется только BookingDate, остальные поля документа не трогаются.
type UpdateBookingRequest struct {
	UserEmail   string `json:"userEmail" validate:"required,email"`
	BookingDate string `json:"bookingDate" validate:"required"`
}

// CreateReviewRequest - запрос на создание отзыва
type CreateReviewRequest struct {
	RoomID    string  `json:"roomId" validate:"required"`
	BookingID string  `json:"bookingId" validate:"required"`
	UserEmail string  `json:"userEmail" validate:"required,email"`
	Rating    float64 `json:"rating" validate:"required,min=1,max=5"`
	Comment   string  `json:"comment" validate:"omitempty,max=2000"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// PriceRangeResponse - ответ для выборки номеров по цене
type PriceRangeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Rooms   []Room `json:"rooms"`
}

// ReviewsResponse - ответ со всеми отзывами
type ReviewsResponse struct {
	Success bool     `json:"success"`
	Reviews []Review `json:"reviews"`
}
