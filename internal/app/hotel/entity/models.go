package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Room описывает номер отеля в коллекции rooms.
// AverageRating не хранится в базе - вычисляется на лету через $lookup + $avg,
// nil означает что отзывов еще нет (никогда не 0).
type Room struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Price         float64            `json:"price" bson:"price"`
	Capacity      int                `json:"capacity" bson:"capacity"`
	Amenities     []string           `json:"amenities,omitempty" bson:"amenities,omitempty"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	AverageRating *float64           `json:"averageRating" bson:"averageRating,omitempty"`
	Reviews       []Review           `json:"reviews,omitempty" bson:"reviews,omitempty"`
	Bookings      []Booking          `json:"bookings,omitempty" bson:"bookings,omitempty"`
}

// Booking описывает бронирование номера.
// RoomID хранится как hex-строка ObjectID номера - каноничное представление
// внешних ключей между коллекциями.
type Booking struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RoomID      string             `json:"roomId" bson:"roomId"`
	UserEmail   string             `json:"userEmail" bson:"userEmail"`
	BookingDate string             `json:"bookingDate" bson:"bookingDate"`
	Reviewed    bool               `json:"reviewed" bson:"reviewed,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	Room        *Room              `json:"room,omitempty" bson:"room,omitempty"`
}

// Review описывает отзыв гостя. Создается один раз, не редактируется.
// BookingID связывает отзыв с бронированием (одно бронирование - один отзыв,
// соглашение, а не ограничение базы).
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RoomID    string             `json:"roomId" bson:"roomId"`
	BookingID string             `json:"bookingId" bson:"bookingId"`
	UserEmail string             `json:"userEmail" bson:"userEmail"`
	Rating    float64            `json:"rating" bson:"rating"`
	Comment   string             `json:"comment,omitempty" bson:"comment,omitempty"`
	Date      time.Time          `json:"date" bson:"date"`
}

// BookingEvent - событие BOOKING_CREATED для Kafka
type BookingEvent struct {
	EventType   string    `json:"event_type"`
	BookingID   string    `json:"booking_id"`
	RoomID      string    `json:"room_id"`
	UserEmail   string    `json:"user_email"`
	BookingDate string    `json:"booking_date"`
	Timestamp   time.Time `json:"timestamp"`
}

// ReviewEvent - событие REVIEW_CREATED для Kafka
type ReviewEvent struct {
	EventType string    `json:"event_type"`
	ReviewID  string    `json:"review_id"`
	RoomID    string    `json:"room_id"`
	BookingID string    `json:"booking_id"`
	UserEmail string    `json:"user_email"`
	Rating    float64   `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}
