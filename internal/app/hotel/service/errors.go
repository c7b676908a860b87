package service

import "errors"

// Ошибки бизнес-логики для обработки в handlers
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidRoomID    = errors.New("invalid room id")
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrNotOwner - email из токена не совпадает с владельцем ресурса.
	// Сравнение строгое и регистрозависимое; до записи в базу дело не доходит.
	ErrNotOwner = errors.New("caller is not the resource owner")
)
