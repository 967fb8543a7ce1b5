package whatsapp

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронь не найдена
	ErrBookingNotFound = errors.New("whatsapp.service: booking not found")

	// ErrNoPhone возвращается, когда у брони нет номера телефона
	ErrNoPhone = errors.New("whatsapp.service: booking has no phone number")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("whatsapp.service: internal error")
)
