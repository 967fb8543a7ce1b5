package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронь не найдена
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrBookingImmutable возвращается для отмененных и выселенных броней
	ErrBookingImmutable = errors.New("update_booking: booking can no longer be modified")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("update_booking: invalid status transition")

	// ErrUnitNotFound возвращается, когда новая единица не найдена
	ErrUnitNotFound = errors.New("update_booking: unit not found")

	// ErrUnitInactive возвращается, когда новая единица выведена из оборота
	ErrUnitInactive = errors.New("update_booking: unit is inactive")

	// ErrDateConflict возвращается, когда даты пересекаются с существующей бронью
	ErrDateConflict = errors.New("update_booking: date conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
