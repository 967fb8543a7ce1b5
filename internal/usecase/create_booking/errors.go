package create_booking

import "errors"

var (
	// ErrUnitNotFound возвращается, когда единица не найдена
	ErrUnitNotFound = errors.New("create_booking: unit not found")

	// ErrUnitInactive возвращается, когда единица выведена из оборота
	ErrUnitInactive = errors.New("create_booking: unit is inactive")

	// ErrDateConflict возвращается, когда даты пересекаются с существующей бронью
	ErrDateConflict = errors.New("create_booking: date conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
