package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrNoConflict возвращается сканом конфликтов, когда пересекающихся
	// бронирований нет (успешный исход для вызывающего кода)
	ErrNoConflict = errors.New("booking.repository: no conflicting booking")

	// ErrDuplicateReference возвращается при нарушении уникальности reference_number
	ErrDuplicateReference = errors.New("booking.repository: duplicate reference number")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
