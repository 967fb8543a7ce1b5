package units

import "errors"

var (
	// ErrUnitNotFound возвращается, когда единица не найдена
	ErrUnitNotFound = errors.New("units.service: unit not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("units.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("units.service: internal error")
)
