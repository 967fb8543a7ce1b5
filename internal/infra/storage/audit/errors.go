package audit

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("audit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("audit.repository: failed to execute query")

	// ErrMarshalSnapshot возвращается при ошибке сериализации снапшота
	ErrMarshalSnapshot = errors.New("audit.repository: failed to marshal snapshot")
)
