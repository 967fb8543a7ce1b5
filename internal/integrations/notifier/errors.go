package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrDeliveryFailed возвращается, когда webhook вернул не-2xx ответ
	ErrDeliveryFailed = errors.New("notifier client: delivery failed")
)
