package list_bookings

import (
	"context"

	"github.com/m04kA/RIH-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListCalendar(ctx context.Context, req *models.CalendarRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
