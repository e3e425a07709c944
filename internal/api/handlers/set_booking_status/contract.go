package set_booking_status

import (
	"context"

	"github.com/m04kA/CafeBookingService/internal/service/bookings/models"
)

type BookingService interface {
	SetStatus(ctx context.Context, bookingID string, req *models.SetStatusRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
