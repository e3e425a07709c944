package create_booking

import (
	"context"

	createBooking "github.com/m04kA/CafeBookingService/internal/usecase/create_booking"
)

// CreateBookingUseCase записывает бронирование в журнал от имени пользователя сессии
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
