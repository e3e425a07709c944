package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

var (
	// ErrCafeNotFound возвращается, когда кафе не найдено
	ErrCafeNotFound = fmt.Errorf("create_booking: cafe %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input data: %w", domain.ErrValidationFailed)

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = fmt.Errorf("create_booking: invalid booking date: %w", domain.ErrValidationFailed)

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = fmt.Errorf("create_booking: date is too far in the future: %w", domain.ErrValidationFailed)

	// ErrSlotNotAvailable возвращается, когда слот закрыт или все столы в нем заняты
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
