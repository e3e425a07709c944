package settings

import (
	"errors"
	"fmt"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

var (
	// ErrCafeNotFound возвращается, когда кафе не найдено
	ErrCafeNotFound = fmt.Errorf("cafe %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных значениях настроек
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidationFailed)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
