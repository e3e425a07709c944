package identity

import (
	"errors"
	"fmt"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

var (
	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("identity: invalid credentials")

	// ErrUserExists возвращается при повторной регистрации email
	ErrUserExists = errors.New("identity: user already exists")

	// ErrSessionNotFound возвращается, если сессия завершена или истекла
	ErrSessionNotFound = errors.New("identity: session not found")

	// ErrInvalidToken возвращается для поддельного, просроченного или нечитаемого токена
	ErrInvalidToken = errors.New("identity: invalid token")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidationFailed)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("identity: internal error")
)
