package catalog

import (
	"context"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

// CafeRepository интерфейс каталога кафе
type CafeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Cafe, error)
	List(ctx context.Context) ([]*domain.Cafe, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
