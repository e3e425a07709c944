package settings

import (
	"context"
	"time"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

// SettingsRepository интерфейс для работы с настройками бронирования
type SettingsRepository interface {
	GetByCafeID(ctx context.Context, cafeID string) (*domain.CafeSettings, error)
	Upsert(ctx context.Context, settings *domain.CafeSettings) (*domain.CafeSettings, error)
}

// CafeRepository интерфейс для проверки существования кафе
type CafeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Cafe, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
