package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/CafeBookingService/internal/availability"
	"github.com/m04kA/CafeBookingService/internal/domain"
)

// CafeRepository интерфейс каталога кафе
type CafeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Cafe, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByCafeWithFilter получает бронирования кафе на дату (только активные по умолчанию)
	GetByCafeWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория настроек кафе
type SettingsRepository interface {
	GetByCafeID(ctx context.Context, cafeID string) (*domain.CafeSettings, error)
}

// Policy политика доступности слотов
type Policy = availability.Policy

// Metrics счетчики use case
type Metrics interface {
	IncSlotsRequested()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
