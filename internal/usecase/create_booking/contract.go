package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/CafeBookingService/internal/availability"
	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/internal/infra/events"
)

// CafeRepository интерфейс каталога кафе
type CafeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Cafe, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByCafeWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория настроек кафе
type SettingsRepository interface {
	GetByCafeID(ctx context.Context, cafeID string) (*domain.CafeSettings, error)
}

// SlotPolicy проверка слота перед записью бронирования
type SlotPolicy = availability.Policy

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher издатель событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics счетчики use case
type Metrics interface {
	IncBookingsCreated(cafeID string)
	IncEventPublishFailed()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
