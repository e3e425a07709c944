package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/CafeBookingService/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "upcoming"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus конвертирует строку в BookingStatus с валидацией
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown booking status %q", ErrValidationFailed, s)
	}
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo: upcoming -> completed | cancelled, nothing leaves a terminal state
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == StatusUpcoming && next.IsTerminal()
}

// Booking represents a table reservation
type Booking struct {
	ID     string
	CafeID string
	UserID string

	// Снимок данных кафе на момент бронирования, не синхронизируется
	CafeName  string
	CafeImage string

	Date            time.Time // календарный день, время обнулено
	Time            types.TimeString
	PartySize       int
	Status          BookingStatus
	SpecialRequests *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusUpcoming
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// TransitionTo переводит бронирование в новый статус по правилам жизненного цикла
func (b *Booking) TransitionTo(next BookingStatus, at time.Time) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}

	b.Status = next
	b.UpdatedAt = at
	if next == StatusCancelled {
		b.CancelledAt = &at
	}

	return nil
}

// Clone возвращает независимую копию (хранилища в памяти не отдают свои указатели наружу)
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	c := *b
	if b.SpecialRequests != nil {
		v := *b.SpecialRequests
		c.SpecialRequests = &v
	}
	if b.CancelledAt != nil {
		v := *b.CancelledAt
		c.CancelledAt = &v
	}
	return &c
}

// BookingsFilter фильтр бронирований кафе
type BookingsFilter struct {
	CafeID          string            // Обязательный параметр
	Date            *time.Time        // Конкретный день (опционально)
	Time            *types.TimeString // Конкретный слот (опционально)
	Status          *BookingStatus    // Фильтр по статусу (опционально)
	IncludeInactive bool              // Включать завершенные и отмененные
}

// Matches проверяет бронирование на соответствие фильтру
func (f BookingsFilter) Matches(b *Booking) bool {
	if b.CafeID != f.CafeID {
		return false
	}
	if f.Date != nil && !SameDay(b.Date, *f.Date) {
		return false
	}
	if f.Time != nil && b.Time != *f.Time {
		return false
	}
	if f.Status != nil {
		return b.Status == *f.Status
	}
	return f.IncludeInactive || b.IsActive()
}
