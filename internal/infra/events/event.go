package events

import (
	"time"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

// Type тип события жизненного цикла бронирования
type Type string

const (
	TypeBookingCreated   Type = "booking.created"
	TypeBookingCancelled Type = "booking.cancelled"
	TypeBookingCompleted Type = "booking.completed"
)

// Event событие о бронировании
type Event struct {
	Type       Type      `json:"type"`
	BookingID  string    `json:"bookingId"`
	CafeID     string    `json:"cafeId"`
	UserID     string    `json:"userId"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	PartySize  int       `json:"partySize"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewBookingEvent строит событие по текущему состоянию бронирования
func NewBookingEvent(eventType Type, booking *domain.Booking, at time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  booking.ID,
		CafeID:     booking.CafeID,
		UserID:     booking.UserID,
		Date:       booking.Date.Format(domain.DateFormat),
		Time:       booking.Time.String(),
		PartySize:  booking.PartySize,
		Status:     string(booking.Status),
		OccurredAt: at,
	}
}

// TypeForStatus тип события для перехода в статус status
func TypeForStatus(status domain.BookingStatus) Type {
	switch status {
	case domain.StatusCancelled:
		return TypeBookingCancelled
	case domain.StatusCompleted:
		return TypeBookingCompleted
	default:
		return TypeBookingCreated
	}
}
