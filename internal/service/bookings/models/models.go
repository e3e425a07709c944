package models

import (
	"time"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования владельцем
type CancelBookingRequest struct {
	UserID string `json:"userId"`
}

// SetStatusRequest запрос оператора на смену статуса
type SetStatusRequest struct {
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID string  `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetCafeBookingsRequest запрос на получение бронирований кафе
type GetCafeBookingsRequest struct {
	CafeID string     `json:"cafeId"`
	Date   *time.Time `json:"date,omitempty"`   // Конкретный день (опционально)
	Status *string    `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр.
// Без фильтра по статусу возвращаются бронирования во всех статусах.
func (r *GetCafeBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CafeID:          r.CafeID,
		IncludeInactive: true,
	}

	if r.Date != nil {
		date := domain.DateOnly(*r.Date)
		filter.Date = &date
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        string `json:"id"`
	CafeID    string `json:"cafeId"`
	UserID    string `json:"userId"`
	Date      string `json:"date"` // "2026-10-15"
	Time      string `json:"time"` // "10:00"
	PartySize int    `json:"partySize"`
	Status    string `json:"status"`

	// Снимок данных кафе на момент бронирования
	CafeName  string `json:"cafeName"`
	CafeImage string `json:"cafeImage"`

	SpecialRequests *string `json:"specialRequests,omitempty"`
	CancelledAt     *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		CafeID:          b.CafeID,
		UserID:          b.UserID,
		Date:            b.Date.Format(domain.DateFormat),
		Time:            b.Time.String(),
		PartySize:       b.PartySize,
		Status:          string(b.Status),
		CafeName:        b.CafeName,
		CafeImage:       b.CafeImage,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
