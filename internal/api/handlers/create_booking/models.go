package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CafeBookingService/internal/domain"
	createBooking "github.com/m04kA/CafeBookingService/internal/usecase/create_booking"
	"github.com/m04kA/CafeBookingService/pkg/types"
)

var (
	errBadDate = errors.New("invalid date")
	errBadTime = errors.New("invalid time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CafeID          string  `json:"cafeId"`
	Date            string  `json:"date"` // "2026-10-15"
	Time            string  `json:"time"` // "10:00"
	PartySize       int     `json:"partySize"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string  `json:"id"`
	CafeID          string  `json:"cafeId"`
	UserID          string  `json:"userId"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	PartySize       int     `json:"partySize"`
	Status          string  `json:"status"`
	CafeName        string  `json:"cafeName"`
	CafeImage       string  `json:"cafeImage"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadDate, err)
	}

	// Парсим время
	slot, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadTime, err)
	}

	return &createBooking.Request{
		UserID:          userID,
		CafeID:          r.CafeID,
		Date:            date,
		Time:            slot,
		PartySize:       r.PartySize,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		CafeID:          resp.CafeID,
		UserID:          resp.UserID,
		Date:            resp.Date.Format(domain.DateFormat),
		Time:            resp.Time.String(),
		PartySize:       resp.PartySize,
		Status:          resp.Status,
		CafeName:        resp.CafeName,
		CafeImage:       resp.CafeImage,
		SpecialRequests: resp.SpecialRequests,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
