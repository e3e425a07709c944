package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/pkg/ptr"
)

// validateRequest валидирует входные данные запроса и нормализует пожелания гостя
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CafeID) == "" {
		return fmt.Errorf("%w: cafeId is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время указано и попадает в сетку слотов
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !domain.IsOnSlotGrid(req.Time) {
		return fmt.Errorf("%w: time %s is not a bookable slot (%s..%s every %d minutes)",
			ErrInvalidInput, req.Time, domain.FirstSlotTime, domain.LastSlotTime, domain.SlotStepMinutes)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: partySize must be between %d and %d",
			ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	// Пустые пожелания после обрезки пробелов считаются отсутствующими
	if req.SpecialRequests != nil {
		trimmed := strings.TrimSpace(*req.SpecialRequests)
		if trimmed == "" {
			req.SpecialRequests = nil
		} else {
			if utf8.RuneCountInString(trimmed) > domain.MaxSpecialRequestsLength {
				return fmt.Errorf("%w: specialRequests must be at most %d characters",
					ErrInvalidInput, domain.MaxSpecialRequestsLength)
			}
			req.SpecialRequests = ptr.Ptr(trimmed)
		}
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и укладывается в окно бронирования
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	today := domain.DateOnly(now)
	date := domain.DateOnly(requestDate)

	if date.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := today.AddDate(0, 0, advanceBookingDays)
	if date.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
