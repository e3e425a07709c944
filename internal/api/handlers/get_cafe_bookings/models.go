package get_cafe_bookings

import (
	"time"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(cafeID, statusStr, dateStr string) (*models.GetCafeBookingsRequest, error) {
	req := &models.GetCafeBookingsRequest{
		CafeID: cafeID,
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим date если указана
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}
