package cancel_booking

import (
	"github.com/m04kA/CafeBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису от имени текущего пользователя
func ToServiceRequest(userID string) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{UserID: userID}
}
