package set_booking_status

import (
	"github.com/m04kA/CafeBookingService/internal/service/bookings/models"
)

// SetStatusRequest HTTP request model
type SetStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetStatusRequest) ToServiceRequest() *models.SetStatusRequest {
	return &models.SetStatusRequest{Status: r.Status}
}
