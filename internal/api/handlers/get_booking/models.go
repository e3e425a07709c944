package get_booking

import (
	"fmt"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/internal/service/bookings/models"
)

const qrPathTemplate = "/api/v1/bookings/%s/qr"

// BookingDetails карточка бронирования с действиями, доступными владельцу
type BookingDetails struct {
	*models.BookingResponse

	CanCancel bool   `json:"canCancel"`
	QRCodeURL string `json:"qrCodeUrl,omitempty"` // только для активных бронирований
}

// ToDetails дополняет бронирование действиями по его текущему статусу
func ToDetails(b *models.BookingResponse) *BookingDetails {
	details := &BookingDetails{BookingResponse: b}

	status, err := domain.ParseBookingStatus(b.Status)
	if err != nil {
		return details
	}

	details.CanCancel = status.CanTransitionTo(domain.StatusCancelled)
	if !status.IsTerminal() {
		details.QRCodeURL = fmt.Sprintf(qrPathTemplate, b.ID)
	}
	return details
}
