package get_available_slots

import (
	"time"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	CafeID string    // ID кафе
	Date   time.Time // Дата (время игнорируется)
}

// Response модель ответа со слотами на день
type Response struct {
	CafeID string
	Date   time.Time
	Slots  []domain.TimeSlot // Всегда полная сетка 08:00..20:00
}
