package create_booking

import (
	"time"

	"github.com/m04kA/CafeBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          string           // ID пользователя из сессии
	CafeID          string           // ID кафе
	Date            time.Time        // Дата бронирования (без времени)
	Time            types.TimeString // Слот, например "10:00"
	PartySize       int              // Количество гостей
	SpecialRequests *string          // Пожелания гостя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        string
	CafeID    string
	UserID    string
	Date      time.Time
	Time      types.TimeString
	PartySize int
	Status    string

	// Снимок данных кафе
	CafeName  string
	CafeImage string

	SpecialRequests *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
