package session

import (
	"time"

	"github.com/m04kA/CafeBookingService/internal/domain"
)

// Session запись об активной сессии пользователя, ключ - jti токена
type Session struct {
	ID        string      `json:"id"`
	User      domain.User `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
}
