package get_me

import (
	"net/http"

	"github.com/m04kA/CafeBookingService/internal/api/handlers"
	"github.com/m04kA/CafeBookingService/internal/api/middleware"
)

const msgMissingUser = "требуется авторизация"

// Handle GET /api/v1/auth/me
// Пользователь уже определен middleware Auth, обращение к сервисам не нужно.
func Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}
