package get_cafe_settings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/CafeBookingService/internal/api/handlers"
	"github.com/m04kA/CafeBookingService/internal/service/settings"
)

const msgCafeNotFound = "кафе не найдено"

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cafes/{cafeId}/settings
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cafeID := mux.Vars(r)["cafeId"]

	result, err := h.service.Get(r.Context(), cafeID)
	if err != nil {
		if errors.Is(err, settings.ErrCafeNotFound) {
			h.logger.Warn("GET /cafes/{id}/settings - Cafe not found: cafe_id=%s", cafeID)
			handlers.RespondNotFound(w, msgCafeNotFound)
			return
		}
		h.logger.Error("GET /cafes/{id}/settings - Failed to get settings: cafe_id=%s, error=%v", cafeID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /cafes/{id}/settings - Settings retrieved: cafe_id=%s, default=%t", cafeID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
