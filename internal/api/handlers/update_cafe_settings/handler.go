package update_cafe_settings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/CafeBookingService/internal/api/handlers"
	"github.com/m04kA/CafeBookingService/internal/service/settings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingFields      = "поля tablesPerSlot и advanceBookingDays обязательны"
	msgInvalidData        = "некорректные значения настроек"
	msgCafeNotFound       = "кафе не найдено"
)

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

// Handle PUT /api/v1/cafes/{cafeId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cafeID := mux.Vars(r)["cafeId"]

	var req UpdateCafeSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /cafes/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if !req.IsComplete() {
		h.logger.Warn("PUT /cafes/{id}/settings - Missing fields: cafe_id=%s", cafeID)
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	result, err := h.service.Update(r.Context(), cafeID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrCafeNotFound):
			h.logger.Warn("PUT /cafes/{id}/settings - Cafe not found: cafe_id=%s", cafeID)
			handlers.RespondNotFound(w, msgCafeNotFound)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /cafes/{id}/settings - Invalid data: cafe_id=%s, error=%v", cafeID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /cafes/{id}/settings - Failed to update settings: cafe_id=%s, error=%v",
				cafeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /cafes/{id}/settings - Settings updated: cafe_id=%s, tables_per_slot=%d, advance_days=%d",
		cafeID, result.TablesPerSlot, result.AdvanceBookingDays)
	handlers.RespondJSON(w, http.StatusOK, result)
}
