package get_cafe_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/CafeBookingService/internal/api/handlers"
	"github.com/m04kA/CafeBookingService/internal/service/bookings"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgCafeNotFound  = "кафе не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cafes/{cafeId}/bookings
// Query params: status, date (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cafeID := mux.Vars(r)["cafeId"]

	serviceReq, err := ToServiceRequest(cafeID, r.URL.Query().Get("status"), r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /cafes/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetCafeBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrCafeNotFound):
			h.logger.Warn("GET /cafes/{id}/bookings - Cafe not found: cafe_id=%s", cafeID)
			handlers.RespondNotFound(w, msgCafeNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /cafes/{id}/bookings - Invalid filter: cafe_id=%s, error=%v", cafeID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /cafes/{id}/bookings - Failed to get bookings: cafe_id=%s, error=%v",
				cafeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cafes/{id}/bookings - Bookings retrieved successfully: cafe_id=%s, count=%d",
		cafeID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
