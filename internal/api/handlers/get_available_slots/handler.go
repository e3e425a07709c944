package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/CafeBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/CafeBookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate  = "дата обязательна"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput = "некорректные параметры запроса"
	msgCafeNotFound = "кафе не найдено"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/cafes/{cafeId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cafeID := mux.Vars(r)["cafeId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /cafes/{id}/available-slots - Missing date: cafe_id=%s", cafeID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(cafeID, dateStr)
	if err != nil {
		h.logger.Warn("GET /cafes/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCafeNotFound):
			h.logger.Warn("GET /cafes/{id}/available-slots - Cafe not found: cafe_id=%s", cafeID)
			handlers.RespondNotFound(w, msgCafeNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /cafes/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /cafes/{id}/available-slots - Failed to get slots: cafe_id=%s, error=%v", cafeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cafes/{id}/available-slots - Slots retrieved successfully: cafe_id=%s, date=%s, slots_count=%d",
		cafeID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
