package get_cafe

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/CafeBookingService/internal/api/handlers"
	"github.com/m04kA/CafeBookingService/internal/service/catalog"
)

const msgCafeNotFound = "кафе не найдено"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cafes/{cafeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cafeID := mux.Vars(r)["cafeId"]

	cafe, err := h.service.FindByID(r.Context(), cafeID)
	if err != nil {
		if errors.Is(err, catalog.ErrCafeNotFound) {
			h.logger.Warn("GET /cafes/{id} - Cafe not found: cafe_id=%s", cafeID)
			handlers.RespondNotFound(w, msgCafeNotFound)
			return
		}
		h.logger.Error("GET /cafes/{id} - Failed to get cafe: cafe_id=%s, error=%v", cafeID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cafe)
}
