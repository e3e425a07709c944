package get_cafe_filters

import (
	"net/http"

	"github.com/m04kA/CafeBookingService/internal/api/handlers"
)

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

// Handle GET /api/v1/cafes/filters
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Filters(r.Context())
	if err != nil {
		h.logger.Error("GET /cafes/filters - Failed to get filters: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
